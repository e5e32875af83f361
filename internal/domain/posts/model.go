package posts

import "time"

// Post es una publicación del foro de la comunidad.
type Post struct {
	ID        int
	UserID    int
	Title     string
	Content   string
	ImageURL  *string
	CreatedAt time.Time
}

type Insert struct {
	UserID   int
	Title    string
	Content  string
	ImageURL *string
}

// Patch: el autor (UserID) no se puede cambiar.
type Patch struct {
	Title    *string
	Content  *string
	ImageURL *string
}

func (p Patch) Apply(post *Post) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.ImageURL != nil {
		v := *p.ImageURL
		post.ImageURL = &v
	}
}
