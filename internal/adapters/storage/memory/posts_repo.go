package memory

import (
	"context"
	"time"

	"animal-sos/internal/domain/posts"
)

type postRepo struct{ s *Storage }

func clonePost(p posts.Post) posts.Post {
	p.ImageURL = cloneStr(p.ImageURL)
	return p
}

func (r postRepo) Create(ctx context.Context, in posts.Insert) (posts.Post, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p := posts.Post{
		ID:        s.next.post,
		UserID:    in.UserID,
		Title:     in.Title,
		Content:   in.Content,
		ImageURL:  cloneStr(in.ImageURL),
		CreatedAt: s.now(),
	}
	s.next.post++
	s.posts = append(s.posts, p)
	return clonePost(p), nil
}

func (r postRepo) GetByID(ctx context.Context, id int) (posts.Post, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.posts {
		if p.ID == id {
			return clonePost(p), true, nil
		}
	}
	return posts.Post{}, false, nil
}

func (r postRepo) filter(pred func(posts.Post) bool) []posts.Post {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]posts.Post, 0)
	for _, p := range r.s.posts {
		if pred == nil || pred(p) {
			out = append(out, clonePost(p))
		}
	}
	newestFirst(out,
		func(x posts.Post) time.Time { return x.CreatedAt },
		func(x posts.Post) int { return x.ID },
	)
	return out
}

func (r postRepo) List(ctx context.Context) ([]posts.Post, error) {
	return r.filter(nil), nil
}

func (r postRepo) ListByUser(ctx context.Context, userID int) ([]posts.Post, error) {
	return r.filter(func(p posts.Post) bool { return p.UserID == userID }), nil
}

func (r postRepo) Update(ctx context.Context, id int, p posts.Patch) (posts.Post, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.posts {
		if r.s.posts[i].ID == id {
			p.Apply(&r.s.posts[i])
			return clonePost(r.s.posts[i]), true, nil
		}
	}
	return posts.Post{}, false, nil
}
