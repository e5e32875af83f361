package posts

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("post not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID int, title, content string, imageURL *string) (Post, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if userID <= 0 || title == "" || content == "" {
		return Post{}, ErrInvalidInput
	}
	return s.repo.Create(ctx, Insert{
		UserID:   userID,
		Title:    title,
		Content:  content,
		ImageURL: imageURL,
	})
}

func (s *Service) GetByID(ctx context.Context, id int) (Post, error) {
	p, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Post{}, err
	}
	if !found {
		return Post{}, ErrNotFound
	}
	return p, nil
}

// List: userID <= 0 = todos.
func (s *Service) List(ctx context.Context, userID int) ([]Post, error) {
	if userID > 0 {
		return s.repo.ListByUser(ctx, userID)
	}
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int, p Patch) (Post, error) {
	for _, f := range []*string{p.Title, p.Content} {
		if f != nil && strings.TrimSpace(*f) == "" {
			return Post{}, ErrInvalidInput
		}
	}

	post, found, err := s.repo.Update(ctx, id, p)
	if err != nil {
		return Post{}, err
	}
	if !found {
		return Post{}, ErrNotFound
	}
	return post, nil
}
