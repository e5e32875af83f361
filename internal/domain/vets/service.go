package vets

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("vet not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validRating(r *int) bool {
	return r == nil || (*r >= 1 && *r <= 5)
}

func (s *Service) Create(ctx context.Context, in Insert) (Vet, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Name == "" || in.Address == "" || in.Phone == "" {
		return Vet{}, ErrInvalidInput
	}
	if !validRating(in.Rating) {
		return Vet{}, ErrInvalidInput
	}
	return s.repo.Create(ctx, in)
}

func (s *Service) GetByID(ctx context.Context, id int) (Vet, error) {
	v, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Vet{}, err
	}
	if !found {
		return Vet{}, ErrNotFound
	}
	return v, nil
}

func (s *Service) List(ctx context.Context) ([]Vet, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int, p Patch) (Vet, error) {
	for _, f := range []*string{p.Name, p.Address, p.Phone} {
		if f != nil && strings.TrimSpace(*f) == "" {
			return Vet{}, ErrInvalidInput
		}
	}
	if !validRating(p.Rating) {
		return Vet{}, ErrInvalidInput
	}

	v, found, err := s.repo.Update(ctx, id, p)
	if err != nil {
		return Vet{}, err
	}
	if !found {
		return Vet{}, ErrNotFound
	}
	return v, nil
}
