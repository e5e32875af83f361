package adoptions

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("adoption not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, in Insert) (Adoption, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.TrimSpace(in.Type)
	in.Age = strings.TrimSpace(in.Age)
	in.Gender = strings.TrimSpace(in.Gender)
	in.Description = strings.TrimSpace(in.Description)
	if in.Name == "" || in.Type == "" || in.Age == "" || in.Gender == "" || in.Description == "" {
		return Adoption{}, ErrInvalidInput
	}
	if in.Status == "" {
		in.Status = StatusAvailable
	}
	if !in.Status.Valid() {
		return Adoption{}, ErrInvalidInput
	}
	return s.repo.Create(ctx, in)
}

func (s *Service) GetByID(ctx context.Context, id int) (Adoption, error) {
	a, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Adoption{}, err
	}
	if !found {
		return Adoption{}, ErrNotFound
	}
	return a, nil
}

// List: Type tiene prioridad sobre Status, como en el listado público.
func (s *Service) List(ctx context.Context, animalType string, status Status) ([]Adoption, error) {
	animalType = strings.TrimSpace(animalType)
	switch {
	case animalType != "":
		return s.repo.ListByType(ctx, animalType)
	case status != "":
		if !status.Valid() {
			return nil, ErrInvalidInput
		}
		return s.repo.ListByStatus(ctx, status)
	default:
		return s.repo.List(ctx)
	}
}

func (s *Service) Update(ctx context.Context, id int, p Patch) (Adoption, error) {
	for _, f := range []*string{p.Name, p.Type, p.Age, p.Gender, p.Description} {
		if f != nil && strings.TrimSpace(*f) == "" {
			return Adoption{}, ErrInvalidInput
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return Adoption{}, ErrInvalidInput
	}

	a, found, err := s.repo.Update(ctx, id, p)
	if err != nil {
		return Adoption{}, err
	}
	if !found {
		return Adoption{}, ErrNotFound
	}
	return a, nil
}
