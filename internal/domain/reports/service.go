package reports

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("report not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	AnimalType  string
	Description string
	Location    string
	Latitude    *string
	Longitude   *string
	Urgency     Urgency
	ImageURL    *string
}

// Create siempre arranca en pending; el estado avanza con UpdateStatus.
func (s *Service) Create(ctx context.Context, userID int, in CreateInput) (Report, error) {
	if userID <= 0 {
		return Report{}, ErrInvalidInput
	}
	animalType := strings.TrimSpace(in.AnimalType)
	description := strings.TrimSpace(in.Description)
	location := strings.TrimSpace(in.Location)
	if animalType == "" || description == "" || location == "" {
		return Report{}, ErrInvalidInput
	}

	urgency := in.Urgency
	if urgency == "" {
		urgency = UrgencyNormal
	}
	if !urgency.Valid() {
		return Report{}, ErrInvalidInput
	}

	return s.repo.Create(ctx, Insert{
		UserID:      userID,
		AnimalType:  animalType,
		Description: description,
		Location:    location,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Status:      StatusPending,
		Urgency:     urgency,
		ImageURL:    in.ImageURL,
	})
}

func (s *Service) GetByID(ctx context.Context, id int) (Report, error) {
	r, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Report{}, err
	}
	if !found {
		return Report{}, ErrNotFound
	}
	return r, nil
}

// ListFilter: Status tiene prioridad sobre UserID. Limit <= 0 = sin límite.
type ListFilter struct {
	Status Status
	UserID int
	Limit  int
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Report, error) {
	var (
		items []Report
		err   error
	)
	switch {
	case f.Status != "":
		if !f.Status.Valid() {
			return nil, ErrInvalidInput
		}
		items, err = s.repo.ListByStatus(ctx, f.Status)
	case f.UserID > 0:
		items, err = s.repo.ListByUser(ctx, f.UserID)
	default:
		return s.repo.List(ctx, f.Limit)
	}
	if err != nil {
		return nil, err
	}
	if f.Limit > 0 && len(items) > f.Limit {
		items = items[:f.Limit]
	}
	return items, nil
}

// Update aplica un patch parcial. Si trae Status, se valida la transición.
func (s *Service) Update(ctx context.Context, id int, p Patch) (Report, error) {
	if p.Urgency != nil && !p.Urgency.Valid() {
		return Report{}, ErrInvalidInput
	}
	for _, f := range []*string{p.AnimalType, p.Description, p.Location} {
		if f != nil && strings.TrimSpace(*f) == "" {
			return Report{}, ErrInvalidInput
		}
	}

	if p.Status != nil {
		if !p.Status.Valid() {
			return Report{}, ErrInvalidInput
		}
		current, err := s.GetByID(ctx, id)
		if err != nil {
			return Report{}, err
		}
		if !CanTransition(current.Status, *p.Status) {
			return Report{}, ErrInvalidTransition
		}
	}

	r, found, err := s.repo.Update(ctx, id, p)
	if err != nil {
		return Report{}, err
	}
	if !found {
		return Report{}, ErrNotFound
	}
	return r, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int, status Status) (Report, error) {
	return s.Update(ctx, id, Patch{Status: &status})
}
