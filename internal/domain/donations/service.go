package donations

import (
	"context"
	"errors"
	"math"
	"strings"
)

// MaxContribution acota un aporte individual.
const MaxContribution = 1_000_000_000

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidAmount = errors.New("amount must be a positive number within limits")
	ErrNotFound      = errors.New("donation not found")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput no expone RaisedAmount: toda campaña nueva arranca en 0.
type CreateInput struct {
	Title       string
	Description string
	GoalAmount  int
	ImageURL    *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Donation, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" || in.GoalAmount <= 0 {
		return Donation{}, ErrInvalidInput
	}
	return s.repo.Create(ctx, Insert{
		Title:       title,
		Description: description,
		GoalAmount:  in.GoalAmount,
		ImageURL:    in.ImageURL,
	})
}

func (s *Service) GetByID(ctx context.Context, id int) (Donation, error) {
	d, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Donation{}, err
	}
	if !found {
		return Donation{}, ErrNotFound
	}
	return d, nil
}

func (s *Service) List(ctx context.Context) ([]Donation, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int, p Patch) (Donation, error) {
	for _, f := range []*string{p.Title, p.Description} {
		if f != nil && strings.TrimSpace(*f) == "" {
			return Donation{}, ErrInvalidInput
		}
	}
	if p.GoalAmount != nil && *p.GoalAmount <= 0 {
		return Donation{}, ErrInvalidInput
	}

	d, found, err := s.repo.Update(ctx, id, p)
	if err != nil {
		return Donation{}, err
	}
	if !found {
		return Donation{}, ErrNotFound
	}
	return d, nil
}

// Contribute rechaza montos que harían desbordar RaisedAmount: el monto recaudado nunca baja.
func (s *Service) Contribute(ctx context.Context, id int, amount int) (Donation, error) {
	if amount <= 0 || amount > MaxContribution {
		return Donation{}, ErrInvalidAmount
	}
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Donation{}, err
	}
	if amount > math.MaxInt-current.RaisedAmount {
		return Donation{}, ErrInvalidAmount
	}

	d, found, err := s.repo.Contribute(ctx, id, amount)
	if err != nil {
		return Donation{}, err
	}
	if !found {
		return Donation{}, ErrNotFound
	}
	return d, nil
}
