package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
	ErrConflict     = errors.New("username or email already exists")
)

type Service struct {
	repo Repository

	// mu serializa el check-then-create de username/email.
	mu sync.Mutex
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Username     string
	PasswordHash string
	Email        string
	Name         string
	Role         Role
	Phone        *string
	Address      *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)
	if username == "" || email == "" || name == "" || in.PasswordHash == "" {
		return User{}, ErrInvalidInput
	}

	role := in.Role
	if role == "" {
		role = RoleUser
	}
	if !role.Valid() {
		return User{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found, err := s.repo.GetByUsername(ctx, username); err != nil {
		return User{}, fmt.Errorf("lookup username: %w", err)
	} else if found {
		return User{}, ErrConflict
	}
	if _, found, err := s.repo.GetByEmail(ctx, email); err != nil {
		return User{}, fmt.Errorf("lookup email: %w", err)
	} else if found {
		return User{}, ErrConflict
	}

	return s.repo.Create(ctx, Insert{
		Username: username,
		Password: in.PasswordHash,
		Email:    email,
		Name:     name,
		Role:     role,
		Phone:    in.Phone,
		Address:  in.Address,
	})
}

func (s *Service) GetByID(ctx context.Context, id int) (User, error) {
	u, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if !found {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (User, error) {
	u, found, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return User{}, err
	}
	if !found {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int, p Patch) (User, error) {
	if p.Role != nil && !p.Role.Valid() {
		return User{}, ErrInvalidInput
	}
	if p.Name != nil {
		v := strings.TrimSpace(*p.Name)
		if v == "" {
			return User{}, ErrInvalidInput
		}
		p.Name = &v
	}
	if p.Password != nil && *p.Password == "" {
		return User{}, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Email != nil {
		v := strings.TrimSpace(*p.Email)
		if v == "" {
			return User{}, ErrInvalidInput
		}
		p.Email = &v

		other, found, err := s.repo.GetByEmail(ctx, v)
		if err != nil {
			return User{}, fmt.Errorf("lookup email: %w", err)
		}
		if found && other.ID != id {
			return User{}, ErrConflict
		}
	}

	u, found, err := s.repo.Update(ctx, id, p)
	if err != nil {
		return User{}, err
	}
	if !found {
		return User{}, ErrNotFound
	}
	return u, nil
}
