package memory

import (
	"context"

	"animal-sos/internal/domain/users"
)

type userRepo struct{ s *Storage }

func cloneUser(u users.User) users.User {
	u.Phone = cloneStr(u.Phone)
	u.Address = cloneStr(u.Address)
	return u
}

func (r userRepo) Create(ctx context.Context, in users.Insert) (users.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	role := in.Role
	if role == "" {
		role = users.RoleUser
	}
	u := users.User{
		ID:        s.next.user,
		Username:  in.Username,
		Password:  in.Password,
		Email:     in.Email,
		Name:      in.Name,
		Role:      role,
		Phone:     cloneStr(in.Phone),
		Address:   cloneStr(in.Address),
		CreatedAt: s.now(),
	}
	s.next.user++
	s.users = append(s.users, u)
	return cloneUser(u), nil
}

func (r userRepo) find(pred func(users.User) bool) (users.User, bool) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if pred(u) {
			return cloneUser(u), true
		}
	}
	return users.User{}, false
}

func (r userRepo) GetByID(ctx context.Context, id int) (users.User, bool, error) {
	u, ok := r.find(func(u users.User) bool { return u.ID == id })
	return u, ok, nil
}

func (r userRepo) GetByUsername(ctx context.Context, username string) (users.User, bool, error) {
	u, ok := r.find(func(u users.User) bool { return u.Username == username })
	return u, ok, nil
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (users.User, bool, error) {
	u, ok := r.find(func(u users.User) bool { return u.Email == email })
	return u, ok, nil
}

func (r userRepo) List(ctx context.Context) ([]users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]users.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r userRepo) Update(ctx context.Context, id int, p users.Patch) (users.User, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.users {
		if r.s.users[i].ID == id {
			p.Apply(&r.s.users[i])
			return cloneUser(r.s.users[i]), true, nil
		}
	}
	return users.User{}, false, nil
}
