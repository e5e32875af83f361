package memory

import (
	"context"
	"time"

	"animal-sos/internal/domain/adoptions"
)

type adoptionRepo struct{ s *Storage }

func cloneAdoption(a adoptions.Adoption) adoptions.Adoption {
	a.Breed = cloneStr(a.Breed)
	a.ImageURL = cloneStr(a.ImageURL)
	return a
}

func (r adoptionRepo) Create(ctx context.Context, in adoptions.Insert) (adoptions.Adoption, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	status := in.Status
	if status == "" {
		status = adoptions.StatusAvailable
	}
	a := adoptions.Adoption{
		ID:          s.next.adoption,
		Name:        in.Name,
		Type:        in.Type,
		Breed:       cloneStr(in.Breed),
		Age:         in.Age,
		Gender:      in.Gender,
		Description: in.Description,
		ImageURL:    cloneStr(in.ImageURL),
		Status:      status,
		CreatedAt:   s.now(),
	}
	s.next.adoption++
	s.adoptions = append(s.adoptions, a)
	return cloneAdoption(a), nil
}

func (r adoptionRepo) GetByID(ctx context.Context, id int) (adoptions.Adoption, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.adoptions {
		if a.ID == id {
			return cloneAdoption(a), true, nil
		}
	}
	return adoptions.Adoption{}, false, nil
}

func (r adoptionRepo) filter(pred func(adoptions.Adoption) bool) []adoptions.Adoption {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]adoptions.Adoption, 0)
	for _, a := range r.s.adoptions {
		if pred == nil || pred(a) {
			out = append(out, cloneAdoption(a))
		}
	}
	newestFirst(out,
		func(x adoptions.Adoption) time.Time { return x.CreatedAt },
		func(x adoptions.Adoption) int { return x.ID },
	)
	return out
}

func (r adoptionRepo) List(ctx context.Context) ([]adoptions.Adoption, error) {
	return r.filter(nil), nil
}

func (r adoptionRepo) ListByType(ctx context.Context, animalType string) ([]adoptions.Adoption, error) {
	return r.filter(func(a adoptions.Adoption) bool { return a.Type == animalType }), nil
}

func (r adoptionRepo) ListByStatus(ctx context.Context, status adoptions.Status) ([]adoptions.Adoption, error) {
	return r.filter(func(a adoptions.Adoption) bool { return a.Status == status }), nil
}

func (r adoptionRepo) Update(ctx context.Context, id int, p adoptions.Patch) (adoptions.Adoption, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.adoptions {
		if r.s.adoptions[i].ID == id {
			p.Apply(&r.s.adoptions[i])
			return cloneAdoption(r.s.adoptions[i]), true, nil
		}
	}
	return adoptions.Adoption{}, false, nil
}
