package memory

import (
	"context"

	"animal-sos/internal/domain/vets"
)

type vetRepo struct{ s *Storage }

func cloneVet(v vets.Vet) vets.Vet {
	v.Email = cloneStr(v.Email)
	v.Latitude = cloneStr(v.Latitude)
	v.Longitude = cloneStr(v.Longitude)
	v.Rating = cloneInt(v.Rating)
	v.IsOpen = cloneBool(v.IsOpen)
	return v
}

func (r vetRepo) Create(ctx context.Context, in vets.Insert) (vets.Vet, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneVet(s.insertVetLocked(in)), nil
}

// insertVetLocked asume s.mu tomado (lo usa también el seed).
func (s *Storage) insertVetLocked(in vets.Insert) vets.Vet {
	v := cloneVet(vets.Vet{
		ID:        s.next.vet,
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Rating:    in.Rating,
		IsOpen:    in.IsOpen,
	})
	s.next.vet++
	s.vets = append(s.vets, v)
	return v
}

func (r vetRepo) GetByID(ctx context.Context, id int) (vets.Vet, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, v := range r.s.vets {
		if v.ID == id {
			return cloneVet(v), true, nil
		}
	}
	return vets.Vet{}, false, nil
}

func (r vetRepo) List(ctx context.Context) ([]vets.Vet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]vets.Vet, 0, len(r.s.vets))
	for _, v := range r.s.vets {
		out = append(out, cloneVet(v))
	}
	return out, nil
}

func (r vetRepo) Update(ctx context.Context, id int, p vets.Patch) (vets.Vet, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.vets {
		if r.s.vets[i].ID == id {
			p.Apply(&r.s.vets[i])
			return cloneVet(r.s.vets[i]), true, nil
		}
	}
	return vets.Vet{}, false, nil
}
