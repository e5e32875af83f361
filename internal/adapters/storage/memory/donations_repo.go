package memory

import (
	"context"

	"animal-sos/internal/domain/donations"
)

type donationRepo struct{ s *Storage }

func cloneDonation(d donations.Donation) donations.Donation {
	d.ImageURL = cloneStr(d.ImageURL)
	return d
}

func (r donationRepo) Create(ctx context.Context, in donations.Insert) (donations.Donation, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	d := donations.Donation{
		ID:           s.next.donation,
		Title:        in.Title,
		Description:  in.Description,
		GoalAmount:   in.GoalAmount,
		RaisedAmount: 0,
		ImageURL:     cloneStr(in.ImageURL),
		CreatedAt:    s.now(),
	}
	s.next.donation++
	s.donations = append(s.donations, d)
	return cloneDonation(d), nil
}

func (r donationRepo) GetByID(ctx context.Context, id int) (donations.Donation, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, d := range r.s.donations {
		if d.ID == id {
			return cloneDonation(d), true, nil
		}
	}
	return donations.Donation{}, false, nil
}

func (r donationRepo) List(ctx context.Context) ([]donations.Donation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]donations.Donation, 0, len(r.s.donations))
	for _, d := range r.s.donations {
		out = append(out, cloneDonation(d))
	}
	return out, nil
}

func (r donationRepo) mutate(id int, fn func(d *donations.Donation)) (donations.Donation, bool) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.donations {
		if r.s.donations[i].ID == id {
			fn(&r.s.donations[i])
			return cloneDonation(r.s.donations[i]), true
		}
	}
	return donations.Donation{}, false
}

func (r donationRepo) Update(ctx context.Context, id int, p donations.Patch) (donations.Donation, bool, error) {
	d, ok := r.mutate(id, p.Apply)
	return d, ok, nil
}

func (r donationRepo) Contribute(ctx context.Context, id int, amount int) (donations.Donation, bool, error) {
	d, ok := r.mutate(id, func(d *donations.Donation) { d.RaisedAmount += amount })
	return d, ok, nil
}
