package memory

import (
	"context"
	"time"

	"animal-sos/internal/domain/reports"
)

type reportRepo struct{ s *Storage }

func cloneReport(r reports.Report) reports.Report {
	r.Latitude = cloneStr(r.Latitude)
	r.Longitude = cloneStr(r.Longitude)
	r.ImageURL = cloneStr(r.ImageURL)
	return r
}

func (r reportRepo) Create(ctx context.Context, in reports.Insert) (reports.Report, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	status := in.Status
	if status == "" {
		status = reports.StatusPending
	}
	urgency := in.Urgency
	if urgency == "" {
		urgency = reports.UrgencyNormal
	}

	now := s.now()
	rep := reports.Report{
		ID:          s.next.report,
		UserID:      in.UserID,
		AnimalType:  in.AnimalType,
		Description: in.Description,
		Location:    in.Location,
		Latitude:    cloneStr(in.Latitude),
		Longitude:   cloneStr(in.Longitude),
		Status:      status,
		Urgency:     urgency,
		ImageURL:    cloneStr(in.ImageURL),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.next.report++
	s.reports = append(s.reports, rep)
	return cloneReport(rep), nil
}

func (r reportRepo) GetByID(ctx context.Context, id int) (reports.Report, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, rep := range r.s.reports {
		if rep.ID == id {
			return cloneReport(rep), true, nil
		}
	}
	return reports.Report{}, false, nil
}

func (r reportRepo) filter(pred func(reports.Report) bool) []reports.Report {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]reports.Report, 0)
	for _, rep := range r.s.reports {
		if pred == nil || pred(rep) {
			out = append(out, cloneReport(rep))
		}
	}
	newestFirst(out,
		func(x reports.Report) time.Time { return x.CreatedAt },
		func(x reports.Report) int { return x.ID },
	)
	return out
}

func (r reportRepo) List(ctx context.Context, limit int) ([]reports.Report, error) {
	out := r.filter(nil)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r reportRepo) ListByStatus(ctx context.Context, status reports.Status) ([]reports.Report, error) {
	return r.filter(func(x reports.Report) bool { return x.Status == status }), nil
}

func (r reportRepo) ListByUser(ctx context.Context, userID int) ([]reports.Report, error) {
	return r.filter(func(x reports.Report) bool { return x.UserID == userID }), nil
}

// Update refresca UpdatedAt aunque el patch venga vacío.
func (r reportRepo) Update(ctx context.Context, id int, p reports.Patch) (reports.Report, bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reports {
		if s.reports[i].ID == id {
			p.Apply(&s.reports[i])
			s.reports[i].UpdatedAt = s.now()
			return cloneReport(s.reports[i]), true, nil
		}
	}
	return reports.Report{}, false, nil
}
