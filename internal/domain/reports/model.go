package reports

import "time"

// Status es el estado de atención de un reporte.
// @Enum pending, assigned, in_progress, rescued, closed
type Status string

const (
	StatusPending    Status = "pending"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusRescued    Status = "rescued"
	StatusClosed     Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusInProgress, StatusRescued, StatusClosed:
		return true
	default:
		return false
	}
}

// Urgency indica la prioridad del rescate.
// @Enum normal, urgent
type Urgency string

const (
	UrgencyNormal Urgency = "normal"
	UrgencyUrgent Urgency = "urgent"
)

func (u Urgency) Valid() bool {
	return u == UrgencyNormal || u == UrgencyUrgent
}

// Report es un aviso de un animal que necesita ayuda.
type Report struct {
	ID     int
	UserID int

	AnimalType  string
	Description string
	Location    string
	Latitude    *string
	Longitude   *string

	Status   Status
	Urgency  Urgency
	ImageURL *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Insert: Status y Urgency vacíos toman el default (pending/normal).
type Insert struct {
	UserID      int
	AnimalType  string
	Description string
	Location    string
	Latitude    *string
	Longitude   *string
	Status      Status
	Urgency     Urgency
	ImageURL    *string
}

// Patch: nil = no tocar. UpdatedAt lo refresca siempre el storage.
type Patch struct {
	AnimalType  *string
	Description *string
	Location    *string
	Latitude    *string
	Longitude   *string
	Status      *Status
	Urgency     *Urgency
	ImageURL    *string
}

func (p Patch) Apply(r *Report) {
	if p.AnimalType != nil {
		r.AnimalType = *p.AnimalType
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Location != nil {
		r.Location = *p.Location
	}
	if p.Latitude != nil {
		v := *p.Latitude
		r.Latitude = &v
	}
	if p.Longitude != nil {
		v := *p.Longitude
		r.Longitude = &v
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Urgency != nil {
		r.Urgency = *p.Urgency
	}
	if p.ImageURL != nil {
		v := *p.ImageURL
		r.ImageURL = &v
	}
}
