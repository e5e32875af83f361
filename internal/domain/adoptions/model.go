package adoptions

import "time"

// Status de la publicación de adopción.
// @Enum available, pending, adopted
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusAdopted   Status = "adopted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusAdopted:
		return true
	default:
		return false
	}
}

// Adoption es un animal publicado para adopción.
type Adoption struct {
	ID          int
	Name        string
	Type        string // dog, cat, ...
	Breed       *string
	Age         string // texto libre, ej "3 years"
	Gender      string
	Description string
	ImageURL    *string
	Status      Status
	CreatedAt   time.Time
}

// Insert: Status vacío = available.
type Insert struct {
	Name        string
	Type        string
	Breed       *string
	Age         string
	Gender      string
	Description string
	ImageURL    *string
	Status      Status
}

type Patch struct {
	Name        *string
	Type        *string
	Breed       *string
	Age         *string
	Gender      *string
	Description *string
	ImageURL    *string
	Status      *Status
}

func (p Patch) Apply(a *Adoption) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Breed != nil {
		v := *p.Breed
		a.Breed = &v
	}
	if p.Age != nil {
		a.Age = *p.Age
	}
	if p.Gender != nil {
		a.Gender = *p.Gender
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.ImageURL != nil {
		v := *p.ImageURL
		a.ImageURL = &v
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
}
