package vets

// Vet es una clínica veterinaria del directorio.
type Vet struct {
	ID      int
	Name    string
	Address string
	Phone   string
	Email   *string

	Latitude  *string
	Longitude *string

	// Rating 1-5 si está presente.
	Rating *int
	IsOpen *bool
}

type Insert struct {
	Name      string
	Address   string
	Phone     string
	Email     *string
	Latitude  *string
	Longitude *string
	Rating    *int
	IsOpen    *bool
}

type Patch struct {
	Name      *string
	Address   *string
	Phone     *string
	Email     *string
	Latitude  *string
	Longitude *string
	Rating    *int
	IsOpen    *bool
}

func (p Patch) Apply(v *Vet) {
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Address != nil {
		v.Address = *p.Address
	}
	if p.Phone != nil {
		v.Phone = *p.Phone
	}
	if p.Email != nil {
		s := *p.Email
		v.Email = &s
	}
	if p.Latitude != nil {
		s := *p.Latitude
		v.Latitude = &s
	}
	if p.Longitude != nil {
		s := *p.Longitude
		v.Longitude = &s
	}
	if p.Rating != nil {
		n := *p.Rating
		v.Rating = &n
	}
	if p.IsOpen != nil {
		b := *p.IsOpen
		v.IsOpen = &b
	}
}
