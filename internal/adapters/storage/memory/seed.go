package memory

import (
	"animal-sos/internal/domain/adoptions"
	"animal-sos/internal/domain/donations"
	"animal-sos/internal/domain/reports"
	"animal-sos/internal/domain/users"
	"animal-sos/internal/domain/vets"
)

// DefaultAdminPasswordHash es el hash scrypt (hex(hash).salt) del admin de ejemplo.
const DefaultAdminPasswordHash = "5d45c4f09b3b1b23f05bce945e8b87303c2dbca8fcee4e076320b329bb95d21f50ee789e751a3cdd0e0e61a8b2287fe6e27625ecdeb3fa9a32f2d36a318ae575.8a9f5f137a71c3b3"

func ptr[T any](v T) *T { return &v }

// Seed carga los datos de ejemplo una sola vez por instancia.
// Devuelve false si ya estaba sembrado.
func (s *Storage) Seed(adminPasswordHash string) bool {
	if adminPasswordHash == "" {
		adminPasswordHash = DefaultAdminPasswordHash
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seeded {
		return false
	}
	s.seeded = true
	now := s.now()

	s.insertVetLocked(vets.Insert{
		Name:      "Animal Care Clinic",
		Address:   "123 Main St",
		Phone:     "555-1234",
		Email:     ptr("clinic@example.com"),
		Latitude:  ptr("40.7128"),
		Longitude: ptr("-74.0060"),
		Rating:    ptr(4),
		IsOpen:    ptr(true),
	})
	s.insertVetLocked(vets.Insert{
		Name:      "Emergency Pet Hospital",
		Address:   "456 Oak Ave",
		Phone:     "555-5678",
		Email:     ptr("emergency@example.com"),
		Latitude:  ptr("40.7148"),
		Longitude: ptr("-74.0068"),
		Rating:    ptr(5),
		IsOpen:    ptr(true),
	})

	admin := users.User{
		ID:        s.next.user,
		Username:  "admin",
		Password:  adminPasswordHash,
		Email:     "admin@example.com",
		Name:      "Admin",
		Role:      users.RoleAdmin,
		CreatedAt: now,
	}
	s.next.user++
	s.users = append(s.users, admin)

	for _, a := range []adoptions.Adoption{
		{
			Name:        "Max",
			Type:        "dog",
			Breed:       ptr("Golden Retriever"),
			Age:         "3 years",
			Gender:      "male",
			Description: "Friendly and playful golden retriever looking for a forever home.",
			ImageURL:    ptr("https://images.unsplash.com/photo-1552053831-71594a27632d?auto=format&fit=crop&w=662&q=80"),
		},
		{
			Name:        "Whiskers",
			Type:        "cat",
			Breed:       ptr("Siamese"),
			Age:         "2 years",
			Gender:      "female",
			Description: "Beautiful Siamese cat that loves to cuddle.",
			ImageURL:    ptr("https://images.unsplash.com/photo-1533738363-b7f9aef128ce?auto=format&fit=crop&w=735&q=80"),
		},
	} {
		a.ID = s.next.adoption
		a.Status = adoptions.StatusAvailable
		a.CreatedAt = now
		s.next.adoption++
		s.adoptions = append(s.adoptions, a)
	}

	for _, d := range []donations.Donation{
		{
			Title:        "Help Injured Wildlife",
			Description:  "Support our efforts to rescue and rehabilitate injured wildlife affected by recent wildfires.",
			GoalAmount:   5000,
			RaisedAmount: 2500,
			ImageURL:     ptr("https://images.unsplash.com/photo-1584118624012-df056829fbd0?auto=format&fit=crop&w=1032&q=80"),
		},
		{
			Title:        "Shelter Expansion Project",
			Description:  "Help us expand our animal shelter to accommodate more rescues.",
			GoalAmount:   10000,
			RaisedAmount: 7500,
			ImageURL:     ptr("https://images.unsplash.com/photo-1604848698030-c434ba08ece1?auto=format&fit=crop&w=687&q=80"),
		},
	} {
		d.ID = s.next.donation
		d.CreatedAt = now
		s.next.donation++
		s.donations = append(s.donations, d)
	}

	for _, r := range []reports.Report{
		{
			AnimalType:  "dog",
			Description: "Found a dog with an injured paw near Main Street Park.",
			Location:    "Main Street Park",
			Latitude:    ptr("40.7128"),
			Longitude:   ptr("-74.0060"),
			Urgency:     reports.UrgencyUrgent,
			ImageURL:    ptr("https://images.unsplash.com/photo-1634913940926-05e7c8cf8816?auto=format&fit=crop&w=880&q=80"),
		},
		{
			AnimalType:  "cat",
			Description: "Group of stray cats needing food and shelter behind Oak Street apartments.",
			Location:    "Oak Street Apartments",
			Latitude:    ptr("40.7148"),
			Longitude:   ptr("-74.0068"),
			Urgency:     reports.UrgencyNormal,
			ImageURL:    ptr("https://images.unsplash.com/photo-1626602411112-23ea4a827627?auto=format&fit=crop&w=1287&q=80"),
		},
	} {
		r.ID = s.next.report
		r.UserID = admin.ID
		r.Status = reports.StatusPending
		r.CreatedAt = now
		r.UpdatedAt = now
		s.next.report++
		s.reports = append(s.reports, r)
	}

	return true
}
