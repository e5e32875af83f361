package mongodb

import (
	"time"

	"animal-sos/internal/domain/adoptions"
	"animal-sos/internal/domain/donations"
	"animal-sos/internal/domain/posts"
	"animal-sos/internal/domain/reports"
	"animal-sos/internal/domain/users"
	"animal-sos/internal/domain/vets"
)

// Los documentos no declaran _id: al decodificar se descarta y nunca llega al dominio.
// Los opcionales se guardan como null, igual que los documentos existentes.

type userDoc struct {
	ID        int       `bson:"id"`
	Username  string    `bson:"username"`
	Password  string    `bson:"password"`
	Email     string    `bson:"email"`
	Name      string    `bson:"name"`
	Role      string    `bson:"role"`
	Phone     *string   `bson:"phone"`
	Address   *string   `bson:"address"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (d userDoc) domain() users.User {
	return users.User{
		ID:        d.ID,
		Username:  d.Username,
		Password:  d.Password,
		Email:     d.Email,
		Name:      d.Name,
		Role:      users.Role(d.Role),
		Phone:     d.Phone,
		Address:   d.Address,
		CreatedAt: d.CreatedAt,
	}
}

type reportDoc struct {
	ID          int       `bson:"id"`
	UserID      int       `bson:"userId"`
	AnimalType  string    `bson:"animalType"`
	Description string    `bson:"description"`
	Location    string    `bson:"location"`
	Latitude    *string   `bson:"latitude"`
	Longitude   *string   `bson:"longitude"`
	Status      string    `bson:"status"`
	Urgency     string    `bson:"urgency"`
	ImageURL    *string   `bson:"imageUrl"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func (d reportDoc) domain() reports.Report {
	return reports.Report{
		ID:          d.ID,
		UserID:      d.UserID,
		AnimalType:  d.AnimalType,
		Description: d.Description,
		Location:    d.Location,
		Latitude:    d.Latitude,
		Longitude:   d.Longitude,
		Status:      reports.Status(d.Status),
		Urgency:     reports.Urgency(d.Urgency),
		ImageURL:    d.ImageURL,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type vetDoc struct {
	ID        int     `bson:"id"`
	Name      string  `bson:"name"`
	Address   string  `bson:"address"`
	Phone     string  `bson:"phone"`
	Email     *string `bson:"email"`
	Latitude  *string `bson:"latitude"`
	Longitude *string `bson:"longitude"`
	Rating    *int    `bson:"rating"`
	IsOpen    *bool   `bson:"isOpen"`
}

func (d vetDoc) domain() vets.Vet {
	return vets.Vet{
		ID:        d.ID,
		Name:      d.Name,
		Address:   d.Address,
		Phone:     d.Phone,
		Email:     d.Email,
		Latitude:  d.Latitude,
		Longitude: d.Longitude,
		Rating:    d.Rating,
		IsOpen:    d.IsOpen,
	}
}

func vetDocFrom(id int, in vets.Insert) vetDoc {
	return vetDoc{
		ID:        id,
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Rating:    in.Rating,
		IsOpen:    in.IsOpen,
	}
}

type adoptionDoc struct {
	ID          int       `bson:"id"`
	Name        string    `bson:"name"`
	Type        string    `bson:"type"`
	Breed       *string   `bson:"breed"`
	Age         string    `bson:"age"`
	Gender      string    `bson:"gender"`
	Description string    `bson:"description"`
	ImageURL    *string   `bson:"imageUrl"`
	Status      string    `bson:"status"`
	CreatedAt   time.Time `bson:"createdAt"`
}

func (d adoptionDoc) domain() adoptions.Adoption {
	return adoptions.Adoption{
		ID:          d.ID,
		Name:        d.Name,
		Type:        d.Type,
		Breed:       d.Breed,
		Age:         d.Age,
		Gender:      d.Gender,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		Status:      adoptions.Status(d.Status),
		CreatedAt:   d.CreatedAt,
	}
}

type donationDoc struct {
	ID           int       `bson:"id"`
	Title        string    `bson:"title"`
	Description  string    `bson:"description"`
	GoalAmount   int       `bson:"goalAmount"`
	RaisedAmount int       `bson:"raisedAmount"`
	ImageURL     *string   `bson:"imageUrl"`
	CreatedAt    time.Time `bson:"createdAt"`
}

func (d donationDoc) domain() donations.Donation {
	return donations.Donation{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		GoalAmount:   d.GoalAmount,
		RaisedAmount: d.RaisedAmount,
		ImageURL:     d.ImageURL,
		CreatedAt:    d.CreatedAt,
	}
}

type postDoc struct {
	ID        int       `bson:"id"`
	UserID    int       `bson:"userId"`
	Title     string    `bson:"title"`
	Content   string    `bson:"content"`
	ImageURL  *string   `bson:"imageUrl"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (d postDoc) domain() posts.Post {
	return posts.Post{
		ID:        d.ID,
		UserID:    d.UserID,
		Title:     d.Title,
		Content:   d.Content,
		ImageURL:  d.ImageURL,
		CreatedAt: d.CreatedAt,
	}
}
