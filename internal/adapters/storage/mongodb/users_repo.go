package mongodb

import (
	"context"

	"animal-sos/internal/domain/users"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userRepo struct{ s *Storage }

func (r userRepo) Create(ctx context.Context, in users.Insert) (users.User, error) {
	id, err := r.s.nextID(ctx, usersColl)
	if err != nil {
		return users.User{}, err
	}
	role := in.Role
	if role == "" {
		role = users.RoleUser
	}
	doc := userDoc{
		ID:        id,
		Username:  in.Username,
		Password:  in.Password,
		Email:     in.Email,
		Name:      in.Name,
		Role:      string(role),
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: r.s.now(),
	}
	if err := insert(ctx, r.s.coll(usersColl), doc); err != nil {
		return users.User{}, err
	}
	return doc.domain(), nil
}

func (r userRepo) get(ctx context.Context, filter bson.M) (users.User, bool, error) {
	doc, found, err := findOne[userDoc](ctx, r.s.coll(usersColl), filter)
	if err != nil || !found {
		return users.User{}, found, err
	}
	return doc.domain(), true, nil
}

func (r userRepo) GetByID(ctx context.Context, id int) (users.User, bool, error) {
	return r.get(ctx, bson.M{"id": id})
}

func (r userRepo) GetByUsername(ctx context.Context, username string) (users.User, bool, error) {
	return r.get(ctx, bson.M{"username": username})
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (users.User, bool, error) {
	return r.get(ctx, bson.M{"email": email})
}

func (r userRepo) List(ctx context.Context) ([]users.User, error) {
	docs, err := findMany[userDoc](ctx, r.s.coll(usersColl), bson.M{}, options.Find().SetSort(byIDAsc))
	if err != nil {
		return nil, err
	}
	return mapDocs(docs, userDoc.domain), nil
}

func (r userRepo) Update(ctx context.Context, id int, p users.Patch) (users.User, bool, error) {
	set := bson.M{}
	setIf(set, "password", p.Password)
	setIf(set, "email", p.Email)
	setIf(set, "name", p.Name)
	setIf(set, "role", p.Role)
	setIf(set, "phone", p.Phone)
	setIf(set, "address", p.Address)

	doc, found, err := setByID[userDoc](ctx, r.s.coll(usersColl), id, set)
	if err != nil || !found {
		return users.User{}, found, err
	}
	return doc.domain(), true, nil
}
