package repository

import (
	"context"
	"errors"
	"time"

	"feedback-app/internal/database"
	"feedback-app/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ErrDuplicateKey is returned when an insert hits a unique index —
// for users, a username or email that is already taken.
var ErrDuplicateKey = errors.New("duplicate key")

type UserRepo struct {
	collection *mongo.Collection
	feedback   *mongo.Collection
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		collection: database.GetCollection("users"),
		feedback:   database.GetCollection("feedback"),
	}
}

// Create inserts the user. Uniqueness of username (the _id) and email is
// enforced by the indexes at write time, so of two concurrent
// registrations that both passed a form check only one insert lands.
func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	_, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Delete removes the user and every feedback entry the user owns inside
// one transaction, so no orphaned feedback can survive its owner.
func (r *UserRepo) Delete(ctx context.Context, username string) error {
	return database.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := r.feedback.DeleteMany(ctx, bson.M{"owner_username": username}); err != nil {
			return err
		}
		_, err := r.collection.DeleteOne(ctx, bson.M{"_id": username})
		return err
	})
}

// EnsureIndexes creates necessary indexes for the users collection.
// Username needs none — it is the _id.
func (r *UserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
