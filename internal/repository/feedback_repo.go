package repository

import (
	"context"
	"time"

	"feedback-app/internal/database"
	"feedback-app/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type FeedbackRepo struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

func NewFeedbackRepo() *FeedbackRepo {
	return &FeedbackRepo{
		collection: database.GetCollection("feedback"),
		counters:   database.GetCollection("counters"),
	}
}

// nextID atomically increments and returns the feedback ID sequence.
func (r *FeedbackRepo) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Value int64 `bson:"value"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "feedback_id"},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Value, nil
}

func (r *FeedbackRepo) Create(ctx context.Context, feedback *models.Feedback) error {
	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}
	feedback.ID = id
	feedback.CreatedAt = time.Now()
	feedback.UpdatedAt = feedback.CreatedAt
	_, err = r.collection.InsertOne(ctx, feedback)
	return err
}

func (r *FeedbackRepo) FindByID(ctx context.Context, id int64) (*models.Feedback, error) {
	var feedback models.Feedback
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&feedback)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &feedback, nil
}

// FindByOwner lists a user's feedback in creation order, for the profile
// page.
func (r *FeedbackRepo) FindByOwner(ctx context.Context, username string) ([]models.Feedback, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"owner_username": username},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var entries []models.Feedback
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Update mutates title and content in place. ID and owner never change
// after creation.
func (r *FeedbackRepo) Update(ctx context.Context, id int64, title, content string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"title":      title,
			"content":    content,
			"updated_at": time.Now(),
		},
	})
	return err
}

func (r *FeedbackRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// EnsureIndexes creates necessary indexes for the feedback collection
func (r *FeedbackRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_username", Value: 1}},
	})
	return err
}
