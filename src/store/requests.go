package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SyedAzeem24/blood-donation-system/src/models"
)

// Requests persists blood request posts.
type Requests struct {
	col *mongo.Collection
}

func NewRequests(db *mongo.Database) *Requests {
	return &Requests{col: db.Collection("request_posts")}
}

func (s *Requests) Create(ctx context.Context, post *models.RequestPost) error {
	now := time.Now()
	if post.Id.IsZero() {
		post.Id = primitive.NewObjectID()
	}
	post.CreatedAt = now
	post.UpdatedAt = now
	_, err := s.col.InsertOne(ctx, post)
	return err
}

func (s *Requests) Get(ctx context.Context, id primitive.ObjectID) (*models.RequestPost, error) {
	var post models.RequestPost
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListActive pages through active requests. Emergency requests sort before
// normal ones ("emergency" < "normal" lexicographically), then newest first.
func (s *Requests) ListActive(ctx context.Context, bloodType, requestType string, limit, skip int64) ([]models.RequestPost, int64, error) {
	filter := bson.M{"status": models.RequestActive}
	if bloodType != "" {
		filter["bloodType"] = bloodType
	}
	if requestType != "" {
		filter["requestType"] = requestType
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "requestType", Value: 1}, {Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var posts []models.RequestPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *Requests) ListByReceiver(ctx context.Context, receiverID primitive.ObjectID) ([]models.RequestPost, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.col.Find(ctx, bson.M{"receiverId": receiverID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.RequestPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateStatus sets the request status and returns the updated post, or nil
// when the request does not exist.
func (s *Requests) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.RequestPost, error) {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.RequestPost
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *Requests) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.RequestPost, error) {
	fields["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.RequestPost
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *Requests) ListAll(ctx context.Context, limit, skip int64) ([]models.RequestPost, int64, error) {
	total, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetSkip(skip).SetLimit(limit)
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var posts []models.RequestPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *Requests) CountActive(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"status": models.RequestActive})
}

func (s *Requests) CountActiveEmergency(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{
		"status":      models.RequestActive,
		"requestType": models.RequestEmergency,
	})
}

func (s *Requests) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (s *Requests) DeleteByReceiver(ctx context.Context, receiverID primitive.ObjectID) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"receiverId": receiverID})
	return err
}
