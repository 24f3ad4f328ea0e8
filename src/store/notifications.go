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

// Notifications persists the per-user notification feed.
type Notifications struct {
	col *mongo.Collection
}

func NewNotifications(db *mongo.Database) *Notifications {
	return &Notifications{col: db.Collection("notifications")}
}

func (s *Notifications) Insert(ctx context.Context, n *models.Notification) error {
	now := time.Now()
	if n.Id.IsZero() {
		n.Id = primitive.NewObjectID()
	}
	n.CreatedAt = now
	n.UpdatedAt = now
	_, err := s.col.InsertOne(ctx, n)
	return err
}

// InsertMany writes a fan-out batch in one call.
func (s *Notifications) InsertMany(ctx context.Context, batch []models.Notification) error {
	if len(batch) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, len(batch))
	for i := range batch {
		if batch[i].Id.IsZero() {
			batch[i].Id = primitive.NewObjectID()
		}
		batch[i].CreatedAt = now
		batch[i].UpdatedAt = now
		docs[i] = batch[i]
	}
	_, err := s.col.InsertMany(ctx, docs)
	return err
}

func (s *Notifications) ListByUser(ctx context.Context, userID primitive.ObjectID, limit, skip int64) ([]models.Notification, int64, error) {
	filter := bson.M{"userId": userID}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetSkip(skip).SetLimit(limit)
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (s *Notifications) CountUnread(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"userId": userID, "isRead": false})
}

// MarkRead flips a single notification owned by userID and returns it, or
// nil when it does not exist or belongs to someone else.
func (s *Notifications) MarkRead(ctx context.Context, id, userID primitive.ObjectID) (*models.Notification, error) {
	filter := bson.M{"_id": id, "userId": userID}
	update := bson.M{"$set": bson.M{"isRead": true, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var n models.Notification
	err := s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&n)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *Notifications) MarkAllRead(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	result, err := s.col.UpdateMany(ctx,
		bson.M{"userId": userID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true, "updatedAt": time.Now()}})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (s *Notifications) Delete(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (s *Notifications) DeleteAllForUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	result, err := s.col.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// DeleteByPost removes every notification referencing a deleted post.
func (s *Notifications) DeleteByPost(ctx context.Context, postID primitive.ObjectID) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"postId": postID})
	return err
}
