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

// Donations persists donation posts. It satisfies lifecycle.DonationStore.
type Donations struct {
	col *mongo.Collection
}

func NewDonations(db *mongo.Database) *Donations {
	return &Donations{col: db.Collection("donation_posts")}
}

func (s *Donations) Create(ctx context.Context, post *models.DonationPost) error {
	now := time.Now()
	if post.Id.IsZero() {
		post.Id = primitive.NewObjectID()
	}
	post.CreatedAt = now
	post.UpdatedAt = now
	_, err := s.col.InsertOne(ctx, post)
	return err
}

func (s *Donations) Get(ctx context.Context, id primitive.ObjectID) (*models.DonationPost, error) {
	var post models.DonationPost
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListAvailable pages through available posts, newest first, optionally
// filtered by blood type.
func (s *Donations) ListAvailable(ctx context.Context, bloodType string, limit, skip int64) ([]models.DonationPost, int64, error) {
	filter := bson.M{"status": models.DonationAvailable}
	if bloodType != "" {
		filter["bloodType"] = bloodType
	}

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

	var posts []models.DonationPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *Donations) ListByDonor(ctx context.Context, donorID primitive.ObjectID) ([]models.DonationPost, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.col.Find(ctx, bson.M{"donorId": donorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.DonationPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListExpired returns available posts whose expiry date has passed.
func (s *Donations) ListExpired(ctx context.Context, now time.Time) ([]models.DonationPost, error) {
	filter := bson.M{
		"status":     models.DonationAvailable,
		"expiryDate": bson.M{"$lt": now},
	}
	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []models.DonationPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// TransitionStatus atomically flips a post from one status to another. It
// returns the pre-update document when the guard matched and nil when the
// post is missing or no longer in the `from` status, which is how concurrent
// fulfillments and sweeps are serialized.
func (s *Donations) TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to string) (*models.DonationPost, error) {
	filter := bson.M{"_id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var post models.DonationPost
	err := s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdateFields applies an admin edit and returns the updated post.
func (s *Donations) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.DonationPost, error) {
	fields["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.DonationPost
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *Donations) ListAll(ctx context.Context, limit, skip int64) ([]models.DonationPost, int64, error) {
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

	var posts []models.DonationPost
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *Donations) CountByStatus(ctx context.Context, status string) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"status": status})
}

// BloodTypeCount is one bucket of the availability aggregation.
type BloodTypeCount struct {
	BloodType string `bson:"_id" json:"bloodType"`
	Count     int64  `bson:"count" json:"count"`
}

// AvailableByBloodType groups available posts per blood type for the admin
// stats dashboard.
func (s *Donations) AvailableByBloodType(ctx context.Context) ([]BloodTypeCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.DonationAvailable}}},
		{{Key: "$group", Value: bson.M{"_id": "$bloodType", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var buckets []BloodTypeCount
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

func (s *Donations) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (s *Donations) DeleteByDonor(ctx context.Context, donorID primitive.ObjectID) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"donorId": donorID})
	return err
}
