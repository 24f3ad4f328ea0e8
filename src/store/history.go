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

// History is the append-only donation ledger. Rows are only ever inserted,
// read, or removed wholesale by the admin user cascade.
type History struct {
	col *mongo.Collection
}

func NewHistory(db *mongo.Database) *History {
	return &History{col: db.Collection("donation_history")}
}

func (s *History) Record(ctx context.Context, entry *models.DonationHistory) error {
	now := time.Now()
	if entry.Id.IsZero() {
		entry.Id = primitive.NewObjectID()
	}
	entry.CreatedAt = now
	entry.UpdatedAt = now
	_, err := s.col.InsertOne(ctx, entry)
	return err
}

// ListByDonor pages a donor's ledger, most recent donation first.
func (s *History) ListByDonor(ctx context.Context, donorID primitive.ObjectID, limit, skip int64) ([]models.DonationHistory, int64, error) {
	filter := bson.M{"donorId": donorID}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.M{"donationDate": -1}).SetSkip(skip).SetLimit(limit)
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var entries []models.DonationHistory
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (s *History) CountAll(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{})
}

func (s *History) DeleteByDonor(ctx context.Context, donorID primitive.ObjectID) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"donorId": donorID})
	return err
}
