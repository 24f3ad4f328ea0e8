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

// Users persists user documents. Lookups return (nil, nil) when no document
// matches so callers can distinguish absence from infrastructure failure.
type Users struct {
	col *mongo.Collection
}

func NewUsers(db *mongo.Database) *Users {
	return &Users{col: db.Collection("users")}
}

func (s *Users) Create(ctx context.Context, user *models.User) error {
	now := time.Now()
	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	_, err := s.col.InsertOne(ctx, user)
	return err
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Users) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies the given field set and returns the updated user.
func (s *Users) UpdateProfile(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	fields["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RecordDonation bumps the donor's counters after a successful donation post:
// lastDonation, donationCount and the derived badge.
func (s *Users) RecordDonation(ctx context.Context, id primitive.ObjectID, donationDate time.Time, badge string) (*models.User, error) {
	update := bson.M{
		"$set": bson.M{
			"lastDonation": donationDate,
			"badge":        badge,
			"updatedAt":    time.Now(),
		},
		"$inc": bson.M{"donationCount": 1},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListByRole returns every user holding the given role. Used by the
// notification fan-out to enumerate counterpart-role recipients.
func (s *Users) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	cursor, err := s.col.Find(ctx, bson.M{"role": role})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListNonAdmin pages through donor/receiver accounts, optionally restricted
// to a single role.
func (s *Users) ListNonAdmin(ctx context.Context, role string, limit, skip int64) ([]models.User, int64, error) {
	filter := bson.M{"role": bson.M{"$ne": models.RoleAdmin}}
	if role == models.RoleDonor || role == models.RoleReceiver {
		filter = bson.M{"role": role}
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

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (s *Users) CountByRole(ctx context.Context, role string) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"role": role})
}

func (s *Users) CountNonAdmin(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"role": bson.M{"$ne": models.RoleAdmin}})
}

func (s *Users) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
