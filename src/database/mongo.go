package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/SyedAzeem24/blood-donation-system/src/models"
)

// Connect opens a Mongo client, verifies the connection with a ping and
// returns the application database. The caller owns the client lifecycle and
// must Disconnect it on shutdown.
func Connect(ctx context.Context, uri, name string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}
	return client, client.Database(name), nil
}

// EnsureIndexes creates the indexes backing each collection's dominant query.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"donation_posts": {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "expiryDate", Value: 1}}},
			{Keys: bson.D{{Key: "donorId", Value: 1}}},
		},
		"request_posts": {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "requestType", Value: 1}}},
			{Keys: bson.D{{Key: "receiverId", Value: 1}}},
		},
		"donation_history": {
			{Keys: bson.D{{Key: "donorId", Value: 1}, {Key: "donationDate", Value: -1}}},
		},
		"notifications": {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "isRead", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

// SeedAdmin creates the moderation account on first start. Registration only
// issues donor and receiver roles, so without this there is no admin.
func SeedAdmin(ctx context.Context, db *mongo.Database, email, password string) error {
	users := db.Collection("users")

	err := users.FindOne(ctx, bson.M{"role": models.RoleAdmin}).Err()
	if err == nil {
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = users.InsertOne(ctx, models.User{
		Role:      models.RoleAdmin,
		Email:     email,
		Password:  string(hashed),
		FullName:  "System Administrator",
		BloodType: "O+",
		Badge:     "None",
		CreatedAt: now,
		UpdatedAt: now,
	})
	return err
}
