package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DonationHistory is an append-only ledger row written once per terminal
// donation transition (expired or completed). Rows are never updated.
type DonationHistory struct {
	Id             primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	DonorId        primitive.ObjectID  `json:"donorId" bson:"donorId"`
	ReceiverId     *primitive.ObjectID `json:"receiverId" bson:"receiverId"`
	BloodType      string              `json:"bloodType" bson:"bloodType"`
	Hospital       string              `json:"hospital" bson:"hospital"`
	DonationDate   time.Time           `json:"donationDate" bson:"donationDate"`
	Quantity       int                 `json:"quantity" bson:"quantity"`
	Status         string              `json:"status" bson:"status"`
	OriginalPostId primitive.ObjectID  `json:"originalPostId" bson:"originalPostId"`
	CreatedAt      time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt" bson:"updatedAt"`
}
