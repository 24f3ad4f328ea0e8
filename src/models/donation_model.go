package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DonationPost struct {
	Id           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	DonorId      primitive.ObjectID `json:"donorId" bson:"donorId"`
	BloodType    string             `json:"bloodType" bson:"bloodType"`
	Hospital     string             `json:"hospital" bson:"hospital"`
	DonationDate time.Time          `json:"donationDate" bson:"donationDate"`
	ExpiryDate   time.Time          `json:"expiryDate" bson:"expiryDate"`
	Quantity     int                `json:"quantity" bson:"quantity"`
	Status       string             `json:"status" bson:"status"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// DonationDto carries a donation together with its donor's public profile.
type DonationDto struct {
	DonationPost
	Donor *UserDto `json:"donorId,omitempty"`
}
