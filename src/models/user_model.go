package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	Id            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Role          string             `json:"role" bson:"role"`
	Email         string             `json:"email" bson:"email"`
	Password      string             `json:"-" bson:"password"`
	FullName      string             `json:"fullName" bson:"fullName"`
	BloodType     string             `json:"bloodType" bson:"bloodType"`
	Phone         string             `json:"phone" bson:"phone"`
	LastDonation  *time.Time         `json:"lastDonation" bson:"lastDonation"`
	DonationCount int                `json:"donationCount" bson:"donationCount"`
	Badge         string             `json:"badge" bson:"badge"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// UserDto is the public projection attached to posts and listings.
type UserDto struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	FullName string             `json:"fullName" bson:"fullName"`
	Email    string             `json:"email" bson:"email"`
	Phone    string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Badge    string             `json:"badge,omitempty" bson:"badge,omitempty"`
}

func (u *User) Dto() UserDto {
	return UserDto{
		ID:       u.Id,
		FullName: u.FullName,
		Email:    u.Email,
		Phone:    u.Phone,
		Badge:    u.Badge,
	}
}
