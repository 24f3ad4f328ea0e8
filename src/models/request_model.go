package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RequestPost struct {
	Id          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ReceiverId  primitive.ObjectID `json:"receiverId" bson:"receiverId"`
	BloodType   string             `json:"bloodType" bson:"bloodType"`
	Hospital    string             `json:"hospital" bson:"hospital"`
	RequestType string             `json:"requestType" bson:"requestType"`
	Notes       string             `json:"notes" bson:"notes"`
	Status      string             `json:"status" bson:"status"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type RequestDto struct {
	RequestPost
	Receiver *UserDto `json:"receiverId,omitempty"`
}
