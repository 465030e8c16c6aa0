package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gender values accepted on career applications.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// IsValidGender reports whether v is a member of the gender enumeration.
func IsValidGender(v Gender) bool {
	return v == GenderMale || v == GenderFemale
}

// ListingInquiry is an append-only lead-capture record from the public
// "sell your parcel" form.
type ListingInquiry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FullName  string             `bson:"fullName" json:"fullName"`
	Phone     string             `bson:"phone" json:"phone"`
	BlockNo   string             `bson:"blockNo" json:"blockNo"`
	ParcelNo  string             `bson:"parcelNo" json:"parcelNo"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// CareerApplication is an append-only record from the public careers form.
type CareerApplication struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FullName  string             `bson:"fullName" json:"fullName"`
	Age       int                `bson:"age" json:"age"`
	Phone     string             `bson:"phone" json:"phone"`
	Gender    Gender             `bson:"gender" json:"gender"`
	City      string             `bson:"city" json:"city"`
	District  string             `bson:"district" json:"district"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
