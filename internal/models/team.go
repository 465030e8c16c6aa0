package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamMember is a roster entry shown on the public team page.
type TeamMember struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FullName     string             `bson:"fullName" json:"fullName"`
	Position     string             `bson:"position" json:"position"`
	Bio          string             `bson:"bio" json:"bio"`
	Specialties  []string           `bson:"specialties" json:"specialties"`
	ProfileImage string             `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Order        int                `bson:"order" json:"order"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
