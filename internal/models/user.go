package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the administrator account. There is a single shared credential:
// no roles, no multi-tenancy.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"password" json:"-"` // Store hash, not plaintext
}
