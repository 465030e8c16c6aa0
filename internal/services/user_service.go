package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mertcaneren0/arkyatirim/internal/auth"
	"github.com/mertcaneren0/arkyatirim/internal/db"
	"github.com/mertcaneren0/arkyatirim/internal/models"
)

const usersCollection = "users"

// ErrInvalidCredentials is returned for any authentication failure. The
// reason (unknown username vs wrong password) is deliberately not exposed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// IUserService defines administrator account operations.
type IUserService interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	FindByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	EnsureAdmin(ctx context.Context, username, password string) error
	UpdatePassword(ctx context.Context, userID primitive.ObjectID, newPassword string) error
}

type userService struct {
	db *mongo.Database
}

// NewUserService creates a new UserService.
func NewUserService(database *mongo.Database) IUserService {
	return &userService{db: database}
}

// Authenticate verifies the username/password pair against the stored hash.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error finding user %s: %w", username, err)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// FindByID looks up an administrator by id.
func (s *userService) FindByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error finding user %s: %w", userID.Hex(), err)
	}
	return &user, nil
}

// EnsureAdmin provisions the administrator credential at seed time. If the
// username already exists the call is a no-op, so restarts are safe.
func (s *userService) EnsureAdmin(ctx context.Context, username, password string) error {
	collection := s.db.Collection(usersCollection)

	// Unique index keeps the credential single even under concurrent seeding
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to ensure username index: %w", err)
	}

	count, err := collection.CountDocuments(ctx, bson.M{"username": username})
	if err != nil {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if count > 0 {
		log.Printf("Admin user %q already provisioned.", username)
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = collection.InsertOne(ctx, models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		if db.IsDuplicateKeyError(err) {
			// Lost a seeding race; the credential exists, which is all we need.
			return nil
		}
		return fmt.Errorf("failed to create admin user %s: %w", username, err)
	}

	log.Printf("Admin user %q created.", username)
	return nil
}

// UpdatePassword replaces the stored password hash.
func (s *userService) UpdatePassword(ctx context.Context, userID primitive.ObjectID, newPassword string) error {
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	result, err := s.db.Collection(usersCollection).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"password": hash}},
	)
	if err != nil {
		return fmt.Errorf("failed to update password for user %s: %w", userID.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
