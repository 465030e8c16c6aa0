package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mertcaneren0/arkyatirim/internal/models"
)

const teamMembersCollection = "team_members"

// CreateTeamMemberInput is the payload for a new roster entry.
type CreateTeamMemberInput struct {
	FullName     string
	Position     string
	Bio          string
	Specialties  []string
	ProfileImage string
	Order        int
	IsActive     bool
}

// Validate reports every missing required field.
func (in *CreateTeamMemberInput) Validate() error {
	verr := models.NewValidationError()
	requireNonEmpty(verr, "fullName", in.FullName)
	requireNonEmpty(verr, "position", in.Position)
	requireNonEmpty(verr, "bio", in.Bio)
	if in.Order < 0 {
		verr.Add("order", "must not be negative")
	}
	return verr.OrNil()
}

// UpdateTeamMemberInput is a partial payload; nil fields are left untouched.
type UpdateTeamMemberInput struct {
	FullName     *string
	Position     *string
	Bio          *string
	Specialties  *[]string
	ProfileImage *string
	Order        *int
	IsActive     *bool
}

// ITeamService manages the team roster.
type ITeamService interface {
	ListMembers(ctx context.Context) ([]models.TeamMember, error)
	ListActiveMembers(ctx context.Context) ([]models.TeamMember, error)
	FindMemberByID(ctx context.Context, id primitive.ObjectID) (*models.TeamMember, error)
	CreateMember(ctx context.Context, input CreateTeamMemberInput) (*models.TeamMember, error)
	UpdateMember(ctx context.Context, id primitive.ObjectID, input UpdateTeamMemberInput) (*models.TeamMember, error)
	DeleteMember(ctx context.Context, id primitive.ObjectID) (*models.TeamMember, error)
	UpdateOrder(ctx context.Context, ordering map[primitive.ObjectID]int) error
}

type teamService struct {
	db *mongo.Database
}

// NewTeamService creates a new TeamService.
func NewTeamService(db *mongo.Database) ITeamService {
	return &teamService{db: db}
}

func (s *teamService) ListMembers(ctx context.Context) ([]models.TeamMember, error) {
	return s.list(ctx, bson.M{})
}

func (s *teamService) ListActiveMembers(ctx context.Context) ([]models.TeamMember, error) {
	return s.list(ctx, bson.M{"isActive": true})
}

func (s *teamService) list(ctx context.Context, filter bson.M) ([]models.TeamMember, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: 1}})
	cursor, err := s.db.Collection(teamMembersCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer cursor.Close(ctx)

	results := []models.TeamMember{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode team members: %w", err)
	}
	return results, nil
}

func (s *teamService) FindMemberByID(ctx context.Context, id primitive.ObjectID) (*models.TeamMember, error) {
	var member models.TeamMember
	err := s.db.Collection(teamMembersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("failed to find team member %s: %w", id.Hex(), err)
	}
	return &member, nil
}

func (s *teamService) CreateMember(ctx context.Context, input CreateTeamMemberInput) (*models.TeamMember, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	specialties := input.Specialties
	if specialties == nil {
		specialties = []string{}
	}

	member := &models.TeamMember{
		ID:           primitive.NewObjectID(),
		FullName:     strings.TrimSpace(input.FullName),
		Position:     strings.TrimSpace(input.Position),
		Bio:          strings.TrimSpace(input.Bio),
		Specialties:  specialties,
		ProfileImage: input.ProfileImage,
		Order:        input.Order,
		IsActive:     input.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.db.Collection(teamMembersCollection).InsertOne(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to insert team member: %w", err)
	}
	return member, nil
}

func (s *teamService) UpdateMember(ctx context.Context, id primitive.ObjectID, input UpdateTeamMemberInput) (*models.TeamMember, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if input.FullName != nil {
		set["fullName"] = strings.TrimSpace(*input.FullName)
	}
	if input.Position != nil {
		set["position"] = strings.TrimSpace(*input.Position)
	}
	if input.Bio != nil {
		set["bio"] = strings.TrimSpace(*input.Bio)
	}
	if input.Specialties != nil {
		set["specialties"] = *input.Specialties
	}
	if input.ProfileImage != nil {
		set["profileImage"] = *input.ProfileImage
	}
	if input.Order != nil {
		set["order"] = *input.Order
	}
	if input.IsActive != nil {
		set["isActive"] = *input.IsActive
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.TeamMember
	err := s.db.Collection(teamMembersCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("failed to update team member %s: %w", id.Hex(), err)
	}
	return &updated, nil
}

func (s *teamService) DeleteMember(ctx context.Context, id primitive.ObjectID) (*models.TeamMember, error) {
	var deleted models.TeamMember
	err := s.db.Collection(teamMembersCollection).FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("failed to delete team member %s: %w", id.Hex(), err)
	}
	return &deleted, nil
}

// UpdateOrder applies a bulk reordering of roster entries. Unknown ids are
// ignored.
func (s *teamService) UpdateOrder(ctx context.Context, ordering map[primitive.ObjectID]int) error {
	if len(ordering) == 0 {
		return nil
	}

	writes := make([]mongo.WriteModel, 0, len(ordering))
	now := time.Now().UTC()
	for id, order := range ordering {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": id}).
			SetUpdate(bson.M{"$set": bson.M{"order": order, "updatedAt": now}}))
	}

	if _, err := s.db.Collection(teamMembersCollection).BulkWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to update team order: %w", err)
	}
	return nil
}
