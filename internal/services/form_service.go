package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mertcaneren0/arkyatirim/internal/models"
)

const (
	listingInquiriesCollection   = "listing_forms"
	careerApplicationsCollection = "career_forms"
)

// ListingInquiryInput is the payload of the public parcel-inquiry form.
type ListingInquiryInput struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	BlockNo  string `json:"blockNo"`
	ParcelNo string `json:"parcelNo"`
}

// Validate reports every missing required field.
func (in *ListingInquiryInput) Validate() error {
	verr := models.NewValidationError()
	requireNonEmpty(verr, "fullName", in.FullName)
	requireNonEmpty(verr, "phone", in.Phone)
	requireNonEmpty(verr, "blockNo", in.BlockNo)
	requireNonEmpty(verr, "parcelNo", in.ParcelNo)
	return verr.OrNil()
}

// CareerApplicationInput is the payload of the public careers form.
type CareerApplicationInput struct {
	FullName string        `json:"fullName"`
	Age      int           `json:"age"`
	Phone    string        `json:"phone"`
	Gender   models.Gender `json:"gender"`
	City     string        `json:"city"`
	District string        `json:"district"`
}

// Validate reports every missing or out-of-enum field.
func (in *CareerApplicationInput) Validate() error {
	verr := models.NewValidationError()
	requireNonEmpty(verr, "fullName", in.FullName)
	requireNonEmpty(verr, "phone", in.Phone)
	requireNonEmpty(verr, "city", in.City)
	requireNonEmpty(verr, "district", in.District)
	if in.Age <= 0 {
		verr.Add("age", "must be a positive number")
	}
	if !models.IsValidGender(in.Gender) {
		verr.Add("gender", "must be Male or Female")
	}
	return verr.OrNil()
}

// IFormService handles the two append-only lead-capture forms.
type IFormService interface {
	SubmitListingInquiry(ctx context.Context, input ListingInquiryInput) (*models.ListingInquiry, error)
	SubmitCareerApplication(ctx context.Context, input CareerApplicationInput) (*models.CareerApplication, error)
	ListListingInquiries(ctx context.Context) ([]models.ListingInquiry, error)
	ListCareerApplications(ctx context.Context) ([]models.CareerApplication, error)
	DeleteListingInquiry(ctx context.Context, id primitive.ObjectID) error
	DeleteCareerApplication(ctx context.Context, id primitive.ObjectID) error
}

type formService struct {
	db *mongo.Database
}

// NewFormService creates a new FormService.
func NewFormService(db *mongo.Database) IFormService {
	return &formService{db: db}
}

func (s *formService) SubmitListingInquiry(ctx context.Context, input ListingInquiryInput) (*models.ListingInquiry, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	form := &models.ListingInquiry{
		ID:        primitive.NewObjectID(),
		FullName:  strings.TrimSpace(input.FullName),
		Phone:     strings.TrimSpace(input.Phone),
		BlockNo:   strings.TrimSpace(input.BlockNo),
		ParcelNo:  strings.TrimSpace(input.ParcelNo),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.db.Collection(listingInquiriesCollection).InsertOne(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to insert listing inquiry: %w", err)
	}
	return form, nil
}

func (s *formService) SubmitCareerApplication(ctx context.Context, input CareerApplicationInput) (*models.CareerApplication, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	form := &models.CareerApplication{
		ID:        primitive.NewObjectID(),
		FullName:  strings.TrimSpace(input.FullName),
		Age:       input.Age,
		Phone:     strings.TrimSpace(input.Phone),
		Gender:    input.Gender,
		City:      strings.TrimSpace(input.City),
		District:  strings.TrimSpace(input.District),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.db.Collection(careerApplicationsCollection).InsertOne(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to insert career application: %w", err)
	}
	return form, nil
}

func (s *formService) ListListingInquiries(ctx context.Context) ([]models.ListingInquiry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.db.Collection(listingInquiriesCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list listing inquiries: %w", err)
	}
	defer cursor.Close(ctx)

	results := []models.ListingInquiry{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode listing inquiries: %w", err)
	}
	return results, nil
}

func (s *formService) ListCareerApplications(ctx context.Context) ([]models.CareerApplication, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.db.Collection(careerApplicationsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list career applications: %w", err)
	}
	defer cursor.Close(ctx)

	results := []models.CareerApplication{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode career applications: %w", err)
	}
	return results, nil
}

func (s *formService) DeleteListingInquiry(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteByID(ctx, listingInquiriesCollection, id)
}

func (s *formService) DeleteCareerApplication(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteByID(ctx, careerApplicationsCollection, id)
}

func (s *formService) deleteByID(ctx context.Context, collection string, id primitive.ObjectID) error {
	result, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", collection, err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
