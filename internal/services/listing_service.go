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

const listingsCollection = "listings"

// CreateListingInput is the validated payload for a new listing.
type CreateListingInput struct {
	Title       string
	Category    models.ListingCategory
	ListingType models.ListingType
	Price       float64
	Area        float64
	City        string
	District    string
	Address     string
	Description string
	Images      []string
	Features    *models.Features
}

// Validate checks required fields, enum membership and numeric invariants,
// reporting every failing field at once.
func (in *CreateListingInput) Validate() error {
	verr := models.NewValidationError()

	requireNonEmpty(verr, "title", in.Title)
	requireNonEmpty(verr, "city", in.City)
	requireNonEmpty(verr, "district", in.District)
	requireNonEmpty(verr, "address", in.Address)
	requireNonEmpty(verr, "description", in.Description)

	if in.Category == "" {
		verr.Add("type", "is required")
	} else if !models.IsValidCategory(in.Category) {
		verr.Add("type", fmt.Sprintf("must be one of: %s", categoryList()))
	}
	if in.ListingType != "" && !models.IsValidListingType(in.ListingType) {
		verr.Add("listingType", "must be ForRent or ForSale")
	}
	if in.Price < 0 {
		verr.Add("price", "must not be negative")
	}
	if in.Area < 0 {
		verr.Add("area", "must not be negative")
	}

	return verr.OrNil()
}

// UpdateListingInput is a partial payload; nil fields are left untouched.
type UpdateListingInput struct {
	Title       *string
	Category    *models.ListingCategory
	ListingType *models.ListingType
	Price       *float64
	Area        *float64
	City        *string
	District    *string
	Address     *string
	Description *string
	// Images, when non-nil, replaces the stored list and becomes the baseline
	// that AppendImages is appended to. When nil the stored list is the
	// baseline.
	Images *[]string
	// AppendImages holds paths of freshly uploaded files; they are always
	// appended, never replacing.
	AppendImages []string
	// Features fields are merged key-by-key; nil keys are preserved.
	Features *models.Features
}

// Validate checks the supplied subset of fields against the same invariants
// as creation.
func (in *UpdateListingInput) Validate() error {
	verr := models.NewValidationError()

	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		verr.Add("title", "must not be empty")
	}
	if in.Category != nil && !models.IsValidCategory(*in.Category) {
		verr.Add("type", fmt.Sprintf("must be one of: %s", categoryList()))
	}
	if in.ListingType != nil && *in.ListingType != "" && !models.IsValidListingType(*in.ListingType) {
		verr.Add("listingType", "must be ForRent or ForSale")
	}
	if in.Price != nil && *in.Price < 0 {
		verr.Add("price", "must not be negative")
	}
	if in.Area != nil && *in.Area < 0 {
		verr.Add("area", "must not be negative")
	}

	return verr.OrNil()
}

func requireNonEmpty(verr *models.ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		verr.Add(field, "is required")
	}
}

func categoryList() string {
	cats := models.ValidCategories()
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

// IListingService defines the interface for listing-related operations.
type IListingService interface {
	CreateListing(ctx context.Context, input CreateListingInput) (*models.Listing, error)
	FindListingByID(ctx context.Context, listingID primitive.ObjectID) (*models.Listing, error)
	SearchListings(ctx context.Context, filter ListingFilter) ([]models.Listing, error)
	UpdateListing(ctx context.Context, listingID primitive.ObjectID, input UpdateListingInput) (*models.Listing, error)
	DeleteListing(ctx context.Context, listingID primitive.ObjectID) (*models.Listing, error)
}

// listingService implements IListingService.
type listingService struct {
	db *mongo.Database
}

// NewListingService creates a new ListingService.
func NewListingService(db *mongo.Database) IListingService {
	return &listingService{db: db}
}

// CreateListing validates and persists a new listing.
func (s *listingService) CreateListing(ctx context.Context, input CreateListingInput) (*models.Listing, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	images := input.Images
	if images == nil {
		images = []string{}
	}
	var features models.Features
	if input.Features != nil {
		features = *input.Features
	}

	listing := &models.Listing{
		ID:          primitive.NewObjectID(),
		Title:       strings.TrimSpace(input.Title),
		Category:    input.Category,
		ListingType: input.ListingType,
		Price:       input.Price,
		Area:        input.Area,
		City:        strings.TrimSpace(input.City),
		District:    strings.TrimSpace(input.District),
		Address:     strings.TrimSpace(input.Address),
		Description: input.Description,
		Images:      images,
		Features:    features,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.db.Collection(listingsCollection).InsertOne(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to insert listing: %w", err)
	}

	return listing, nil
}

// FindListingByID finds a listing by its ID.
func (s *listingService) FindListingByID(ctx context.Context, listingID primitive.ObjectID) (*models.Listing, error) {
	var listing models.Listing
	err := s.db.Collection(listingsCollection).FindOne(ctx, bson.M{"_id": listingID}).Decode(&listing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("error finding listing %s: %w", listingID.Hex(), err)
	}
	return &listing, nil
}

// SearchListings returns listings matching the filter, newest first.
func (s *listingService) SearchListings(ctx context.Context, filter ListingFilter) ([]models.Listing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := s.db.Collection(listingsCollection).Find(ctx, filter.Query(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to execute listing search: %w", err)
	}
	defer cursor.Close(ctx)

	results := []models.Listing{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode listing search results: %w", err)
	}
	return results, nil
}

// UpdateListing merges a partial payload onto an existing listing.
// New image uploads append to the baseline; an explicitly supplied Images
// list replaces the stored list before appending.
func (s *listingService) UpdateListing(ctx context.Context, listingID primitive.ObjectID, input UpdateListingInput) (*models.Listing, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	collection := s.db.Collection(listingsCollection)

	set := bson.M{"updatedAt": time.Now().UTC()}
	if input.Title != nil {
		set["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Category != nil {
		set["type"] = *input.Category
	}
	if input.ListingType != nil {
		set["listingType"] = *input.ListingType
	}
	if input.Price != nil {
		set["price"] = *input.Price
	}
	if input.Area != nil {
		set["area"] = *input.Area
	}
	if input.City != nil {
		set["city"] = strings.TrimSpace(*input.City)
	}
	if input.District != nil {
		set["district"] = strings.TrimSpace(*input.District)
	}
	if input.Address != nil {
		set["address"] = strings.TrimSpace(*input.Address)
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	for key, value := range input.Features.SetFields() {
		set["features."+key] = value
	}

	if input.Images != nil || len(input.AppendImages) > 0 {
		// The baseline requires the current document. Concurrent updates to
		// the same listing are last-write-wins; the engine's per-document
		// atomicity is all that is guaranteed.
		existing, err := s.FindListingByID(ctx, listingID)
		if err != nil {
			return nil, err
		}
		baseline := existing.Images
		if input.Images != nil {
			baseline = *input.Images
		}
		merged := make([]string, 0, len(baseline)+len(input.AppendImages))
		merged = append(merged, baseline...)
		merged = append(merged, input.AppendImages...)
		set["images"] = merged
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Listing
	err := collection.FindOneAndUpdate(ctx, bson.M{"_id": listingID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("failed to update listing %s: %w", listingID.Hex(), err)
	}

	return &updated, nil
}

// DeleteListing removes the record and returns the deleted document so the
// caller can reclaim its image files.
func (s *listingService) DeleteListing(ctx context.Context, listingID primitive.ObjectID) (*models.Listing, error) {
	var deleted models.Listing
	err := s.db.Collection(listingsCollection).FindOneAndDelete(ctx, bson.M{"_id": listingID}).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("failed to delete listing %s: %w", listingID.Hex(), err)
	}
	return &deleted, nil
}
