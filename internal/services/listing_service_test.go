package services

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mertcaneren0/arkyatirim/internal/models"
	"github.com/mertcaneren0/arkyatirim/internal/utils"
)

func setupTestDBListing(t *testing.T, dbName string) *mongo.Database {
	return utils.SetupTestDB(t, dbName, "listings")
}

func validCreateInput() CreateListingInput {
	return CreateListingInput{
		Title:       "2+1 Apartment in the Center",
		Category:    models.CategoryApartment,
		ListingType: models.ListingForSale,
		Price:       2500000,
		Area:        95,
		City:        "Tekirdag",
		District:    "Corlu",
		Address:     "Centre, Main Street 12",
		Description: "Bright apartment close to everything.",
	}
}

func TestListingService_CRUD(t *testing.T) {
	db := setupTestDBListing(t, "testdb_listing_service_crud")
	svc := NewListingService(db)
	ctx := context.Background()

	// Create a listing
	listing, err := svc.CreateListing(ctx, validCreateInput())
	assert.NoError(t, err)
	assert.NotNil(t, listing)
	assert.Equal(t, "2+1 Apartment in the Center", listing.Title)
	assert.NotNil(t, listing.Images, "images must never be null")

	// Find the created listing
	found, err := svc.FindListingByID(ctx, listing.ID)
	assert.NoError(t, err)
	assert.NotNil(t, found)
	assert.Equal(t, listing.ID, found.ID)

	// Try to find non-existent listing
	notFound, err := svc.FindListingByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
	assert.Nil(t, notFound)

	// Update the listing
	newTitle := "Renovated 2+1 Apartment"
	newPrice := 2650000.0
	updated, err := svc.UpdateListing(ctx, listing.ID, UpdateListingInput{Title: &newTitle, Price: &newPrice})
	assert.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, newPrice, updated.Price)
	// Untouched fields survive
	assert.Equal(t, listing.City, updated.City)
	assert.True(t, updated.UpdatedAt.After(listing.UpdatedAt))

	// Delete the listing; the deleted document comes back for file cleanup
	deleted, err := svc.DeleteListing(ctx, listing.ID)
	assert.NoError(t, err)
	assert.Equal(t, listing.ID, deleted.ID)

	// Verify listing is deleted
	_, err = svc.FindListingByID(ctx, listing.ID)
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)

	// Updating or deleting a deleted listing reports not found
	_, err = svc.UpdateListing(ctx, listing.ID, UpdateListingInput{Title: &newTitle})
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
	_, err = svc.DeleteListing(ctx, listing.ID)
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

func TestListingService_CreateValidation(t *testing.T) {
	db := setupTestDBListing(t, "testdb_listing_service_validation")
	svc := NewListingService(db)
	ctx := context.Background()

	// Every failing field is reported at once
	input := CreateListingInput{
		Category: "Castle",
		Price:    -1,
	}
	_, err := svc.CreateListing(ctx, input)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "city")
	assert.Contains(t, verr.Fields, "district")
	assert.Contains(t, verr.Fields, "address")
	assert.Contains(t, verr.Fields, "description")
	assert.Contains(t, verr.Fields, "type")
	assert.Contains(t, verr.Fields, "price")

	// Bad listingType on an otherwise valid payload
	bad := validCreateInput()
	bad.ListingType = "Leased"
	_, err = svc.CreateListing(ctx, bad)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "listingType")

	// ListingType is optional
	ok := validCreateInput()
	ok.ListingType = ""
	created, err := svc.CreateListing(ctx, ok)
	assert.NoError(t, err)
	assert.Empty(t, created.ListingType)
}

func TestListingService_UpdateImages(t *testing.T) {
	db := setupTestDBListing(t, "testdb_listing_service_images")
	svc := NewListingService(db)
	ctx := context.Background()

	input := validCreateInput()
	input.Images = []string{"/uploads/a.jpg", "/uploads/b.jpg"}
	listing, err := svc.CreateListing(ctx, input)
	require.NoError(t, err)

	// Fresh uploads append to the stored list
	updated, err := svc.UpdateListing(ctx, listing.ID, UpdateListingInput{
		AppendImages: []string{"/uploads/c.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/a.jpg", "/uploads/b.jpg", "/uploads/c.jpg"}, updated.Images)

	// An explicit list replaces the baseline, then uploads append
	replacement := []string{"/uploads/b.jpg"}
	updated, err = svc.UpdateListing(ctx, listing.ID, UpdateListingInput{
		Images:       &replacement,
		AppendImages: []string{"/uploads/d.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/b.jpg", "/uploads/d.jpg"}, updated.Images)

	// An update that never mentions images leaves them alone
	title := "untouched images"
	updated, err = svc.UpdateListing(ctx, listing.ID, UpdateListingInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/b.jpg", "/uploads/d.jpg"}, updated.Images)
}

func TestListingService_UpdateFeaturesMerge(t *testing.T) {
	db := setupTestDBListing(t, "testdb_listing_service_features")
	svc := NewListingService(db)
	ctx := context.Background()

	floor := 3
	parking := true
	input := validCreateInput()
	input.Features = &models.Features{Floor: &floor, HasParking: &parking}
	listing, err := svc.CreateListing(ctx, input)
	require.NoError(t, err)

	// Supplying one feature key leaves the others intact
	elevator := true
	updated, err := svc.UpdateListing(ctx, listing.ID, UpdateListingInput{
		Features: &models.Features{HasElevator: &elevator},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Features.Floor)
	assert.Equal(t, 3, *updated.Features.Floor)
	require.NotNil(t, updated.Features.HasParking)
	assert.True(t, *updated.Features.HasParking)
	require.NotNil(t, updated.Features.HasElevator)
	assert.True(t, *updated.Features.HasElevator)

	// Overwriting an existing key takes the new value
	newFloor := 5
	updated, err = svc.UpdateListing(ctx, listing.ID, UpdateListingInput{
		Features: &models.Features{Floor: &newFloor},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, *updated.Features.Floor)
	assert.True(t, *updated.Features.HasElevator)
}

func TestListingService_SearchFilters(t *testing.T) {
	db := setupTestDBListing(t, "testdb_listing_service_search")
	svc := NewListingService(db)
	ctx := context.Background()

	parking := true
	apartment := validCreateInput()
	apartment.Features = &models.Features{HasParking: &parking}

	land := validCreateInput()
	land.Title = "Zoned land near the highway"
	land.Category = models.CategoryLand
	land.ListingType = ""
	land.Price = 900000
	land.Area = 1200
	land.District = "Ergene"

	_, err := svc.CreateListing(ctx, apartment)
	require.NoError(t, err)
	_, err = svc.CreateListing(ctx, land)
	require.NoError(t, err)

	// No filter returns everything
	all, err := svc.SearchListings(ctx, ListingFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Category filter
	results, err := svc.SearchListings(ctx, ParseListingFilter(url.Values{"type": {"Land"}}))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, models.CategoryLand, results[0].Category)

	// Price range is inclusive on both ends
	results, err = svc.SearchListings(ctx, ParseListingFilter(url.Values{
		"minPrice": {"900000"},
		"maxPrice": {"900000"},
	}))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 900000.0, results[0].Price)

	// Dimensions compose conjunctively
	results, err = svc.SearchListings(ctx, ParseListingFilter(url.Values{
		"type": {"Land"},
		"city": {"Tekirdag"},
	}))
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = svc.SearchListings(ctx, ParseListingFilter(url.Values{
		"type":     {"Land"},
		"district": {"Corlu"},
	}))
	require.NoError(t, err)
	assert.Len(t, results, 0)
	assert.NotNil(t, results, "no matches must be an empty array, not null")

	// Feature flag filter matches only listings where the key is true
	results, err = svc.SearchListings(ctx, ParseListingFilter(url.Values{"features": {"hasParking"}}))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, models.CategoryApartment, results[0].Category)
}
