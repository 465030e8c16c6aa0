package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mertcaneren0/arkyatirim/internal/models"
	"github.com/mertcaneren0/arkyatirim/internal/utils"
)

func setupTestDBForms(t *testing.T, dbName string) *mongo.Database {
	return utils.SetupTestDB(t, dbName, "listing_forms", "career_forms")
}

func TestFormService_ListingInquiry(t *testing.T) {
	db := setupTestDBForms(t, "testdb_form_service_inquiry")
	svc := NewFormService(db)
	ctx := context.Background()

	form, err := svc.SubmitListingInquiry(ctx, ListingInquiryInput{
		FullName: "  Ayse Yilmaz ",
		Phone:    "05321234567",
		BlockNo:  "112",
		ParcelNo: "7",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ayse Yilmaz", form.FullName, "submitted fields are trimmed")
	assert.False(t, form.CreatedAt.IsZero())

	// Missing fields are all reported
	_, err = svc.SubmitListingInquiry(ctx, ListingInquiryInput{Phone: "05321234567"})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "fullName")
	assert.Contains(t, verr.Fields, "blockNo")
	assert.Contains(t, verr.Fields, "parcelNo")

	forms, err := svc.ListListingInquiries(ctx)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, form.ID, forms[0].ID)

	require.NoError(t, svc.DeleteListingInquiry(ctx, form.ID))
	err = svc.DeleteListingInquiry(ctx, form.ID)
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
}

func TestFormService_CareerApplication(t *testing.T) {
	db := setupTestDBForms(t, "testdb_form_service_career")
	svc := NewFormService(db)
	ctx := context.Background()

	form, err := svc.SubmitCareerApplication(ctx, CareerApplicationInput{
		FullName: "Mehmet Demir",
		Age:      28,
		Phone:    "05329876543",
		Gender:   models.GenderMale,
		City:     "Tekirdag",
		District: "Corlu",
	})
	require.NoError(t, err)
	assert.Equal(t, 28, form.Age)

	// Out-of-enum gender and non-positive age are rejected
	_, err = svc.SubmitCareerApplication(ctx, CareerApplicationInput{
		FullName: "Mehmet Demir",
		Age:      0,
		Phone:    "05329876543",
		Gender:   "Other",
		City:     "Tekirdag",
		District: "Corlu",
	})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "age")
	assert.Contains(t, verr.Fields, "gender")

	forms, err := svc.ListCareerApplications(ctx)
	require.NoError(t, err)
	assert.Len(t, forms, 1)

	err = svc.DeleteCareerApplication(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)
	require.NoError(t, svc.DeleteCareerApplication(ctx, form.ID))
}
