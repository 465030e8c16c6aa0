package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mertcaneren0/arkyatirim/internal/services"
)

// FormHandler handles the public lead-capture forms and their admin views.
type FormHandler struct {
	formService services.IFormService
}

// NewFormHandler creates a new FormHandler.
func NewFormHandler(formService services.IFormService) *FormHandler {
	return &FormHandler{formService: formService}
}

// SubmitListingInquiry handles POST /forms/listing.
func (h *FormHandler) SubmitListingInquiry(c *gin.Context) {
	var input services.ListingInquiryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	form, err := h.formService.SubmitListingInquiry(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Form not found")
		return
	}
	c.JSON(http.StatusCreated, form)
}

// SubmitCareerApplication handles POST /forms/career.
func (h *FormHandler) SubmitCareerApplication(c *gin.Context) {
	var input services.CareerApplicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	form, err := h.formService.SubmitCareerApplication(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Form not found")
		return
	}
	c.JSON(http.StatusCreated, form)
}

// ListListingInquiries handles GET /admin/forms/listing.
func (h *FormHandler) ListListingInquiries(c *gin.Context) {
	forms, err := h.formService.ListListingInquiries(c.Request.Context())
	if err != nil {
		respondError(c, err, "Form not found")
		return
	}
	c.JSON(http.StatusOK, forms)
}

// ListCareerApplications handles GET /admin/forms/career.
func (h *FormHandler) ListCareerApplications(c *gin.Context) {
	forms, err := h.formService.ListCareerApplications(c.Request.Context())
	if err != nil {
		respondError(c, err, "Form not found")
		return
	}
	c.JSON(http.StatusOK, forms)
}

// DeleteListingInquiry handles DELETE /admin/forms/listing/:id.
func (h *FormHandler) DeleteListingInquiry(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form ID format"})
		return
	}

	if err := h.formService.DeleteListingInquiry(c.Request.Context(), id); err != nil {
		respondError(c, err, "Form not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Form deleted successfully"})
}

// DeleteCareerApplication handles DELETE /admin/forms/career/:id.
func (h *FormHandler) DeleteCareerApplication(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form ID format"})
		return
	}

	if err := h.formService.DeleteCareerApplication(c.Request.Context(), id); err != nil {
		respondError(c, err, "Form not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Form deleted successfully"})
}
