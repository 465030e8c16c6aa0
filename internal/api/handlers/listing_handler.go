package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mertcaneren0/arkyatirim/internal/cache"
	"github.com/mertcaneren0/arkyatirim/internal/models"
	"github.com/mertcaneren0/arkyatirim/internal/services"
	"github.com/mertcaneren0/arkyatirim/internal/storage"
	"github.com/mertcaneren0/arkyatirim/internal/tasks"
)

// imagesField is the multipart field name carrying listing image files.
const imagesField = "images"

// ListingHandler orchestrates listing reads and admin mutations: ingestion
// runs before payload validation, persistence last, and stored-but-
// unpersisted files get a best-effort cleanup task.
type ListingHandler struct {
	listingService services.IListingService
	ingestor       *storage.Ingestor
	listingCache   *cache.ListingCache
	taskClient     tasks.Enqueuer
}

// NewListingHandler creates a new ListingHandler. listingCache and taskClient
// may be nil (caching and async cleanup are then skipped).
func NewListingHandler(listingService services.IListingService, ingestor *storage.Ingestor, listingCache *cache.ListingCache, taskClient tasks.Enqueuer) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
		ingestor:       ingestor,
		listingCache:   listingCache,
		taskClient:     taskClient,
	}
}

// SearchListings handles GET /listings.
func (h *ListingHandler) SearchListings(c *gin.Context) {
	rawQuery := c.Request.URL.RawQuery
	if h.listingCache != nil {
		if body, ok := h.listingCache.Get(c.Request.Context(), rawQuery); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			return
		}
	}

	filter := services.ParseListingFilter(c.Request.URL.Query())
	listings, err := h.listingService.SearchListings(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Listing not found")
		return
	}

	body, err := json.Marshal(listings)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if h.listingCache != nil {
		h.listingCache.Set(c.Request.Context(), rawQuery, body)
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// GetListingByID handles GET /listings/:id.
func (h *ListingHandler) GetListingByID(c *gin.Context) {
	listingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID format"})
		return
	}

	listing, err := h.listingService.FindListingByID(c.Request.Context(), listingID)
	if err != nil {
		respondError(c, err, "Listing not found")
		return
	}
	c.JSON(http.StatusOK, listing)
}

// CreateListing handles POST /listings (multipart).
func (h *ListingHandler) CreateListing(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	// Image validation runs before payload validation so a bad batch is
	// rejected before anything else happens.
	imagePaths, err := h.ingestor.SaveAll(c.Request.Context(), form.File[imagesField])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, verr := parseCreateInput(c)
	if verr.HasErrors() {
		h.cleanupStored(imagePaths)
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
		return
	}
	input.Images = imagePaths

	listing, err := h.listingService.CreateListing(c.Request.Context(), input)
	if err != nil {
		// The files were already stored; compensate best-effort.
		h.cleanupStored(imagePaths)
		respondError(c, err, "Listing not found")
		return
	}

	h.invalidateCache(c)
	c.JSON(http.StatusCreated, listing)
}

// UpdateListing handles PUT /listings/:id (multipart, partial).
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	listingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID format"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	imagePaths, err := h.ingestor.SaveAll(c.Request.Context(), form.File[imagesField])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, verr := parseUpdateInput(c)
	if verr.HasErrors() {
		h.cleanupStored(imagePaths)
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
		return
	}
	// New uploads always append; an explicit images array (parsed above)
	// becomes the baseline first.
	input.AppendImages = imagePaths

	listing, err := h.listingService.UpdateListing(c.Request.Context(), listingID, input)
	if err != nil {
		h.cleanupStored(imagePaths)
		respondError(c, err, "Listing not found")
		return
	}

	h.invalidateCache(c)
	c.JSON(http.StatusOK, listing)
}

// DeleteListing handles DELETE /listings/:id.
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	listingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID format"})
		return
	}

	deleted, err := h.listingService.DeleteListing(c.Request.Context(), listingID)
	if err != nil {
		respondError(c, err, "Listing not found")
		return
	}

	// Reclaim the stored image files; failures never surface to the caller.
	h.cleanupStored(deleted.Images)
	h.invalidateCache(c)
	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted successfully"})
}

func (h *ListingHandler) cleanupStored(paths []string) {
	if h.taskClient != nil {
		tasks.EnqueueImageCleanup(h.taskClient, paths)
	}
}

func (h *ListingHandler) invalidateCache(c *gin.Context) {
	if h.listingCache != nil {
		h.listingCache.Invalidate(c.Request.Context())
	}
}

// parseCreateInput coerces the stringly-typed multipart fields into a typed
// input. Coercion failures are collected as field errors, never silently
// defaulted.
func parseCreateInput(c *gin.Context) (services.CreateListingInput, *models.ValidationError) {
	verr := models.NewValidationError()
	input := services.CreateListingInput{
		Title:       c.PostForm("title"),
		Category:    models.ListingCategory(c.PostForm("type")),
		ListingType: models.ListingType(c.PostForm("listingType")),
		City:        c.PostForm("city"),
		District:    c.PostForm("district"),
		Address:     c.PostForm("address"),
		Description: c.PostForm("description"),
	}

	input.Price = parseFormFloat(c.PostForm("price"), "price", verr)
	input.Area = parseFormFloat(c.PostForm("area"), "area", verr)
	input.Features = parseFeaturesField(c, verr)

	return input, verr
}

func parseUpdateInput(c *gin.Context) (services.UpdateListingInput, *models.ValidationError) {
	verr := models.NewValidationError()
	var input services.UpdateListingInput

	if v, ok := c.GetPostForm("title"); ok {
		input.Title = &v
	}
	if v, ok := c.GetPostForm("type"); ok {
		cat := models.ListingCategory(v)
		input.Category = &cat
	}
	if v, ok := c.GetPostForm("listingType"); ok {
		lt := models.ListingType(v)
		input.ListingType = &lt
	}
	if v, ok := c.GetPostForm("city"); ok {
		input.City = &v
	}
	if v, ok := c.GetPostForm("district"); ok {
		input.District = &v
	}
	if v, ok := c.GetPostForm("address"); ok {
		input.Address = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		input.Description = &v
	}
	if v, ok := c.GetPostForm("price"); ok {
		price := parseFormFloat(v, "price", verr)
		input.Price = &price
	}
	if v, ok := c.GetPostForm("area"); ok {
		area := parseFormFloat(v, "area", verr)
		input.Area = &area
	}
	if v, ok := c.GetPostForm("images"); ok {
		var baseline []string
		if err := json.Unmarshal([]byte(v), &baseline); err != nil {
			verr.Add("images", "must be a JSON array of image paths")
		} else {
			input.Images = &baseline
		}
	}
	input.Features = parseFeaturesField(c, verr)

	return input, verr
}

func parseFormFloat(raw, field string, verr *models.ValidationError) float64 {
	if raw == "" {
		verr.Add(field, "is required")
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		verr.Add(field, "must be a number")
		return 0
	}
	return v
}

// parseFeaturesField decodes the features sub-document, which arrives as a
// JSON string form field. Unknown keys are ignored on read.
func parseFeaturesField(c *gin.Context, verr *models.ValidationError) *models.Features {
	raw, ok := c.GetPostForm("features")
	if !ok || raw == "" {
		return nil
	}
	var features models.Features
	if err := json.Unmarshal([]byte(raw), &features); err != nil {
		verr.Add("features", "must be a valid JSON object")
		return nil
	}
	return &features
}
