package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mertcaneren0/arkyatirim/internal/models"
	"github.com/mertcaneren0/arkyatirim/internal/services"
	"github.com/mertcaneren0/arkyatirim/internal/storage"
	"github.com/mertcaneren0/arkyatirim/internal/tasks"
)

const profileImageField = "profileImage"

// TeamHandler handles the team roster, public listing and admin maintenance.
type TeamHandler struct {
	teamService services.ITeamService
	ingestor    *storage.Ingestor
	taskClient  tasks.Enqueuer
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService services.ITeamService, ingestor *storage.Ingestor, taskClient tasks.Enqueuer) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
		ingestor:    ingestor,
		taskClient:  taskClient,
	}
}

// ListActiveMembers handles GET /team/active. Only active entries, in display
// order.
func (h *TeamHandler) ListActiveMembers(c *gin.Context) {
	members, err := h.teamService.ListActiveMembers(c.Request.Context())
	if err != nil {
		respondError(c, err, "Team member not found")
		return
	}
	c.JSON(http.StatusOK, members)
}

// ListMembers handles GET /admin/team.
func (h *TeamHandler) ListMembers(c *gin.Context) {
	members, err := h.teamService.ListMembers(c.Request.Context())
	if err != nil {
		respondError(c, err, "Team member not found")
		return
	}
	c.JSON(http.StatusOK, members)
}

// CreateMember handles POST /admin/team (multipart).
func (h *TeamHandler) CreateMember(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	imagePaths, err := h.ingestor.SaveAll(c.Request.Context(), form.File[profileImageField])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, verr := parseCreateMemberInput(c)
	if verr.HasErrors() {
		h.cleanupStored(imagePaths)
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
		return
	}
	if len(imagePaths) > 0 {
		input.ProfileImage = imagePaths[0]
	}

	member, err := h.teamService.CreateMember(c.Request.Context(), input)
	if err != nil {
		h.cleanupStored(imagePaths)
		respondError(c, err, "Team member not found")
		return
	}
	c.JSON(http.StatusCreated, member)
}

// UpdateMember handles PUT /admin/team/:id (multipart, partial). Uploading a
// new profile image replaces the old one and reclaims its file.
func (h *TeamHandler) UpdateMember(c *gin.Context) {
	memberID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team member ID format"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	imagePaths, err := h.ingestor.SaveAll(c.Request.Context(), form.File[profileImageField])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, verr := parseUpdateMemberInput(c)
	if verr.HasErrors() {
		h.cleanupStored(imagePaths)
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
		return
	}
	if len(imagePaths) > 0 {
		input.ProfileImage = &imagePaths[0]
	}

	var previousImage string
	if input.ProfileImage != nil {
		if existing, err := h.teamService.FindMemberByID(c.Request.Context(), memberID); err == nil {
			previousImage = existing.ProfileImage
		}
	}

	member, err := h.teamService.UpdateMember(c.Request.Context(), memberID, input)
	if err != nil {
		h.cleanupStored(imagePaths)
		respondError(c, err, "Team member not found")
		return
	}

	if previousImage != "" && previousImage != member.ProfileImage {
		h.cleanupStored([]string{previousImage})
	}
	c.JSON(http.StatusOK, member)
}

// DeleteMember handles DELETE /admin/team/:id.
func (h *TeamHandler) DeleteMember(c *gin.Context) {
	memberID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team member ID format"})
		return
	}

	deleted, err := h.teamService.DeleteMember(c.Request.Context(), memberID)
	if err != nil {
		respondError(c, err, "Team member not found")
		return
	}

	if deleted.ProfileImage != "" {
		h.cleanupStored([]string{deleted.ProfileImage})
	}
	c.JSON(http.StatusOK, gin.H{"message": "Team member deleted successfully"})
}

type orderEntry struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// UpdateOrder handles PUT /admin/team/order with a JSON array of id/order
// pairs.
func (h *TeamHandler) UpdateOrder(c *gin.Context) {
	var entries []orderEntry
	if err := c.ShouldBindJSON(&entries); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ordering := make(map[primitive.ObjectID]int, len(entries))
	for _, e := range entries {
		id, err := primitive.ObjectIDFromHex(e.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team member ID format"})
			return
		}
		ordering[id] = e.Order
	}

	if err := h.teamService.UpdateOrder(c.Request.Context(), ordering); err != nil {
		respondError(c, err, "Team member not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Team order updated successfully"})
}

func (h *TeamHandler) cleanupStored(paths []string) {
	if h.taskClient != nil {
		tasks.EnqueueImageCleanup(h.taskClient, paths)
	}
}

func parseCreateMemberInput(c *gin.Context) (services.CreateTeamMemberInput, *models.ValidationError) {
	verr := models.NewValidationError()
	input := services.CreateTeamMemberInput{
		FullName: c.PostForm("fullName"),
		Position: c.PostForm("position"),
		Bio:      c.PostForm("bio"),
		IsActive: true,
	}

	if raw, ok := c.GetPostForm("specialties"); ok && raw != "" {
		var specialties []string
		if err := json.Unmarshal([]byte(raw), &specialties); err != nil {
			verr.Add("specialties", "must be a JSON array of strings")
		} else {
			input.Specialties = specialties
		}
	}
	if raw, ok := c.GetPostForm("order"); ok {
		order, err := strconv.Atoi(raw)
		if err != nil {
			verr.Add("order", "must be a number")
		} else {
			input.Order = order
		}
	}
	if raw, ok := c.GetPostForm("isActive"); ok {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			verr.Add("isActive", "must be true or false")
		} else {
			input.IsActive = active
		}
	}
	return input, verr
}

func parseUpdateMemberInput(c *gin.Context) (services.UpdateTeamMemberInput, *models.ValidationError) {
	verr := models.NewValidationError()
	var input services.UpdateTeamMemberInput

	if raw, ok := c.GetPostForm("fullName"); ok {
		input.FullName = &raw
	}
	if raw, ok := c.GetPostForm("position"); ok {
		input.Position = &raw
	}
	if raw, ok := c.GetPostForm("bio"); ok {
		input.Bio = &raw
	}
	if raw, ok := c.GetPostForm("specialties"); ok {
		var specialties []string
		if err := json.Unmarshal([]byte(raw), &specialties); err != nil {
			verr.Add("specialties", "must be a JSON array of strings")
		} else {
			input.Specialties = &specialties
		}
	}
	if raw, ok := c.GetPostForm("order"); ok {
		order, err := strconv.Atoi(raw)
		if err != nil {
			verr.Add("order", "must be a number")
		} else {
			input.Order = &order
		}
	}
	if raw, ok := c.GetPostForm("isActive"); ok {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			verr.Add("isActive", "must be true or false")
		} else {
			input.IsActive = &active
		}
	}
	return input, verr
}
