package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	profileUC "github.com/khoahotran/profile-directory/internal/application/usecase/profile"
	"github.com/khoahotran/profile-directory/pkg/apperror"
	"github.com/khoahotran/profile-directory/pkg/logger"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		logger:         log,
	}
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	// An absent body binds as an empty request; the required-field check
	// below produces the expected message.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	input := profileUC.CreateProfileInput{
		Name:      req.Name,
		Email:     req.Email,
		Headline:  req.Headline,
		Education: req.Education,
		Skills:    req.Skills,
		Projects:  toDomainProjects(req.Projects),
		Links:     req.Links,
		Bio:       req.Bio,
	}

	output, err := h.profileUseCase.ExecuteCreate(c.Request.Context(), input)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": output.Profile.ID.String()})
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	input := profileUC.GetProfileInput{ID: profileID}
	output, err := h.profileUseCase.ExecuteGet(c.Request.Context(), input)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	input := profileUC.UpdateProfileInput{
		ID:     profileID,
		Update: req.ToDomainUpdate(),
	}
	output, err := h.profileUseCase.ExecuteUpdate(c.Request.Context(), input)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": output.Profile.ID.String()})
}

func (h *ProfileHandler) FilterBySkill(c *gin.Context) {
	skill := c.Query("skill")
	if skill == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "skill param required"})
		return
	}

	input := profileUC.FilterBySkillInput{Skill: skill}
	output, err := h.profileUseCase.ExecuteFilterBySkill(c.Request.Context(), input)
	if err != nil {
		h.renderError(c, err)
		return
	}

	dtos := make([]ProfileBySkillDTO, len(output.Profiles))
	for i, p := range output.Profiles {
		dtos[i] = ToProfileBySkillDTO(p)
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *ProfileHandler) renderError(c *gin.Context, err error) {
	status := apperror.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("Profile request failed", err, zap.String("path", c.FullPath()))
	}
	c.JSON(status, gin.H{"error": apperror.ClientMessage(err)})
}
