package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	projectUC "github.com/khoahotran/profile-directory/internal/application/usecase/project"
	"github.com/khoahotran/profile-directory/pkg/apperror"
	"github.com/khoahotran/profile-directory/pkg/logger"
)

type ProjectHandler struct {
	listProjectsUseCase *projectUC.ListProjectsUseCase
	logger              logger.Logger
}

func NewProjectHandler(uc *projectUC.ListProjectsUseCase, log logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		listProjectsUseCase: uc,
		logger:              log,
	}
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	input := projectUC.ListProjectsInput{Skill: c.Query("skill")}

	output, err := h.listProjectsUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("List projects request failed", err)
		c.JSON(apperror.ToHTTPStatus(err), gin.H{"error": apperror.ClientMessage(err)})
		return
	}

	dtos := make([]FlattenedProjectDTO, len(output.Projects))
	for i, fp := range output.Projects {
		dtos[i] = ToFlattenedProjectDTO(fp)
	}
	c.JSON(http.StatusOK, dtos)
}
