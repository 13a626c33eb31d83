package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	searchUC "github.com/khoahotran/profile-directory/internal/application/usecase/search"
	"github.com/khoahotran/profile-directory/pkg/apperror"
	"github.com/khoahotran/profile-directory/pkg/logger"
)

type SearchHandler struct {
	searchUseCase *searchUC.SearchUseCase
	logger        logger.Logger
}

func NewSearchHandler(uc *searchUC.SearchUseCase, log logger.Logger) *SearchHandler {
	return &SearchHandler{
		searchUseCase: uc,
		logger:        log,
	}
}

func (h *SearchHandler) Search(c *gin.Context) {
	input := searchUC.SearchInput{Query: c.Query("q")}

	output, err := h.searchUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		h.logger.Error("Search request failed", err)
		c.JSON(apperror.ToHTTPStatus(err), gin.H{"error": apperror.ClientMessage(err)})
		return
	}

	dtos := make([]SearchResultDTO, len(output.Profiles))
	for i, p := range output.Profiles {
		dtos[i] = ToSearchResultDTO(p)
	}
	c.JSON(http.StatusOK, dtos)
}
