package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the route table. Shared between main and tests.
func NewRouter(profileHandler *ProfileHandler, searchHandler *SearchHandler, projectHandler *ProjectHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	profiles := router.Group("/profiles")
	{
		profiles.POST("", profileHandler.CreateProfile)
		profiles.GET("/by-skill", profileHandler.FilterBySkill)
		profiles.GET("/:id", profileHandler.GetProfile)
		profiles.PATCH("/:id", profileHandler.UpdateProfile)
		profiles.PUT("/:id", profileHandler.UpdateProfile)
	}

	router.GET("/search", searchHandler.Search)
	router.GET("/projects", projectHandler.ListProjects)

	return router
}
