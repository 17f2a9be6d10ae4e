package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plcforge/plcforge/internal/domain"
)

func (s *Server) handleCreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := s.projects.Create(c.Request.Context(), domain.Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		status, body := mapDomainError(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (s *Server) handleGetProject(c *gin.Context) {
	project, err := s.projects.GetByID(c.Request.Context(), c.Param("projectId"))
	if err != nil {
		status, body := mapDomainError(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (s *Server) handleListProjects(c *gin.Context) {
	ownerID := c.Query("owner_id")

	var (
		projects []domain.Project
		err      error
	)
	if ownerID != "" {
		projects, err = s.projects.ListForUser(c.Request.Context(), ownerID)
	} else {
		projects, err = s.projects.ListAll(c.Request.Context())
	}
	if err != nil {
		status, body := mapDomainError(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	if err := s.projects.HardDelete(c.Request.Context(), c.Param("projectId")); err != nil {
		status, body := mapDomainError(err)
		c.JSON(status, body)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleIngestLogic(c *gin.Context) {
	var req ingestLogicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.engine.IngestLogic(c.Request.Context(), c.Param("projectId"), req.Text)
	if err != nil {
		status, body := mapDomainError(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, result)
}
