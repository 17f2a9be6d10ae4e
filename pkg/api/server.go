// Package api is the thin HTTP transport surface over the engine (C14):
// request parsing, domain-error-to-status mapping, and JSON encoding
// only. No business logic lives here (spec.md §1 "Out of scope: HTTP
// transport ... consumes the engine via the operations in §4").
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/plcforge/plcforge/pkg/database"
	"github.com/plcforge/plcforge/pkg/engine"
	"github.com/plcforge/plcforge/pkg/promptcatalog"
	"github.com/plcforge/plcforge/pkg/services"
)

// Server binds the orchestrator and the project-owned aggregate services
// the engine itself doesn't expose a CRUD surface for (spec.md §6's
// ProjectRepo/FileRepo/SafetyManualRepo contracts).
type Server struct {
	engine   *engine.Engine
	db       *database.Client
	projects *services.ProjectService
	files    *services.FileService
	manuals  *services.SafetyManualService
	messages *services.MessageService
	prompts  *promptcatalog.Catalog
}

// NewServer wires a Server from its already-constructed collaborators.
func NewServer(
	eng *engine.Engine,
	db *database.Client,
	projects *services.ProjectService,
	files *services.FileService,
	manuals *services.SafetyManualService,
	messages *services.MessageService,
	prompts *promptcatalog.Catalog,
) *Server {
	return &Server{
		engine:   eng,
		db:       db,
		projects: projects,
		files:    files,
		manuals:  manuals,
		messages: messages,
		prompts:  prompts,
	}
}

// Router builds the gin engine and registers every route.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()

	router.GET("/health", s.handleHealth)

	v1 := router.Group("/api/v1")
	{
		projects := v1.Group("/projects")
		projects.POST("", s.handleCreateProject)
		projects.GET("", s.handleListProjects)
		projects.GET("/:projectId", s.handleGetProject)
		projects.DELETE("/:projectId", s.handleDeleteProject)
		projects.POST("/:projectId/ingest", s.handleIngestLogic)
		projects.GET("/:projectId/files", s.handleListFiles)
		projects.POST("/:projectId/files", s.handleCreateFile)
		projects.GET("/:projectId/messages", s.handleListMessages)
		projects.POST("/:projectId/messages", s.handleCreateMessage)
		projects.GET("/:projectId/safety-manuals", s.handleListSafetyManuals)
		projects.POST("/:projectId/safety-manuals", s.handleCreateSafetyManual)

		stages := v1.Group("/stages")
		stages.PUT("/:stageId/logic", s.handleEditStageLogic)
		stages.POST("/:stageId/validate", s.handleValidateStage)
		stages.POST("/:stageId/finalize", s.handleFinalizeStage)
		stages.POST("/:stageId/generate", s.handleGenerateProjectCode)
		stages.PUT("/:stageId/code", s.handleUpdateGeneratedCode)
		stages.POST("/:stageId/safety-check", s.handleSafetyCheck)
		stages.GET("/:stageId/history", s.handleStageVersionHistory)

		prompts := v1.Group("/prompts/:agent/:version")
		prompts.GET("", s.handleLoadPrompt)
		prompts.PUT("", s.handleSavePrompt)
	}

	return router
}

// handleHealth reports process and database health, mirroring the
// teacher's cmd/tarsy/main.go health endpoint shape.
func (s *Server) handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	dbHealth, err := database.Health(ctx, s.db.DB())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": dbHealth,
			"error":    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": dbHealth,
	})
}
