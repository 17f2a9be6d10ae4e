package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleEditStageLogic(c *gin.Context) {
	var req editStageLogicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.engine.EditStageLogic(c.Request.Context(), c.Param("stageId"), req.Text); err != nil {
		status, body := mapDomainError(err)
		c.JSON(status, body)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleValidateStage(c *gin.Context) {
	result, err := s.engine.ValidateStage(c.Request.Context(), c.Param("stageId"))
	if err != nil {
		status, body := mapDomainError(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleFinalizeStage(c *gin.Context) {
	if err := s.engine.FinalizeStage(c.Request.Context(), c.Param("stageId")); err != nil {
		status, body := mapDomainError(err)
		c.JSON(status, body)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleStageVersionHistory(c *gin.Context) {
	history, err := s.engine.StageVersionHistory(c.Request.Context(), c.Param("stageId"))
	if err != nil {
		status, body := mapDomainError(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, history)
}
