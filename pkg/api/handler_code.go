package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleGenerateProjectCode(c *gin.Context) {
	code, err := s.engine.GenerateProjectCode(c.Request.Context(), c.Param("stageId"))
	if err != nil {
		status, body := mapDomainError(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, code)
}

func (s *Server) handleUpdateGeneratedCode(c *gin.Context) {
	var req updateGeneratedCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := s.engine.UpdateGeneratedCode(c.Request.Context(), c.Param("stageId"), req.Body, req.Globals, req.Locals)
	if err != nil {
		status, body := mapDomainError(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, code)
}

func (s *Server) handleSafetyCheck(c *gin.Context) {
	result, err := s.engine.SafetyCheck(c.Request.Context(), c.Param("stageId"))
	if err != nil {
		status, body := mapDomainError(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, result)
}
