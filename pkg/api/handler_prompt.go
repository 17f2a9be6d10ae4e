package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleLoadPrompt(c *gin.Context) {
	text, err := s.prompts.Load(c.Param("agent"), c.Param("version"))
	if err != nil {
		status, body := mapDomainError(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}

func (s *Server) handleSavePrompt(c *gin.Context) {
	var req savePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.prompts.Save(c.Param("agent"), c.Param("version"), req.Text); err != nil {
		status, body := mapDomainError(err)
		c.JSON(status, body)
		return
	}
	c.Status(http.StatusNoContent)
}
