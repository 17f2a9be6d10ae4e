package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plcforge/plcforge/internal/domain"
)

func (s *Server) handleCreateFile(c *gin.Context) {
	var req createFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := s.files.Create(c.Request.Context(), domain.UploadedFile{
		ProjectID:   c.Param("projectId"),
		FileName:    req.FileName,
		FileKind:    req.FileKind,
		StoragePath: req.StoragePath,
	})
	if err != nil {
		status, body := mapDomainError(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusCreated, file)
}

func (s *Server) handleListFiles(c *gin.Context) {
	files, err := s.files.ListByProject(c.Request.Context(), c.Param("projectId"))
	if err != nil {
		status, body := mapDomainError(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, files)
}

func (s *Server) handleCreateSafetyManual(c *gin.Context) {
	var req createSafetyManualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	projectID := c.Param("projectId")
	manual, err := s.manuals.Create(c.Request.Context(), domain.SafetyManual{
		ProjectID: &projectID,
		CorpusID:  req.CorpusID,
		FileName:  req.FileName,
	})
	if err != nil {
		status, body := mapDomainError(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusCreated, manual)
}

func (s *Server) handleListSafetyManuals(c *gin.Context) {
	manuals, err := s.manuals.ListByProject(c.Request.Context(), c.Param("projectId"))
	if err != nil {
		status, body := mapDomainError(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, manuals)
}

func (s *Server) handleCreateMessage(c *gin.Context) {
	var req createMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := s.messages.Create(c.Request.Context(), domain.ConversationMessage{
		ProjectID: c.Param("projectId"),
		Role:      req.Role,
		Content:   req.Content,
	})
	if err != nil {
		status, body := mapDomainError(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusCreated, message)
}

func (s *Server) handleListMessages(c *gin.Context) {
	messages, err := s.messages.ListByProject(c.Request.Context(), c.Param("projectId"))
	if err != nil {
		status, body := mapDomainError(err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, messages)
}
