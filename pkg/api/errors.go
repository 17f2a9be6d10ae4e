package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plcforge/plcforge/internal/domain"
	"github.com/plcforge/plcforge/pkg/promptcatalog"
	"github.com/plcforge/plcforge/pkg/services"
)

// mapDomainError maps the engine's typed error taxonomy (spec.md §7) to an
// HTTP status and a JSON-safe message, following the teacher's
// mapServiceError shape (pkg/api/errors.go) adapted from echo's
// *echo.HTTPError to a plain (status, body) pair for gin.
func mapDomainError(err error) (int, gin.H) {
	var inputInvalid *domain.InputInvalidError
	if errors.As(err, &inputInvalid) {
		return http.StatusBadRequest, gin.H{"error": inputInvalid.Error()}
	}

	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, gin.H{"error": notFound.Error()}
	}

	var forbidden *domain.ForbiddenError
	if errors.As(err, &forbidden) {
		return http.StatusForbidden, gin.H{"error": forbidden.Error()}
	}

	var stagesNotValidated *domain.StagesNotValidatedError
	if errors.As(err, &stagesNotValidated) {
		return http.StatusConflict, gin.H{"error": stagesNotValidated.Error(), "stage_ids": stagesNotValidated.StageIDs}
	}

	var notValidated *domain.NotValidatedError
	if errors.As(err, &notValidated) {
		return http.StatusConflict, gin.H{"error": notValidated.Error()}
	}

	var genFailed *domain.GenerationFailedError
	if errors.As(err, &genFailed) {
		return http.StatusBadGateway, gin.H{"error": genFailed.Error()}
	}

	var parseFailed *domain.ParseFailedError
	if errors.As(err, &parseFailed) {
		return http.StatusBadGateway, gin.H{"error": parseFailed.Error()}
	}

	var retrievalNotReady *domain.RetrievalNotReadyError
	if errors.As(err, &retrievalNotReady) {
		return http.StatusServiceUnavailable, gin.H{"error": retrievalNotReady.Error()}
	}

	var llmErr *domain.LLMErrorValue
	if errors.As(err, &llmErr) {
		return http.StatusBadGateway, gin.H{"error": llmErr.Error()}
	}

	var unsupported *domain.UnsupportedFormatError
	if errors.As(err, &unsupported) {
		return http.StatusUnsupportedMediaType, gin.H{"error": unsupported.Error()}
	}

	var extractFailed *domain.ExtractFailedError
	if errors.As(err, &extractFailed) {
		return http.StatusUnprocessableEntity, gin.H{"error": extractFailed.Error()}
	}

	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, gin.H{"error": validationErr.Error()}
	}
	if errors.Is(err, services.ErrNotFound) {
		return http.StatusNotFound, gin.H{"error": "resource not found"}
	}
	if errors.Is(err, services.ErrAlreadyExists) {
		return http.StatusConflict, gin.H{"error": "resource already exists"}
	}

	var promptNotFound *promptcatalog.NotFoundError
	if errors.As(err, &promptNotFound) {
		return http.StatusNotFound, gin.H{"error": promptNotFound.Error()}
	}

	slog.Error("unexpected api error", "error", err)
	return http.StatusInternalServerError, gin.H{"error": "internal server error"}
}
