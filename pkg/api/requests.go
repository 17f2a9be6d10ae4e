package api

import "github.com/plcforge/plcforge/internal/domain"

// createProjectRequest is the body of POST /projects.
type createProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	OwnerID     string `json:"owner_id" binding:"required"`
}

// ingestLogicRequest is the body of POST /projects/:projectId/ingest.
type ingestLogicRequest struct {
	Text string `json:"text" binding:"required"`
}

// editStageLogicRequest is the body of PUT /stages/:stageId/logic.
type editStageLogicRequest struct {
	Text string `json:"text" binding:"required"`
}

// updateGeneratedCodeRequest is the body of PUT /stages/:stageId/code.
type updateGeneratedCodeRequest struct {
	Body    string         `json:"body" binding:"required"`
	Globals []domain.Label `json:"globals"`
	Locals  []domain.Label `json:"locals"`
}

// createFileRequest is the body of POST /projects/:projectId/files. Actual
// upload storage is out of this repo's scope (spec.md §1); the caller
// supplies an already-stored path.
type createFileRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	FileKind    string `json:"file_kind" binding:"required"`
	StoragePath string `json:"storage_path" binding:"required"`
}

// createSafetyManualRequest is the body of POST /projects/:projectId/safety-manuals.
type createSafetyManualRequest struct {
	CorpusID string `json:"corpus_id" binding:"required"`
	FileName string `json:"file_name" binding:"required"`
}

// createMessageRequest is the body of POST /projects/:projectId/messages.
type createMessageRequest struct {
	Role    domain.MessageRole `json:"role" binding:"required"`
	Content string             `json:"content" binding:"required"`
}

// savePromptRequest is the body of PUT /prompts/:agent/:version.
type savePromptRequest struct {
	Text string `json:"text" binding:"required"`
}
