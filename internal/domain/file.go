package domain

import "time"

// UploadedFile tracks a document or audio file attached to a project
// prior to text extraction and ingestion into the retrieval corpus.
type UploadedFile struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	FileName    string    `json:"file_name"`
	FileKind    string    `json:"file_kind"`
	StoragePath string    `json:"storage_path"`
	CreatedAt   time.Time `json:"created_at"`
}

// SafetyManual tracks one document ingested into a safety corpus. A nil
// ProjectID means the manual belongs to the shared default corpus.
type SafetyManual struct {
	ID        string    `json:"id"`
	ProjectID *string   `json:"project_id,omitempty"`
	CorpusID  string    `json:"corpus_id"`
	FileName  string    `json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageRole is the speaker of a ConversationMessage.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ConversationMessage is one turn of the conversational interface a
// project's users drive stages and regenerations through.
type ConversationMessage struct {
	ID        string      `json:"id"`
	ProjectID string      `json:"project_id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}
