package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
)

// UploadedFile holds the schema definition for the UploadedFile entity.
// Tracks a document or audio file a user attached to a project, prior
// to text extraction and ingestion into the retrieval corpus.
type UploadedFile struct {
	ent.Schema
}

// Fields of the UploadedFile.
func (UploadedFile) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("file_id").
			Unique().
			Immutable(),
		field.String("project_id").
			Immutable(),
		field.String("file_name").
			Immutable(),
		field.String("file_kind").
			Immutable().
			Comment("e.g. 'document', 'audio'"),
		field.String("storage_path").
			Immutable(),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

// Edges of the UploadedFile.
func (UploadedFile) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("project", Project.Type).
			Ref("files").
			Field("project_id").
			Unique().
			Required().
			Immutable(),
	}
}
