package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// VersionHistoryEntry holds the schema definition for the VersionHistoryEntry
// entity. Entries are append-only audit records of every mutating action
// taken against a stage: never updated, never deleted.
type VersionHistoryEntry struct {
	ent.Schema
}

// Fields of the VersionHistoryEntry.
func (VersionHistoryEntry) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("entry_id").
			Unique().
			Immutable(),
		field.String("code_id").
			Optional().
			Nillable().
			Immutable(),
		field.String("stage_id").
			Immutable(),
		field.String("user_id").
			Immutable(),
		field.Enum("level").
			Values("event", "session", "checkpoint").
			Default("event").
			Immutable(),
		field.Enum("action").
			Values("edit_logic", "generate_code", "edit_code", "validate", "safety_check").
			Immutable(),
		field.String("version_number").
			Immutable().
			Comment("Semver recorded at write time"),
		field.Text("old_code").
			Optional().
			Nillable().
			Immutable(),
		field.Text("new_code").
			Optional().
			Nillable().
			Immutable(),
		field.Text("diff").
			Optional().
			Nillable().
			Immutable().
			Comment("Unified diff, 3 lines of context"),
		field.String("session_id").
			Optional().
			Nillable().
			Immutable(),
		field.Time("timestamp").
			Default(time.Now).
			Immutable(),
		field.JSON("metadata", map[string]interface{}{}).
			Optional().
			Immutable().
			Comment("Action-specific fields: validation_status, passed, counts, description"),
	}
}

// Edges of the VersionHistoryEntry.
func (VersionHistoryEntry) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("stage", Stage.Type).
			Ref("version_history").
			Field("stage_id").
			Unique().
			Required().
			Immutable(),
		edge.From("code", GeneratedCode.Type).
			Ref("version_history").
			Field("code_id").
			Unique().
			Immutable(),
	}
}

// Indexes of the VersionHistoryEntry.
func (VersionHistoryEntry) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("stage_id", "timestamp"),
	}
}
