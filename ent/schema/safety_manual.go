package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
)

// SafetyManual holds the schema definition for the SafetyManual entity.
// A safety manual belongs either to one project's corpus or, when
// project_id is unset, to the shared default corpus. The default corpus
// is searched only when the engine's safety corpus preference selects
// it; a project without manuals of its own does not fall back to it.
type SafetyManual struct {
	ent.Schema
}

// Fields of the SafetyManual.
func (SafetyManual) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("manual_id").
			Unique().
			Immutable(),
		field.String("project_id").
			Optional().
			Nillable().
			Immutable().
			Comment("Unset for manuals in the shared default corpus"),
		field.String("corpus_id").
			Immutable(),
		field.String("file_name").
			Immutable(),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

// Edges of the SafetyManual.
func (SafetyManual) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("project", Project.Type).
			Ref("safety_manuals").
			Field("project_id").
			Unique().
			Immutable(),
	}
}
