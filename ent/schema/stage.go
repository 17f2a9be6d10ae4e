package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Stage holds the schema definition for the Stage entity.
// Each stage is one numbered unit of a project's process: the
// natural-language logic an engineer supplied for it, and the
// validation/codegen state the pipeline has reached for it.
type Stage struct {
	ent.Schema
}

// Fields of the Stage.
func (Stage) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("stage_id").
			Unique().
			Immutable(),
		field.String("project_id").
			Immutable(),
		field.Int("stage_number").
			Comment("0-based position of this stage in the project; stage 0 is the idle stage"),
		field.String("stage_name"),
		field.String("stage_type").
			Comment("e.g. 'idle', 'safety', 'operation', 'fault', 'shutdown', 'validation'"),
		field.Text("description").
			Optional(),
		field.Text("original_logic").
			Comment("Natural-language description as submitted, full-text searchable"),
		field.Text("edited_logic").
			Optional().
			Nillable().
			Comment("User edit overriding original_logic, if any"),
		field.Bool("is_validated").
			Default(false),
		field.Bool("is_finalized").
			Default(false),
		field.String("version_number").
			Default("1.0.0"),
		field.String("last_action").
			Optional().
			Nillable().
			Comment("Most recent version-history action, e.g. 'generate_code'"),
		field.Time("last_action_timestamp").
			Optional().
			Nillable(),
	}
}

// Edges of the Stage.
func (Stage) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("project", Project.Type).
			Ref("stages").
			Field("project_id").
			Unique().
			Required().
			Immutable(),
		edge.To("generated_code", GeneratedCode.Type).
			Unique().
			Annotations(entsql.OnDelete(entsql.Cascade)),
		edge.To("version_history", VersionHistoryEntry.Type).
			Annotations(entsql.OnDelete(entsql.Cascade)),
	}
}

// Indexes of the Stage.
func (Stage) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("project_id", "stage_number").
			Unique(),
	}
}
