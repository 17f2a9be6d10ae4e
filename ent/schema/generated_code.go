package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// GeneratedCode holds the schema definition for the GeneratedCode entity.
// Holds the most recent Structured Text rendering of a single stage:
// its merged label tables, program body, and the parsed structural
// breakdown the code parser produced from that body.
type GeneratedCode struct {
	ent.Schema
}

// Fields of the GeneratedCode.
func (GeneratedCode) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("code_id").
			Unique().
			Immutable(),
		field.String("project_id").
			Immutable(),
		field.String("stage_id").
			Immutable(),
		field.JSON("global_labels", []map[string]interface{}{}).
			Comment("Labels visible across stages, keyed by identity"),
		field.JSON("local_labels", []map[string]interface{}{}).
			Comment("Labels scoped to this stage only"),
		field.Text("program_body").
			Comment("Rendered Structured Text source, full-text searchable"),
		field.JSON("program_blocks", []map[string]interface{}{}).
			Comment("PROGRAM blocks parsed out of program_body"),
		field.JSON("functions", []map[string]interface{}{}).
			Comment("FUNCTION blocks parsed out of program_body"),
		field.JSON("function_blocks", []map[string]interface{}{}).
			Comment("FUNCTION_BLOCK blocks parsed out of program_body"),
		field.String("program_name").
			Optional(),
		field.String("execution_type").
			Default("Scan"),
		field.JSON("code_metadata", map[string]interface{}{}).
			Optional(),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

// Edges of the GeneratedCode.
func (GeneratedCode) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("stage", Stage.Type).
			Ref("generated_code").
			Field("stage_id").
			Unique().
			Required().
			Immutable(),
		edge.To("version_history", VersionHistoryEntry.Type),
	}
}

// Indexes of the GeneratedCode.
func (GeneratedCode) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("stage_id").
			Unique(),
	}
}
