package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// StageDependency holds the schema definition for the StageDependency entity.
// Records a directed edge between two stage numbers within a project,
// as declared by a process-flow description or inferred by the
// dependency mapper.
type StageDependency struct {
	ent.Schema
}

// Fields of the StageDependency.
func (StageDependency) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("dependency_id").
			Unique().
			Immutable(),
		field.String("project_id").
			Immutable(),
		field.Int("from_stage"),
		field.Int("to_stage"),
		field.Text("condition").
			Optional().
			Comment("Natural-language condition gating the transition, if any"),
	}
}

// Edges of the StageDependency.
func (StageDependency) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("project", Project.Type).
			Ref("dependencies").
			Field("project_id").
			Unique().
			Required().
			Immutable(),
	}
}

// Indexes of the StageDependency.
func (StageDependency) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("project_id", "from_stage", "to_stage"),
	}
}
