package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
)

// Project holds the schema definition for the Project entity.
// A project is the top-level container for a single PLC program
// under construction: its stages, generated code, and version history
// all hang off of it.
type Project struct {
	ent.Schema
}

// Fields of the Project.
func (Project) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("project_id").
			Unique().
			Immutable(),
		field.String("name"),
		field.Text("description").
			Optional(),
		field.String("owner_id").
			Immutable(),
		field.Enum("status").
			Values("active", "archived", "deleted").
			Default("active"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

// Edges of the Project.
func (Project) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("stages", Stage.Type).
			Annotations(entsql.OnDelete(entsql.Cascade)),
		edge.To("dependencies", StageDependency.Type).
			Annotations(entsql.OnDelete(entsql.Cascade)),
		edge.To("files", UploadedFile.Type).
			Annotations(entsql.OnDelete(entsql.Cascade)),
		edge.To("safety_manuals", SafetyManual.Type).
			Annotations(entsql.OnDelete(entsql.Cascade)),
		edge.To("messages", ConversationMessage.Type).
			Annotations(entsql.OnDelete(entsql.Cascade)),
	}
}
