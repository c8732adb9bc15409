package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// FunnelEvent records one transition of a funnel session. The store
// creates the table from the same columns.
type FunnelEvent struct {
	ent.Schema
}

func (FunnelEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (FunnelEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID grouping events in a session"),
		field.String("kind").
			NotEmpty().
			Comment("Event kind such as enter or redirect"),
		field.Int("step").
			Comment("Step the event happened on"),
		field.Int("to_step").
			Comment("Step after the event"),
		field.Int("option_index").
			Default(-1).
			Comment("Chosen option, -1 when not a choice"),
		field.Int("xp").
			Default(0),
		field.Int("level").
			Default(1),
		field.String("detail").
			Default("").
			Comment("Answer text, profile label or checkout URL"),
	}
}

func (FunnelEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("kind", "to_step"),
	}
}
