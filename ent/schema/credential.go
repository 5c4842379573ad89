package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Credential is the single stored bearer token.
type Credential struct {
	ent.Schema
}

func (Credential) Fields() []ent.Field {
	return []ent.Field{
		field.Int("id").
			Comment("Always 1"),
		field.String("token").
			Sensitive(),
		field.Time("updated_at").
			Default(time.Now),
	}
}
