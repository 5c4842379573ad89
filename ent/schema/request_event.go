package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// RequestEvent records every call to the study service.
type RequestEvent struct {
	ent.Schema
}

func (RequestEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (RequestEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("operation").
			Comment("Gateway operation: upload-materials, submit-answers, login-user, ..."),
		field.String("request_id").
			Comment("X-Request-ID sent with the call"),
		field.Int("status_code").
			Default(0).
			Comment("HTTP status, 0 when no response arrived"),
		field.Int64("latency_ms").
			Default(0),
		field.Bool("success"),
		field.String("error_kind").
			Default("").
			Comment("validation, auth, backend or unknown"),
		field.String("error_message").
			Default(""),
	}
}
