package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// StudyPlan caches a plan returned by an upload, per signed-in user.
type StudyPlan struct {
	ent.Schema
}

func (StudyPlan) Fields() []ent.Field {
	return []ent.Field{
		field.String("owner").
			Comment("Username the plan was uploaded by"),
		field.String("plan_id").
			Comment("Backend plan id, or a generated one when the backend sent none"),
		field.Int64("sequence").
			Comment("Save order; listing is oldest first"),
		field.Text("data").
			Comment("The plan with quizzes and session id, as JSON"),
		field.Time("saved_at").
			Default(time.Now),
	}
}

func (StudyPlan) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("owner", "plan_id").Unique(),
		index.Fields("owner", "sequence"),
	}
}
