package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/estudos/internal/domain"
)

const plansTable = "study_plans"

// planRepo implements PlanRepo. Plans are stored as JSON documents keyed
// by (owner, plan id).
type planRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *planRepo) Save(ctx context.Context, owner string, plan domain.StudyPlan) error {
	if owner == "" {
		return fmt.Errorf("save plan: owner is required")
	}
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	planID := plan.ID.String()
	if planID == "" {
		// Plans without an id are kept apart by their save order.
		planID = fmt.Sprintf("seq-%d", seqNum)
	}

	query, args := builder().Insert(plansTable).
		Columns("owner", "plan_id", "sequence", "data", "saved_at").
		Values(owner, planID, seqNum, string(data), time.Now().UnixMilli()).
		OnConflict(entsql.ConflictColumns("owner", "plan_id"), entsql.ResolveWithNewValues()).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}

func (r *planRepo) List(ctx context.Context, owner string) ([]domain.StudyPlan, error) {
	b := builder()
	query, args := b.Select("data").
		From(b.Table(plansTable)).
		Where(entsql.EQ("owner", owner)).
		OrderBy(entsql.Asc("sequence")).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	defer rows.Close()

	var plans []domain.StudyPlan
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		var p domain.StudyPlan
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, fmt.Errorf("unmarshal plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (r *planRepo) Clear(ctx context.Context, owner string) error {
	query, args := builder().Delete(plansTable).
		Where(entsql.EQ("owner", owner)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear plans: %w", err)
	}
	return nil
}
