package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const credentialsTable = "credentials"

// credentialRepo implements CredentialRepo as a single-row table.
type credentialRepo struct {
	drv *entsql.Driver
}

func (r *credentialRepo) Load(ctx context.Context) (string, error) {
	b := builder()
	query, args := b.Select("token").
		From(b.Table(credentialsTable)).
		Where(entsql.EQ("id", 1)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return "", fmt.Errorf("query token: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return "", rows.Err()
	}
	var token string
	if err := rows.Scan(&token); err != nil {
		return "", fmt.Errorf("scan token: %w", err)
	}
	return token, nil
}

func (r *credentialRepo) Save(ctx context.Context, token string) error {
	if token == "" {
		return r.Clear(ctx)
	}
	query, args := builder().Insert(credentialsTable).
		Columns("id", "token", "updated_at").
		Values(1, token, time.Now().UnixMilli()).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (r *credentialRepo) Clear(ctx context.Context) error {
	query, args := builder().Delete(credentialsTable).Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
