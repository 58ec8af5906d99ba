package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

type CaseRepository struct {
	db *sql.DB
}

func NewCaseRepository(db *sql.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

func (r *CaseRepository) Create(ctx context.Context, c *domain.Case) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO cases (id, action_type, status, description, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6)
`, c.ID, c.ActionType, c.Status, c.Description, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert case: %w", err)
	}
	return nil
}

func (r *CaseRepository) GetByID(ctx context.Context, id string) (*domain.Case, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, action_type, status, description, created_at, updated_at
FROM cases
WHERE id = $1
`, id)

	var c domain.Case
	if err := row.Scan(&c.ID, &c.ActionType, &c.Status, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrCaseNotFound, "get case", err)
		}
		return nil, fmt.Errorf("scan case: %w", err)
	}
	return &c, nil
}
