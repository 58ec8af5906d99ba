package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/kirillkom/legal-case-intel/internal/core/domain"
)

type DeadlineRepository struct {
	db *sql.DB
}

func NewDeadlineRepository(db *sql.DB) *DeadlineRepository {
	return &DeadlineRepository{db: db}
}

// ReplaceForDocument swaps the stored deadlines of a document atomically so a
// reprocessed document never shows stale and fresh deadlines together.
func (r *DeadlineRepository) ReplaceForDocument(ctx context.Context, documentID string, deadlines []domain.Deadline) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin deadlines tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM deadlines WHERE document_id = $1`, documentID); err != nil {
		return fmt.Errorf("delete deadlines: %w", err)
	}

	for i, d := range deadlines {
		id := d.ID
		if id == "" {
			id = uuid.NewString()
		}
		status := d.Status
		if status == "" {
			status = domain.DeadlinePending
		}
		_, err := tx.ExecContext(ctx, `
INSERT INTO deadlines (id, document_id, position, deadline_type, due_date, description, origin, confidence, days_count, status)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`,
			id, documentID, i, string(d.Type), dateValue(d.DueDate), d.Description,
			string(d.Origin), string(d.Confidence), intValue(d.DaysCount), string(status),
		)
		if err != nil {
			return fmt.Errorf("insert deadline: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit deadlines tx: %w", err)
	}
	return nil
}

// ListByCase returns deadlines of every case document, in document upload
// order and extraction order within a document.
func (r *DeadlineRepository) ListByCase(ctx context.Context, caseID string) ([]domain.Deadline, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT dl.id, dl.document_id, dl.deadline_type, dl.due_date, dl.description, dl.origin, dl.confidence, dl.days_count, dl.status
FROM deadlines dl
JOIN documents d ON d.id = dl.document_id
WHERE d.case_id = $1
ORDER BY d.created_at ASC, d.id ASC, dl.position ASC
`, caseID)
	if err != nil {
		return nil, fmt.Errorf("list deadlines: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Deadline, 0)
	for rows.Next() {
		d, err := scanDeadline(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deadline: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deadlines: %w", err)
	}
	return out, nil
}

func scanDeadline(row rowScanner) (domain.Deadline, error) {
	var d domain.Deadline
	var deadlineType, origin, confidence, status string
	var due sql.NullTime
	var days sql.NullInt64

	if err := row.Scan(&d.ID, &d.DocumentID, &deadlineType, &due, &d.Description, &origin, &confidence, &days, &status); err != nil {
		return domain.Deadline{}, err
	}
	d.Type = domain.DeadlineType(deadlineType)
	d.Origin = domain.DeadlineOrigin(origin)
	d.Confidence = domain.Confidence(confidence)
	d.Status = domain.DeadlineStatus(status)
	if due.Valid {
		date := civil.DateOf(due.Time.UTC())
		d.DueDate = &date
	}
	if days.Valid {
		n := int(days.Int64)
		d.DaysCount = &n
	}
	return d, nil
}

func dateValue(d *civil.Date) any {
	if d == nil {
		return nil
	}
	return d.In(time.UTC)
}

func intValue(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}
