package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/complaint-desk/internal/domain/apperror"
	"github.com/oksasatya/complaint-desk/internal/domain/entity"
	"github.com/oksasatya/complaint-desk/internal/domain/repository"
)

const complaintColumns = `c.id::text, c.user_id::text, c.category, c.subject, c.description, c.status, c.created_at`

type ComplaintRepository struct {
	db DBTX
}

func NewComplaintRepository(db DBTX) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

func orderBy(newestFirst bool) string {
	if newestFirst {
		return " ORDER BY c.created_at DESC"
	}
	return " ORDER BY c.created_at ASC"
}

func (r *ComplaintRepository) Create(ctx context.Context, c *entity.Complaint) error {
	var status string
	row := r.db.QueryRow(ctx, `
		INSERT INTO complaints (user_id, category, subject, description, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id::text, status, created_at
	`, c.UserID, c.Category, c.Subject, c.Description, string(entity.StatusPending))

	if err := row.Scan(&c.ID, &status, &c.Date); err != nil {
		switch pgCode(err) {
		case codeForeignKeyViolation, codeInvalidText:
			return apperror.ErrNotFound
		}
		return apperror.Storage("create complaint", err)
	}
	c.Status = entity.ComplaintStatus(status)
	return nil
}

func (r *ComplaintRepository) GetByID(ctx context.Context, id string) (*entity.Complaint, error) {
	row := r.db.QueryRow(ctx, `SELECT `+complaintColumns+` FROM complaints c WHERE c.id = $1`, id)
	c, err := scanComplaint(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgCode(err) == codeInvalidText {
			return nil, apperror.ErrNotFound
		}
		return nil, apperror.Storage("get complaint", err)
	}
	return c, nil
}

func (r *ComplaintRepository) ListAll(ctx context.Context, newestFirst bool) ([]entity.Complaint, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+complaintColumns+`, u.id::text, u.full_name, u.email
		FROM complaints c
		LEFT JOIN users u ON u.id = c.user_id`+orderBy(newestFirst))
	if err != nil {
		return nil, apperror.Storage("list complaints", err)
	}
	defer rows.Close()

	out := make([]entity.Complaint, 0)
	for rows.Next() {
		var (
			c                        entity.Complaint
			status                   string
			ownerID, ownerName, mail *string
		)
		if err := rows.Scan(&c.ID, &c.UserID, &c.Category, &c.Subject, &c.Description, &status, &c.Date,
			&ownerID, &ownerName, &mail); err != nil {
			return nil, apperror.Storage("scan complaint", err)
		}
		c.Status = entity.ComplaintStatus(status)
		if ownerID != nil {
			c.Owner = &entity.Owner{ID: *ownerID, FullName: deref(ownerName), Email: deref(mail)}
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage("list complaints", err)
	}
	return out, nil
}

func (r *ComplaintRepository) ListByUser(ctx context.Context, userID string, newestFirst bool) ([]entity.Complaint, error) {
	rows, err := r.db.Query(ctx, `SELECT `+complaintColumns+` FROM complaints c WHERE c.user_id = $1`+orderBy(newestFirst), userID)
	if err != nil {
		if pgCode(err) == codeInvalidText {
			return []entity.Complaint{}, nil
		}
		return nil, apperror.Storage("list user complaints", err)
	}
	defer rows.Close()

	out := make([]entity.Complaint, 0)
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, apperror.Storage("scan complaint", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage("list user complaints", err)
	}
	return out, nil
}

// UpdateStatus overwrites the status unconditionally; concurrent writers
// resolve last-write-wins.
func (r *ComplaintRepository) UpdateStatus(ctx context.Context, id string, status entity.ComplaintStatus) (*entity.Complaint, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE complaints c SET status = $2
		WHERE c.id = $1
		RETURNING `+complaintColumns, id, string(status))
	c, err := scanComplaint(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgCode(err) == codeInvalidText {
			return nil, apperror.ErrNotFound
		}
		return nil, apperror.Storage("update complaint status", err)
	}
	return c, nil
}

func (r *ComplaintRepository) CountByCategoryAndStatus(ctx context.Context) ([]entity.CategoryStatusCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT category, status, COUNT(*)
		FROM complaints
		GROUP BY category, status
		ORDER BY category, status
	`)
	if err != nil {
		return nil, apperror.Storage("count complaints", err)
	}
	defer rows.Close()

	out := make([]entity.CategoryStatusCount, 0)
	for rows.Next() {
		var (
			row    entity.CategoryStatusCount
			status string
		)
		if err := rows.Scan(&row.Category, &status, &row.Count); err != nil {
			return nil, apperror.Storage("scan count", err)
		}
		row.Status = entity.ComplaintStatus(status)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage("count complaints", err)
	}
	return out, nil
}

func scanComplaint(row pgx.Row) (*entity.Complaint, error) {
	var (
		c      entity.Complaint
		status string
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.Category, &c.Subject, &c.Description, &status, &c.Date); err != nil {
		return nil, err
	}
	c.Status = entity.ComplaintStatus(status)
	return &c, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var (
	_ repository.ComplaintRepository = (*ComplaintRepository)(nil)
	_ repository.ReportRepository    = (*ComplaintRepository)(nil)
)
