package repository

import (
	"context"

	"github.com/oksasatya/complaint-desk/internal/domain/entity"
)

// ComplaintRepository persists complaints. It does not validate status
// values; that is the lifecycle service's job.
type ComplaintRepository interface {
	// Create fills ID, Status and Date. A missing owner yields apperror.ErrNotFound.
	Create(ctx context.Context, c *entity.Complaint) error
	GetByID(ctx context.Context, id string) (*entity.Complaint, error)
	// ListAll joins owner name and email.
	ListAll(ctx context.Context, newestFirst bool) ([]entity.Complaint, error)
	ListByUser(ctx context.Context, userID string, newestFirst bool) ([]entity.Complaint, error)
	UpdateStatus(ctx context.Context, id string, status entity.ComplaintStatus) (*entity.Complaint, error)
}

// ReportRepository exposes the aggregation the reporting service needs.
// A single grouped read keeps every derived total consistent.
type ReportRepository interface {
	CountByCategoryAndStatus(ctx context.Context) ([]entity.CategoryStatusCount, error)
}
