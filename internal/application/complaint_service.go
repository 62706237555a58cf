package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/complaint-desk/config"
	"github.com/oksasatya/complaint-desk/internal/domain/apperror"
	"github.com/oksasatya/complaint-desk/internal/domain/entity"
	repo "github.com/oksasatya/complaint-desk/internal/domain/repository"
	"github.com/oksasatya/complaint-desk/pkg/helpers"
	"github.com/oksasatya/complaint-desk/pkg/mailer"
	tpl "github.com/oksasatya/complaint-desk/pkg/mailer/templates"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

// Publisher puts a JSON job on the notification queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Indexer mirrors complaints into a full-text index.
type Indexer interface {
	Put(ctx context.Context, c *entity.Complaint) error
	Search(ctx context.Context, q string, size int) ([]entity.Complaint, error)
}

type ComplaintService struct {
	Complaints repo.ComplaintRepository
	Users      repo.UserRepository
	Index      Indexer
	Publisher  Publisher
	Config     *config.Config
	Logger     *logrus.Logger
}

func NewComplaintService(complaints repo.ComplaintRepository, users repo.UserRepository, index Indexer, pub Publisher, cfg *config.Config, logger *logrus.Logger) *ComplaintService {
	return &ComplaintService{
		Complaints: complaints,
		Users:      users,
		Index:      index,
		Publisher:  pub,
		Config:     cfg,
		Logger:     logger,
	}
}

type SubmitInput struct {
	Category    string
	Subject     string
	Description string
}

// Submit files a complaint owned by userID. Status always starts Pending.
func (s *ComplaintService) Submit(ctx context.Context, userID string, in SubmitInput) (*entity.Complaint, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"category", in.Category},
		{"subject", in.Subject},
		{"description", in.Description},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", apperror.ErrValidation, strings.Join(missing, ", "))
	}

	c := &entity.Complaint{
		UserID:      userID,
		Category:    in.Category,
		Subject:     in.Subject,
		Description: in.Description,
	}
	if err := s.Complaints.Create(ctx, c); err != nil {
		return nil, err
	}
	s.afterWrite(ctx, c, tpl.ComplaintReceived)
	return c, nil
}

// ListAll returns every complaint with its owner, newest first.
func (s *ComplaintService) ListAll(ctx context.Context) ([]entity.Complaint, error) {
	return s.Complaints.ListAll(ctx, true)
}

// ListMine returns the caller's complaints, newest first.
func (s *ComplaintService) ListMine(ctx context.Context, userID string) ([]entity.Complaint, error) {
	return s.Complaints.ListByUser(ctx, userID, true)
}

// ChangeStatus overwrites a complaint's status. Checks run in a fixed order:
// caller must be admin, status must parse, complaint must exist.
func (s *ComplaintService) ChangeStatus(ctx context.Context, callerIsAdmin bool, id, status string) (*entity.Complaint, error) {
	if !callerIsAdmin {
		return nil, apperror.ErrForbidden
	}
	next, ok := entity.ParseStatus(status)
	if !ok {
		return nil, apperror.ErrInvalidStatus
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.ErrNotFound
	}
	if next == entity.StatusPending && s.Config != nil && !s.Config.AllowReopen {
		cur, err := s.Complaints.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if cur.Status == entity.StatusResolved {
			return nil, apperror.ErrInvalidTransition
		}
	}

	c, err := s.Complaints.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, c, tpl.ComplaintStatus)
	return c, nil
}

// Search queries the complaint index. Without an index it finds nothing.
func (s *ComplaintService) Search(ctx context.Context, q string, size int) ([]entity.Complaint, error) {
	q = strings.TrimSpace(q)
	if s.Index == nil || q == "" {
		return []entity.Complaint{}, nil
	}
	if size <= 0 {
		size = defaultSearchSize
	}
	if size > maxSearchSize {
		size = maxSearchSize
	}
	out, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, fmt.Errorf("%w: search: %v", apperror.ErrUnavailable, err)
	}
	return out, nil
}

// afterWrite indexes the complaint and queues an email to its owner. Both are
// best effort and only logged on failure.
func (s *ComplaintService) afterWrite(ctx context.Context, c *entity.Complaint, template string) {
	fields := logrus.Fields{"complaint_id": c.ID}
	if s.Index != nil {
		if err := s.Index.Put(ctx, c); err != nil {
			s.warn("complaint index failed", err, fields)
		}
	}
	if s.Publisher == nil || s.Users == nil {
		return
	}
	owner, err := s.Users.GetByID(ctx, c.UserID)
	if err != nil {
		s.warn("load complaint owner failed", err, fields)
		return
	}
	withComplaint := tpl.WithComplaint(c.ID, c.Subject, c.Category, string(c.Status))
	var data map[string]any
	if template == tpl.ComplaintStatus {
		data = tpl.NewComplaintStatusData(s.Config, owner.FullName, owner.Email, withComplaint, tpl.WithTime(time.Now()))
	} else {
		data = tpl.NewComplaintReceivedData(s.Config, owner.FullName, owner.Email, withComplaint, tpl.WithTime(c.Date))
	}
	job := mailer.EmailJob{To: owner.Email, Template: template, Data: data}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil {
		s.warn("publish notification failed", err, fields)
	}
}

func (s *ComplaintService) warn(msg string, err error, fields logrus.Fields) {
	helpers.LogWarn(s.Logger, msg, err, fields)
}
