// Package memory holds process-local repository implementations used when
// STORAGE_BACKEND=memory and by tests. Data does not survive a restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/complaint-desk/internal/domain/apperror"
	"github.com/oksasatya/complaint-desk/internal/domain/entity"
	"github.com/oksasatya/complaint-desk/internal/domain/repository"
)

// Store keeps users and complaints behind a single lock so that the
// owner check on complaint creation sees a consistent user set.
type Store struct {
	mu         sync.RWMutex
	users      map[string]entity.User
	byEmail    map[string]string
	complaints map[string]entity.Complaint
	seq        []string // complaint ids in insertion order
	now        func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:      make(map[string]entity.User),
		byEmail:    make(map[string]string),
		complaints: make(map[string]entity.Complaint),
		now:        time.Now,
	}
}

// WithClock replaces the timestamp source.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Users() *UserRepository           { return &UserRepository{s: s} }
func (s *Store) Complaints() *ComplaintRepository { return &ComplaintRepository{s: s} }

// DeleteUser removes a user without touching their complaints.
func (s *Store) DeleteUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		delete(s.byEmail, u.Email)
		delete(s.users, id)
	}
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.byEmail[u.Email]; exists {
		return apperror.ErrDuplicateUser
	}
	u.ID = uuid.NewString()
	u.CreatedAt = r.s.now().UTC()
	r.s.users[u.ID] = *u
	r.s.byEmail[u.Email] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.byEmail[email]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	u := r.s.users[id]
	return &u, nil
}

type ComplaintRepository struct{ s *Store }

func (r *ComplaintRepository) Create(_ context.Context, c *entity.Complaint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[c.UserID]; !ok {
		return apperror.ErrNotFound
	}
	c.ID = uuid.NewString()
	c.Status = entity.StatusPending
	c.Date = r.s.now().UTC()
	c.Owner = nil
	r.s.complaints[c.ID] = *c
	r.s.seq = append(r.s.seq, c.ID)
	return nil
}

func (r *ComplaintRepository) GetByID(_ context.Context, id string) (*entity.Complaint, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.complaints[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return &c, nil
}

func (r *ComplaintRepository) ListAll(_ context.Context, newestFirst bool) ([]entity.Complaint, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := r.s.collect(func(entity.Complaint) bool { return true })
	for i := range out {
		if u, ok := r.s.users[out[i].UserID]; ok {
			out[i].Owner = &entity.Owner{ID: u.ID, FullName: u.FullName, Email: u.Email}
		}
	}
	sortByDate(out, newestFirst)
	return out, nil
}

func (r *ComplaintRepository) ListByUser(_ context.Context, userID string, newestFirst bool) ([]entity.Complaint, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := r.s.collect(func(c entity.Complaint) bool { return c.UserID == userID })
	sortByDate(out, newestFirst)
	return out, nil
}

func (r *ComplaintRepository) UpdateStatus(_ context.Context, id string, status entity.ComplaintStatus) (*entity.Complaint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.complaints[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	c.Status = status
	r.s.complaints[id] = c
	return &c, nil
}

func (r *ComplaintRepository) CountByCategoryAndStatus(_ context.Context) ([]entity.CategoryStatusCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	type key struct {
		category string
		status   entity.ComplaintStatus
	}
	counts := make(map[key]int64)
	for _, c := range r.s.complaints {
		counts[key{c.Category, c.Status}]++
	}
	out := make([]entity.CategoryStatusCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, entity.CategoryStatusCount{Category: k.category, Status: k.status, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Status < out[j].Status
	})
	return out, nil
}

// collect must be called with the lock held.
func (s *Store) collect(keep func(entity.Complaint) bool) []entity.Complaint {
	out := make([]entity.Complaint, 0, len(s.seq))
	for _, id := range s.seq {
		if c := s.complaints[id]; keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// sortByDate is stable so equal timestamps keep insertion order
// (reversed when newest first).
func sortByDate(list []entity.Complaint, newestFirst bool) {
	if newestFirst {
		for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
			list[i], list[j] = list[j], list[i]
		}
		sort.SliceStable(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
		return
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
}

var (
	_ repository.UserRepository      = (*UserRepository)(nil)
	_ repository.ComplaintRepository = (*ComplaintRepository)(nil)
	_ repository.ReportRepository    = (*ComplaintRepository)(nil)
)
