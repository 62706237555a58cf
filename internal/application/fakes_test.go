package application

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/oksasatya/complaint-desk/config"
	"github.com/oksasatya/complaint-desk/internal/domain/entity"
	"github.com/oksasatya/complaint-desk/internal/infrastructure/memory"
	"github.com/oksasatya/complaint-desk/pkg/helpers"
)

const testAdminEmail = "admin@x.com"

type fakeRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newFakeRevoker() *fakeRevoker { return &fakeRevoker{revoked: map[string]time.Duration{}} }

func (f *fakeRevoker) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[jti] = ttl
	return nil
}

func (f *fakeRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.revoked[jti]
	return ok, nil
}

type fakeIndex struct {
	mu   sync.Mutex
	docs map[string]entity.Complaint
	err  error
}

func newFakeIndex() *fakeIndex { return &fakeIndex{docs: map[string]entity.Complaint{}} }

func (f *fakeIndex) Put(_ context.Context, c *entity.Complaint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.docs[c.ID] = *c
	return nil
}

func (f *fakeIndex) Search(_ context.Context, q string, size int) ([]entity.Complaint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []entity.Complaint{}
	for _, d := range f.docs {
		if d.Subject == q && len(out) < size {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakePublisher struct {
	mu   sync.Mutex
	jobs []any
	err  error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, body)
	return nil
}

type fakeUploader struct {
	path        string
	contentType string
	body        string
	err         error
}

func (f *fakeUploader) Upload(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, _ := io.ReadAll(r)
	f.path, f.contentType, f.body = objectPath, contentType, string(b)
	return "https://storage.googleapis.com/bucket/" + objectPath, nil
}

// untouchableRepo fails loudly if any store method is reached.
type untouchableRepo struct{ calls int }

var errTouched = errors.New("store must not be touched")

func (r *untouchableRepo) Create(context.Context, *entity.Complaint) error { r.calls++; return errTouched }
func (r *untouchableRepo) GetByID(context.Context, string) (*entity.Complaint, error) {
	r.calls++
	return nil, errTouched
}
func (r *untouchableRepo) ListAll(context.Context, bool) ([]entity.Complaint, error) {
	r.calls++
	return nil, errTouched
}
func (r *untouchableRepo) ListByUser(context.Context, string, bool) ([]entity.Complaint, error) {
	r.calls++
	return nil, errTouched
}
func (r *untouchableRepo) UpdateStatus(context.Context, string, entity.ComplaintStatus) (*entity.Complaint, error) {
	r.calls++
	return nil, errTouched
}

type fixture struct {
	store      *memory.Store
	cfg        *config.Config
	auth       *AuthService
	complaints *ComplaintService
	reports    *ReportService
	index      *fakeIndex
	publisher  *fakePublisher
	revoker    *fakeRevoker
}

func newFixture() *fixture {
	store := memory.NewStore()
	cfg := &config.Config{AppName: "complaint-desk", CompanyName: "Acme", AdminEmail: testAdminEmail, AllowReopen: true}
	logger := helpers.NewDiscardLogger()
	creds := NewCredentialStore(store.Users(), 4)
	revoker := newFakeRevoker()
	index := newFakeIndex()
	pub := &fakePublisher{}
	return &fixture{
		store:      store,
		cfg:        cfg,
		auth:       NewAuthService(creds, helpers.NewJWTManager("test-secret", time.Hour), revoker, testAdminEmail, logger),
		complaints: NewComplaintService(store.Complaints(), store.Users(), index, pub, cfg, logger),
		reports:    NewReportService(store.Complaints(), nil, logger),
		index:      index,
		publisher:  pub,
		revoker:    revoker,
	}
}

func (f *fixture) register(ctx context.Context, name, email string) *entity.User {
	if _, err := f.auth.Register(ctx, name, email, "secret1"); err != nil {
		panic(err)
	}
	u, err := f.store.Users().GetByEmail(ctx, email)
	if err != nil {
		panic(err)
	}
	return u
}
