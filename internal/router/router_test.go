package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/complaint-desk/config"
	"github.com/oksasatya/complaint-desk/internal/container"
	"github.com/oksasatya/complaint-desk/internal/infrastructure/memory"
	"github.com/oksasatya/complaint-desk/pkg/helpers"
)

const adminEmail = "admin@x.com"

func init() { gin.SetMode(gin.TestMode) }

func newTestEngine(t *testing.T, mutate func(*config.Config)) *gin.Engine {
	t.Helper()
	cfg := &config.Config{
		AppName:     "complaint-desk",
		AuthHeader:  "x-auth-token",
		BcryptCost:  4,
		AdminEmail:  adminEmail,
		AllowReopen: true,
		StaticDir:   t.TempDir(),
	}
	if mutate != nil {
		mutate(cfg)
	}
	store := memory.NewStore()
	c := &container.Container{
		Config:     cfg,
		Logger:     helpers.NewDiscardLogger(),
		JWT:        helpers.NewJWTManager("test-secret", time.Hour),
		Users:      store.Users(),
		Complaints: store.Complaints(),
		Reports:    store.Complaints(),
	}
	return NewEngine(c)
}

type client struct {
	t *testing.T
	r *gin.Engine
}

func (cl client) do(method, path, token string, body any) *httptest.ResponseRecorder {
	cl.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(cl.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	w := httptest.NewRecorder()
	cl.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type tokenBody struct {
	Message  string `json:"message"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type complaintBody struct {
	ID       string `json:"_id"`
	User     any    `json:"user"`
	Category string `json:"category"`
	Subject  string `json:"subject"`
	Status   string `json:"status"`
	Date     string `json:"date"`
}

func (cl client) register(name, email, password string) string {
	w := cl.do(http.MethodPost, "/api/register", "", gin.H{"fullName": name, "email": email, "password": password})
	require.Equal(cl.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[tokenBody](cl.t, w).Token
}

func (cl client) login(email, password string) tokenBody {
	w := cl.do(http.MethodPost, "/api/login", "", gin.H{"email": email, "password": password})
	require.Equal(cl.t, http.StatusOK, w.Code, w.Body.String())
	return decode[tokenBody](cl.t, w)
}

func TestScenario_AliceBillingResolvedByAdmin(t *testing.T) {
	cl := client{t: t, r: newTestEngine(t, nil)}

	cl.register("Alice", "alice@x.com", "secret1")
	cl.register("Admin", adminEmail, "adminpw")

	alice := cl.login("alice@x.com", "secret1")
	assert.Equal(t, "Login successful", alice.Message)
	assert.Equal(t, "user", alice.Role)
	assert.Equal(t, "Alice", alice.Username)

	w := cl.do(http.MethodPost, "/api/complaints", alice.Token, gin.H{
		"category": "Billing", "subject": "Late fee", "description": "Charged a late fee after paying on time",
		"user": "someone-else",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"message":"Complaint submitted successfully"}`, w.Body.String())

	mine := decode[[]complaintBody](t, cl.do(http.MethodGet, "/api/complaints/my", alice.Token, nil))
	require.Len(t, mine, 1)
	assert.Equal(t, "Pending", mine[0].Status)
	assert.Equal(t, "Billing", mine[0].Category)
	aliceID, ok := mine[0].User.(string)
	require.True(t, ok)
	assert.NotEqual(t, "someone-else", aliceID)

	admin := cl.login(adminEmail, "adminpw")
	assert.Equal(t, "admin", admin.Role)

	w = cl.do(http.MethodPut, "/api/complaints/"+mine[0].ID+"/status", admin.Token, gin.H{"status": "Resolved"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[struct {
		Message   string        `json:"message"`
		Complaint complaintBody `json:"complaint"`
	}](t, w)
	assert.Equal(t, "Complaint "+mine[0].ID+" updated to Resolved", updated.Message)
	assert.Equal(t, "Resolved", updated.Complaint.Status)

	mine = decode[[]complaintBody](t, cl.do(http.MethodGet, "/api/complaints/my", alice.Token, nil))
	assert.Equal(t, "Resolved", mine[0].Status)

	w = cl.do(http.MethodGet, "/api/report", admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":1,"pending":0,"resolved":1,"complaintsByCategory":[{"_id":"Billing","count":1}]}`, w.Body.String())
}

func TestRegister_Errors(t *testing.T) {
	cl := client{t: t, r: newTestEngine(t, nil)}
	cl.register("Alice", "alice@x.com", "secret1")

	w := cl.do(http.MethodPost, "/api/register", "", gin.H{"fullName": "Eve", "email": "alice@x.com", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"User already exists"}`, w.Body.String())

	w = cl.do(http.MethodPost, "/api/register", "", gin.H{"fullName": "Eve", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"invalid payload","details":{"email":"is required"}}`, w.Body.String())

	w = cl.do(http.MethodPost, "/api/register", "", gin.H{"fullName": "Eve", "email": "eve@x.com", "password": strings.Repeat("p", 80)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"validation failed: password longer than 72 bytes"}`, w.Body.String())
}

func TestRegister_AcceptsAnyEmailShape(t *testing.T) {
	cl := client{t: t, r: newTestEngine(t, nil)}
	token := cl.register("Eve", "eve-at-home", "secret1")
	assert.NotEmpty(t, token)
}

func TestLogin_IdenticalFailures(t *testing.T) {
	cl := client{t: t, r: newTestEngine(t, nil)}
	cl.register("Alice", "alice@x.com", "secret1")

	wrong := cl.do(http.MethodPost, "/api/login", "", gin.H{"email": "alice@x.com", "password": "nope"})
	unknown := cl.do(http.MethodPost, "/api/login", "", gin.H{"email": "bob@x.com", "password": "secret1"})

	assert.Equal(t, http.StatusBadRequest, wrong.Code)
	assert.Equal(t, wrong.Code, unknown.Code)
	assert.JSONEq(t, `{"message":"Invalid Credentials"}`, wrong.Body.String())
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())

	for _, body := range []gin.H{
		{"email": "alice@x.com"},
		{"password": "secret1"},
		{},
	} {
		w := cl.do(http.MethodPost, "/api/login", "", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"Invalid Credentials"}`, w.Body.String())
	}
}

func TestGuards(t *testing.T) {
	cl := client{t: t, r: newTestEngine(t, nil)}
	token := cl.register("Alice", "alice@x.com", "secret1")

	w := cl.do(http.MethodGet, "/api/complaints/my", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"No token, authorization denied"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = cl.do(http.MethodGet, "/api/complaints/my", "bogus", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Token is not valid"}`, w.Body.String())

	w = cl.do(http.MethodGet, "/api/report", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"Access denied: Admin required"}`, w.Body.String())

	w = cl.do(http.MethodPut, "/api/complaints/6f1c3f5e-1b7e-4c1a-9d39-1d2a7d0b8e11/status", token, gin.H{"status": "Resolved"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// the default keeps /all open to any signed-in user
	w = cl.do(http.MethodGet, "/api/complaints/all", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestComplaintsAll_AdminOnlySwitch(t *testing.T) {
	cl := client{t: t, r: newTestEngine(t, func(c *config.Config) { c.ComplaintsAllAdminOnly = true })}
	user := cl.register("Alice", "alice@x.com", "secret1")
	admin := cl.register("Admin", adminEmail, "adminpw")
	cl.do(http.MethodPost, "/api/complaints", user, gin.H{"category": "Billing", "subject": "s", "description": "d"})

	assert.Equal(t, http.StatusForbidden, cl.do(http.MethodGet, "/api/complaints/all", user, nil).Code)

	w := cl.do(http.MethodGet, "/api/complaints/all", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[[]complaintBody](t, w)
	require.Len(t, all, 1)
	owner, ok := all[0].User.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Alice", owner["fullName"])
	assert.Equal(t, "alice@x.com", owner["email"])
}

func TestUpdateStatus_Errors(t *testing.T) {
	cl := client{t: t, r: newTestEngine(t, func(c *config.Config) { c.AllowReopen = false })}
	user := cl.register("Alice", "alice@x.com", "secret1")
	admin := cl.register("Admin", adminEmail, "adminpw")
	cl.do(http.MethodPost, "/api/complaints", user, gin.H{"category": "Billing", "subject": "s", "description": "d"})
	id := decode[[]complaintBody](t, cl.do(http.MethodGet, "/api/complaints/my", user, nil))[0].ID

	w := cl.do(http.MethodPut, "/api/complaints/"+id+"/status", admin, gin.H{"status": "Closed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid status value"}`, w.Body.String())

	w = cl.do(http.MethodPut, "/api/complaints/6f1c3f5e-1b7e-4c1a-9d39-1d2a7d0b8e11/status", admin, gin.H{"status": "Resolved"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Complaint not found"}`, w.Body.String())

	w = cl.do(http.MethodPut, "/api/complaints/not-an-id/status", admin, gin.H{"status": "Resolved"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.Equal(t, http.StatusOK, cl.do(http.MethodPut, "/api/complaints/"+id+"/status", admin, gin.H{"status": "Resolved"}).Code)
	w = cl.do(http.MethodPut, "/api/complaints/"+id+"/status", admin, gin.H{"status": "Pending"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSubmit_Validation(t *testing.T) {
	cl := client{t: t, r: newTestEngine(t, nil)}
	user := cl.register("Alice", "alice@x.com", "secret1")

	w := cl.do(http.MethodPost, "/api/complaints", user, gin.H{"category": "Billing", "subject": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[struct {
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	}](t, w)
	assert.Equal(t, "invalid payload", body.Message)
	assert.Equal(t, "must not be blank", body.Details["subject"])
	assert.Equal(t, "is required", body.Details["description"])
}

func TestExport_Unavailable(t *testing.T) {
	cl := client{t: t, r: newTestEngine(t, nil)}
	admin := cl.register("Admin", adminEmail, "adminpw")
	w := cl.do(http.MethodPost, "/api/report/export", admin, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestLogout_WithoutRevocation(t *testing.T) {
	cl := client{t: t, r: newTestEngine(t, nil)}
	token := cl.register("Alice", "alice@x.com", "secret1")
	w := cl.do(http.MethodPost, "/api/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Logged out"}`, w.Body.String())
}

func TestHealthAndStatic(t *testing.T) {
	var dir string
	cl := client{t: t, r: newTestEngine(t, func(c *config.Config) { dir = c.StaticDir })}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "script.js"), []byte("console.log(1)"), 0o644))

	w := cl.do(http.MethodGet, "/api/healthz", "", nil)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = cl.do(http.MethodGet, "/script.js", "", nil)
	assert.Equal(t, "console.log(1)", w.Body.String())

	w = cl.do(http.MethodGet, "/dashboard/anything", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<html>app</html>", w.Body.String())

	w = cl.do(http.MethodGet, "/../../etc/passwd", "", nil)
	assert.NotContains(t, w.Body.String(), "root:")

	w = cl.do(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Not found"}`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, cl.do(http.MethodGet, "/api/debug/vars", "", nil).Code)
}
