package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"belakoo-backend-go/internal/config"
	"belakoo-backend-go/internal/models"
	"belakoo-backend-go/internal/notify"
	"belakoo-backend-go/internal/services"
	"belakoo-backend-go/internal/store/memory"

	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (r *recordingNotifier) Notify(ctx context.Context, n notify.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

type testAPI struct {
	t          *testing.T
	server     *Server
	handler    http.Handler
	notifier   *recordingNotifier
	adminToken string
	volToken   string
	admin      models.User
	volunteer  models.User
}

func newTestAPI(t *testing.T, contentDir string) *testAPI {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := config.Config{
		JWTSecret:         "test-secret",
		JWTIssuer:         "belakoo-test",
		AccessTTLSeconds:  3600,
		RefreshTTLSeconds: 7200,
		ContentDir:        contentDir,
		DefaultCampusCode: "c1",
		SystemDiskPath:    "/",
	}
	hub := services.NewActivityHub()
	go hub.Run(ctx)
	n := &recordingNotifier{}
	srv := NewServer(memory.New(), cfg, hub, Options{Notifier: n})

	admin, _, err := srv.Users.EnsureAdmin(ctx, services.NewUser{Email: "admin@belakoo.com", Name: "Admin", Password: "admin-pw"})
	require.NoError(t, err)
	admin.PushToken = ptr("ExponentPushToken[admin]")
	require.NoError(t, srv.Store.UpdateUser(ctx, &admin))
	vol, err := srv.Users.CreateVolunteer(ctx, services.NewUser{Email: "vol@belakoo.com", Name: "Vol", Password: "vol-pw"})
	require.NoError(t, err)

	adminPair, err := srv.Tokens.IssuePair(admin)
	require.NoError(t, err)
	volPair, err := srv.Tokens.IssuePair(vol)
	require.NoError(t, err)

	return &testAPI{
		t:          t,
		server:     srv,
		handler:    srv.Router(ctx),
		notifier:   n,
		adminToken: adminPair.AccessToken,
		volToken:   volPair.AccessToken,
		admin:      admin,
		volunteer:  vol,
	}
}

func (a *testAPI) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func ptr[T any](v T) *T { return &v }

// seed builds campus c1 > G5 > MATH > P1 through the admin API.
func (a *testAPI) seed() (CampusDTO, GradeDTO, SubjectDTO, ProficiencyDTO) {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/admin/campuses", a.adminToken, map[string]string{"campus_code": "c1", "name": "Main campus"})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	campus := decodeBody[CampusDTO](a.t, rec)

	rec = a.do(http.MethodPost, "/api/admin/grades", a.adminToken, map[string]string{"campus_id": campus.ID, "grade_code": "G5"})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	grade := decodeBody[GradeDTO](a.t, rec)

	rec = a.do(http.MethodPost, "/api/admin/subjects", a.adminToken, map[string]string{"grade_id": grade.ID, "subject_code": "MATH", "name": "Maths"})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	subject := decodeBody[SubjectDTO](a.t, rec)

	rec = a.do(http.MethodPost, "/api/admin/proficiencies", a.adminToken, map[string]string{"subject_id": subject.ID, "proficiency_code": "P1"})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	prof := decodeBody[ProficiencyDTO](a.t, rec)
	return campus, grade, subject, prof
}
