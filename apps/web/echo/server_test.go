package echoweb

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/apps/actions"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/apps/gate"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
	"github.com/alassafsami695-wq/graduation-project-main-sub001/core/user"
	cachesvc "github.com/alassafsami695-wq/graduation-project-main-sub001/services/cache"
	transportsvc "github.com/alassafsami695-wq/graduation-project-main-sub001/services/transport"
	inmemdb "github.com/alassafsami695-wq/graduation-project-main-sub001/storage/database/inmem"
	testutil "github.com/alassafsami695-wq/graduation-project-main-sub001/tests"
)

type fixture struct {
	app      Server
	api      *testutil.FakeAPI
	sessions core.SessionStore
	cache    *cachesvc.MemoryCache
}

func setup(t *testing.T) fixture {
	t.Helper()
	api := testutil.NewFakeAPI(t)
	sessions := inmemdb.NewSessionStore(inmemdb.Open())
	cache := cachesvc.NewMemoryCache()
	logger := &testutil.RecordingLogger{}
	msgs, err := core.NewMessages("en")
	require.NoError(t, err)

	acts := actions.New(actions.Deps{
		Client:   transportsvc.NewClient(transportsvc.Options{BaseURL: api.BaseURL()}),
		Notifier: cachesvc.NewNotifier(cachesvc.NotifierOptions{Cache: cache, Logger: logger}),
		Logger:   logger,
		Messages: msgs,
	})
	app := NewServer(&Options{
		AppName:        "Academy",
		TestMode:       true,
		DisableReqLogs: true,
		SessionTTL:     time.Hour,
		Logger:         logger,
		Actions:        acts,
		Sessions:       sessions,
		Gate:           gate.MustNew(),
		Views:          cachesvc.NewViews(cache, time.Minute, logger),
	})
	return fixture{app: app, api: api, sessions: sessions, cache: cache}
}

// login persists a session of role and returns it.
func (f fixture) login(t *testing.T, role string) core.Session {
	t.Helper()
	sess := testutil.SessionWithRole(1, role)
	require.NoError(t, f.sessions.Save(context.Background(), sess, time.Hour))
	return sess
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	sess     *core.Session
	wantCode int
	wantData []byte
}

func newSessionRequest(method, path string, sess *core.Session, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if sess != nil {
		req.AddCookie(&http.Cookie{Name: core.SessionStorageName, Value: sess.ID})
	}
	return req, httptest.NewRecorder()
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
	if tt.wantData != nil {
		assert.JSONEq(t, string(tt.wantData), rec.Body.String())
	}
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == core.SessionStorageName {
			return c
		}
	}
	return nil
}

func TestGate(t *testing.T) {
	f := setup(t)
	student := f.login(t, user.RoleStudent)

	tests := []struct {
		name         string
		path         string
		sess         *core.Session
		wantCode     int
		wantLocation string
	}{
		{name: "public page", path: "/courses/12", wantCode: http.StatusOK},
		{name: "protected page anonymous", path: "/dashboard/student", wantCode: http.StatusFound, wantLocation: "/login"},
		{name: "protected page", path: "/dashboard/student", sess: &student, wantCode: http.StatusOK},
		{name: "other role", path: "/dashboard/admin/users", sess: &student, wantCode: http.StatusFound, wantLocation: "/dashboard/student"},
		{name: "unknown page anonymous", path: "/settings", wantCode: http.StatusFound, wantLocation: "/login"},
		{name: "login page", path: "/login", wantCode: http.StatusOK},
		{name: "static assets", path: "/_next/static/app.js", wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newSessionRequest(http.MethodGet, tt.path, tt.sess)
			f.app.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
		})
	}
}

func TestUnknownSessionCookie(t *testing.T) {
	f := setup(t)
	ghost := testutil.StudentSession(9)

	req, rec := newSessionRequest(http.MethodGet, "/dashboard/student", &ghost)
	f.app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusFound, rec.Code)
	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.Equal(t, -1, c.MaxAge)
}

func TestLoginLogout(t *testing.T) {
	f := setup(t)
	f.api.On(http.MethodPost, "/login", http.StatusOK,
		`{"access_token":"abc","user":{"id":4,"name":"Sara","email":"sara@test.io","type":"teacher"}}`)

	req, rec := newSessionRequest(http.MethodPost, "/api/auth/login", nil, []byte(`{"email":"sara@test.io","password":"secret1"}`))
	f.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t,
		`{"success":true,"data":{"user":{"id":4,"name":"Sara","email":"sara@test.io","type":"teacher"},"redirect_to":"/dashboard/teacher"}}`,
		rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "abc")

	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.True(t, c.HttpOnly)
	sess, err := f.sessions.Load(context.Background(), c.Value)
	require.NoError(t, err)
	assert.Equal(t, "abc", sess.Token)
	assert.Equal(t, user.RoleTeacher, sess.Role)

	req, rec = newSessionRequest(http.MethodGet, "/api/auth/session", &sess)
	f.app.ServeHTTP(rec, req)
	assert.JSONEq(t,
		`{"success":true,"data":{"authenticated":true,"user_id":4,"name":"Sara","email":"sara@test.io","role":"teacher","home_path":"/dashboard/teacher"}}`,
		rec.Body.String())

	req, rec = newSessionRequest(http.MethodPost, "/api/auth/logout", &sess)
	f.app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	_, err = f.sessions.Load(context.Background(), sess.ID)
	assert.Equal(t, core.ErrSessionNotFound, err)
}

func TestLoginFailures(t *testing.T) {
	f := setup(t)
	f.api.On(http.MethodPost, "/login", http.StatusUnauthorized, `{"message":"Invalid credentials"}`)

	tests := []httpTest{
		{
			name:     "wrong credentials",
			body:     []byte(`{"email":"sara@test.io","password":"secret1"}`),
			wantCode: http.StatusUnauthorized,
			wantData: []byte(`{"success":false,"error":"Invalid credentials"}`),
		},
		{
			name:     "invalid email",
			body:     []byte(`{"email":"sara","password":"secret1"}`),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newSessionRequest(http.MethodPost, "/api/auth/login", nil, tt.body)
			f.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
			assert.Nil(t, sessionCookie(rec))
		})
	}
}

func TestAuthAndRoles(t *testing.T) {
	f := setup(t)
	student := f.login(t, user.RoleStudent)
	f.api.On(http.MethodGet, "/teacher/courses", http.StatusOK, `[]`)

	tests := []httpTest{
		{
			name: "anonymous", method: http.MethodGet, path: "/api/profile",
			wantCode: http.StatusUnauthorized,
			wantData: []byte(`{"success":false,"error":"user not authenticated"}`),
		},
		{
			name: "wrong role", method: http.MethodGet, path: "/api/teacher/courses", sess: &student,
			wantCode: http.StatusForbidden,
			wantData: []byte(`{"success":false,"error":"permission denied"}`),
		},
		{
			name: "admin only", method: http.MethodPost, path: "/api/admin/categories", sess: &student,
			body:     []byte(`{"title":"Data"}`),
			wantCode: http.StatusForbidden,
		},
		{
			name: "invalid id", method: http.MethodPost, path: "/api/courses/abc/purchase", sess: &student,
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"success":false,"error":{"id":"must be a positive identifier"}}`),
		},
		{
			name: "invalid input", method: http.MethodPost, path: "/api/wishlist/toggle", sess: &student,
			body:     []byte(`{"course_id":0}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"success":false,"error":"course_id: must be a positive identifier"}`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newSessionRequest(tt.method, tt.path, tt.sess, tt.body)
			f.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
	assert.Empty(t, f.api.Requests())
}

func TestRejectedTokenEndsSession(t *testing.T) {
	f := setup(t)
	student := f.login(t, user.RoleStudent)
	f.api.On(http.MethodGet, "/profile", http.StatusUnauthorized, `{"message":"Unauthenticated."}`)

	req, rec := newSessionRequest(http.MethodGet, "/api/profile", &student)
	f.app.ServeHTTP(rec, req)

	checkCodeAndData(t, httpTest{
		wantCode: http.StatusUnauthorized,
		wantData: []byte(`{"success":false,"error":"Unauthenticated."}`),
	}, rec)
	_, err := f.sessions.Load(context.Background(), student.ID)
	assert.Equal(t, core.ErrSessionNotFound, err)
	c := sessionCookie(rec)
	require.NotNil(t, c)
	assert.Equal(t, -1, c.MaxAge)
}

func TestSuspendedCommentIsForbidden(t *testing.T) {
	f := setup(t)
	student := f.login(t, user.RoleStudent)
	f.api.On(http.MethodGet, "/profile", http.StatusOK, `{"data":{"id":1,"type":"user","status":"suspended"}}`)

	req, rec := newSessionRequest(http.MethodPost, "/api/comments", &student, []byte(`{"lesson_id":3,"content":"Nice"}`))
	f.app.ServeHTTP(rec, req)

	checkCodeAndData(t, httpTest{
		wantCode: http.StatusForbidden,
		wantData: []byte(`{"success":false,"error":"Your account is suspended. You cannot post comments."}`),
	}, rec)
	assert.Equal(t, 0, f.api.Calls(http.MethodPost, "/comments"))
}

func TestCachedViewsAreInvalidated(t *testing.T) {
	f := setup(t)
	admin := f.login(t, user.RoleAdmin)
	f.api.On(http.MethodGet, "/paths", http.StatusOK, `{"data":[{"id":1,"title":"Backend"}]}`)
	f.api.On(http.MethodPost, "/admin/paths", http.StatusCreated, `{"data":{"id":2,"title":"Data"}}`)

	get := func() {
		req, rec := newSessionRequest(http.MethodGet, "/api/categories", nil)
		f.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"data":[{"id":1,"title":"Backend"}]}`, rec.Body.String())
	}

	get()
	get()
	assert.Equal(t, 1, f.api.Calls(http.MethodGet, "/paths"))

	req, rec := newSessionRequest(http.MethodPost, "/api/admin/categories", &admin, []byte(`{"title":"Data"}`))
	f.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	get()
	assert.Equal(t, 2, f.api.Calls(http.MethodGet, "/paths"))
}

func TestHomeIsNotSharedWithSignedInUsers(t *testing.T) {
	f := setup(t)
	student := f.login(t, user.RoleStudent)
	for _, path := range []string{"/slides", "/paths", "/features", "/contact-settings"} {
		f.api.On(http.MethodGet, path, http.StatusOK, `{"data":[]}`)
	}
	f.api.On(http.MethodGet, "/courses/best-selling", http.StatusOK, `{"data":[{"id":42,"title":"Go","price":10,"is_wishlisted":true}]}`)

	get := func(sess *core.Session) string {
		req, rec := newSessionRequest(http.MethodGet, "/api/home", sess)
		f.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return rec.Body.String()
	}

	assert.Contains(t, get(&student), `"is_wishlisted":true`)

	f.api.On(http.MethodGet, "/courses/best-selling", http.StatusOK, `{"data":[{"id":42,"title":"Go","price":10}]}`)
	assert.NotContains(t, get(nil), "is_wishlisted")
	assert.Equal(t, 2, f.api.Calls(http.MethodGet, "/courses/best-selling"))

	get(nil)
	assert.Equal(t, 2, f.api.Calls(http.MethodGet, "/courses/best-selling"))
}

func TestDeletedCourseLeavesPublicViews(t *testing.T) {
	f := setup(t)
	teacher := f.login(t, user.RoleTeacher)
	f.api.On(http.MethodGet, "/courses/42", http.StatusOK, `{"data":{"id":42,"title":"Go","price":10}}`)
	f.api.On(http.MethodGet, "/paths/3/courses", http.StatusOK, `{"data":[{"id":42,"title":"Go","price":10}]}`)
	f.api.On(http.MethodDelete, "/teacher/courses/42", http.StatusOK, `{"message":"deleted"}`)

	for i := 0; i < 2; i++ {
		for _, path := range []string{"/api/courses/42", "/api/categories/3/courses"} {
			req, rec := newSessionRequest(http.MethodGet, path, nil)
			f.app.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		}
	}
	assert.Equal(t, 1, f.api.Calls(http.MethodGet, "/courses/42"))
	assert.Equal(t, 2, f.api.Calls(http.MethodGet, "/paths/3/courses"))

	req, rec := newSessionRequest(http.MethodDelete, "/api/teacher/courses/42", &teacher)
	f.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	f.api.On(http.MethodGet, "/courses/42", http.StatusNotFound, `{"message":"Course not found"}`)
	req, rec = newSessionRequest(http.MethodGet, "/api/courses/42", nil)
	f.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusNotFound,
		wantData: []byte(`{"success":false,"error":"Course not found"}`),
	}, rec)
	assert.Equal(t, 2, f.api.Calls(http.MethodGet, "/courses/42"))
}

func TestFailedReadsAreNotCached(t *testing.T) {
	f := setup(t)
	f.api.On(http.MethodGet, "/job-listings", http.StatusInternalServerError, `{"message":"Server Error"}`)

	req, rec := newSessionRequest(http.MethodGet, "/api/careers", nil)
	f.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusInternalServerError,
		wantData: []byte(`{"success":false,"error":"Server Error"}`),
	}, rec)
	assert.Zero(t, f.cache.Len())
}

func TestCreateAdForwardsImage(t *testing.T) {
	f := setup(t)
	admin := f.login(t, user.RoleAdmin)
	f.api.On(http.MethodPost, "/admin/ads", http.StatusCreated, `{"data":{"id":5,"title":"Summer","active":true}}`)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("title", "Summer"))
	require.NoError(t, w.WriteField("active", "true"))
	part, err := w.CreateFormFile("image", "summer.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("PNG"))
	require.NoError(t, w.Close())

	req, rec := newSessionRequest(http.MethodPost, "/api/admin/ads", &admin, body.Bytes())
	req.Header.Set("Content-Type", w.FormDataContentType())
	f.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	fwd := f.api.Last(t, http.MethodPost, "/admin/ads")
	assert.True(t, strings.HasPrefix(fwd.Header.Get("Content-Type"), "multipart/form-data"))
	assert.Contains(t, string(fwd.Body), `filename="summer.png"`)
	assert.Contains(t, string(fwd.Body), "PNG")
	assert.Equal(t, "Bearer "+admin.Token, fwd.Header.Get("Authorization"))
}
