package routes_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"committee-tracker/backend/internal/routes"
	"committee-tracker/backend/testutil"
)

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	_, r, _, _ := testutil.SetupTestDB(t)

	w := serve(r, http.MethodGet, "/api/health")
	testutil.AssertStatus(t, http.StatusOK, w)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRequestID(t *testing.T) {
	_, r, _, _ := testutil.SetupTestDB(t)

	t.Run("generated when missing", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/api/summary")
		id := w.Header().Get(routes.RequestIDHeader)
		_, err := uuid.Parse(id)
		assert.NoError(t, err, "request id %q should be a uuid", id)
	})

	t.Run("propagated when supplied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
		req.Header.Set(routes.RequestIDHeader, "trace-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "trace-123", w.Header().Get(routes.RequestIDHeader))
	})
}

func TestRequestLogger_LevelFollowsStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, hook := test.NewNullLogger()

	r := gin.New()
	r.Use(routes.RequestLogger(logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	tests := []struct {
		path  string
		level log.Level
		code  int
	}{
		{"/ok", log.InfoLevel, http.StatusOK},
		{"/bad", log.WarnLevel, http.StatusBadRequest},
		{"/boom", log.ErrorLevel, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		hook.Reset()
		serve(r, http.MethodGet, tt.path)

		entry := hook.LastEntry()
		require.NotNil(t, entry, tt.path)
		assert.Equal(t, tt.level, entry.Level, tt.path)
		assert.Equal(t, tt.code, entry.Data["status"])
		assert.Equal(t, tt.path, entry.Data["path"])
		assert.NotEmpty(t, entry.Data["request_id"])
	}
}

func TestRequestLogger_RecordsAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, hook := test.NewNullLogger()

	r := gin.New()
	r.Use(routes.RequestLogger(logger))
	r.GET("/whoami", func(c *gin.Context) {
		c.Set("admin_username", "admin")
		c.Status(http.StatusOK)
	})

	serve(r, http.MethodGet, "/whoami")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "admin", hook.LastEntry().Data["admin"])
}

func TestAdminPage(t *testing.T) {
	_, r, _, _ := testutil.SetupTestDB(t)

	w := serve(r, http.MethodGet, "/admin")
	testutil.AssertStatus(t, http.StatusOK, w)
	assert.Equal(t, testutil.AdminHTML, w.Body.String())
}

func TestFallback(t *testing.T) {
	db, _, _, _ := testutil.SetupTestDB(t)
	r := testutil.SetupTestRouter(t, db)

	t.Run("unknown GET path serves dashboard", func(t *testing.T) {
		for _, p := range []string{"/", "/committees/3", "/some/deep/link"} {
			w := serve(r, http.MethodGet, p)
			testutil.AssertStatus(t, http.StatusOK, w)
			assert.Equal(t, testutil.DashboardHTML, w.Body.String(), p)
		}
	})

	t.Run("path traversal stays inside public dir", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/../../etc/passwd")
		assert.NotContains(t, w.Body.String(), "root:")
	})

	t.Run("unmatched non-GET is 404 json", func(t *testing.T) {
		for _, m := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
			w := serve(r, m, "/api/nothing-here")
			testutil.AssertStatus(t, http.StatusNotFound, w)
			assert.Equal(t, "Not found", testutil.ResponseError(t, w))
		}
	})
}

func TestFallback_ServesStaticAssets(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(testutil.DashboardHTML), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "app.css"), []byte("body{}"), 0o644))

	r := gin.New()
	r.NoRoute(routes.FallbackHandler(dir))

	w := serve(r, http.MethodGet, "/css/app.css")
	testutil.AssertStatus(t, http.StatusOK, w)
	assert.Equal(t, "body{}", w.Body.String())

	// ディレクトリそのものはダッシュボードにフォールバックする
	w = serve(r, http.MethodGet, "/css")
	testutil.AssertStatus(t, http.StatusOK, w)
	assert.Equal(t, testutil.DashboardHTML, w.Body.String())
}

func TestCORS(t *testing.T) {
	_, r, _, _ := testutil.SetupTestDB(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/committees", nil)
	req.Header.Set("Origin", "http://example.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Less(t, w.Code, 300)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnmatchedAdminPathsRequireBasicAuth(t *testing.T) {
	_, r, _, _ := testutil.SetupTestDB(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/committees/1"},
		{http.MethodGet, "/api/admin"},
		{http.MethodPost, "/api/admin/unknown"},
		{http.MethodDelete, "/api/admin/password"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := serve(r, tt.method, tt.path)
			testutil.AssertStatus(t, http.StatusUnauthorized, w)
			assert.Equal(t, "Unauthorized", testutil.ResponseError(t, w))

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Authorization", testutil.BasicAuth("admin", "wrong"))
			w = httptest.NewRecorder()
			r.ServeHTTP(w, req)
			testutil.AssertStatus(t, http.StatusUnauthorized, w)
			assert.Equal(t, "Invalid credentials", testutil.ResponseError(t, w))

			req = httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Authorization", testutil.AdminAuth())
			w = httptest.NewRecorder()
			r.ServeHTTP(w, req)
			testutil.AssertStatus(t, http.StatusNotFound, w)
			assert.Equal(t, "Not found", testutil.ResponseError(t, w))
		})
	}

	// 似たパスは通常のフォールバックのまま
	w := serve(r, http.MethodGet, "/api/administrators")
	testutil.AssertStatus(t, http.StatusOK, w)
	assert.Equal(t, testutil.DashboardHTML, w.Body.String())
}
