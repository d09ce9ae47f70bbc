package testutil

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"committee-tracker/backend/internal/config"
	"committee-tracker/backend/internal/database"
	"committee-tracker/backend/internal/repositories"
	"committee-tracker/backend/internal/routes"
	"committee-tracker/backend/internal/seed"
)

// テスト用HTMLシェルの中身
const (
	DashboardHTML = "<!doctype html><title>dashboard</title>"
	AdminHTML     = "<!doctype html><title>admin</title>"
)

// NewTestLogger は出力を捨てるロガーを返します。
func NewTestLogger() *log.Logger {
	logger, _ := test.NewNullLogger()
	return logger
}

// OpenTestDB は一時ディレクトリにDBファイルを作成して開きます。テスト終了時に閉じます。
func OpenTestDB(t *testing.T) (*sqlx.DB, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data", "committees.db")
	db, err := database.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, path
}

// SetupTestDB はシード済みのテスト用データベースとルーターをセットアップします。
func SetupTestDB(t *testing.T) (*sqlx.DB, *gin.Engine, *repositories.CommitteeRepository, *repositories.AdminRepository) {
	t.Helper()

	db, _ := OpenTestDB(t)
	logger := NewTestLogger()
	_, err := seed.Run(context.Background(), db, logger)
	require.NoError(t, err)

	router := SetupTestRouter(t, db)
	return db, router, repositories.NewCommitteeRepository(db), repositories.NewAdminRepository(db)
}

// SetupTestRouter はテスト用の公開ディレクトリを作成し、本番と同じルーターを返します。
func SetupTestRouter(t *testing.T, db *sqlx.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	publicDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "index.html"), []byte(DashboardHTML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "admin.html"), []byte(AdminHTML), 0o644))

	cfg := &config.Config{
		Port:      config.DefaultPort,
		DBPath:    "unused",
		PublicDir: publicDir,
		LogLevel:  config.DefaultLogLevel,
	}
	return routes.SetupRouter(db, cfg, NewTestLogger())
}

// BasicAuth は Authorization ヘッダーの値を作成します。
func BasicAuth(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

// DoJSON はJSONボディ付きのリクエストをルーターに送信します。auth が空ならヘッダーを付けません。
func DoJSON(t *testing.T, router *gin.Engine, method, path string, body any, auth string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

// DecodeJSON はレスポンスボディを v にデコードします。
func DecodeJSON(t *testing.T, resp *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), v), "body: %s", resp.Body.String())
}

// AdminAuth はシードされた管理者のBasic認証ヘッダーです。
func AdminAuth() string {
	return BasicAuth(seed.DefaultAdminUsername, seed.DefaultAdminPassword)
}

// ResponseError はエラーレスポンスの error フィールドを返します。
func ResponseError(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	DecodeJSON(t, resp, &body)
	msg, _ := body["error"].(string)
	return msg
}

// AssertStatus はステータスコードを検証し、失敗時にボディを表示します。
func AssertStatus(t *testing.T, want int, resp *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, want, resp.Code, "body: %s", resp.Body.String())
}
