package routes

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// 公開ディレクトリ内のHTMLシェル
const (
	dashboardPage = "index.html"
	adminPage     = "admin.html"
)

// AdminPageHandler は管理画面のHTMLを返します。
func AdminPageHandler(publicDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.File(filepath.Join(publicDir, adminPage))
	}
}

// FallbackHandler はルートに一致しないリクエストを処理します。
// 公開ディレクトリに該当ファイルがあればそれを、無ければダッシュボードを返します(SPAルーティング)。
func FallbackHandler(publicDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		// path.Clean で ".." を取り除いてから公開ディレクトリに結合する
		name := path.Clean("/" + c.Request.URL.Path)
		if name != "/" {
			file := filepath.Join(publicDir, filepath.FromSlash(name))
			if info, err := os.Stat(file); err == nil && !info.IsDir() {
				c.File(file)
				return
			}
		}
		c.File(filepath.Join(publicDir, dashboardPage))
	}
}
