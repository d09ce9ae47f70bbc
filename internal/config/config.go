// Package config はサーバーの設定を読み込みます。
// 優先順位: コマンドラインフラグ > 環境変数 (.env を含む) > デフォルト値
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// デフォルト値
const (
	DefaultPort      = 3000
	DefaultPublicDir = "public"
	DefaultLogLevel  = "info"
	DefaultEnvFile   = ".env"
)

// AppDir は実行ファイルのあるディレクトリを返します。取得できない場合は "." です。
func AppDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// DefaultDBPath は <実行ファイルのディレクトリ>/data/committees.db を返します。
// 起動時のカレントディレクトリには依存しません。
func DefaultDBPath() string {
	return filepath.Join(AppDir(), "data", "committees.db")
}

// Config はサーバー全体の設定です。
type Config struct {
	Port        int      `mapstructure:"port"`
	DBPath      string   `mapstructure:"db_path"`
	PublicDir   string   `mapstructure:"public_dir"`
	LogLevel    string   `mapstructure:"log_level"`
	LogFormat   string   `mapstructure:"log_format"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	GinMode     string   `mapstructure:"gin_mode"`
}

// Addr は http.Server 用のリッスンアドレスを返します。
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load はフラグ・環境変数・.env ファイルから設定を読み込みます。
// args には os.Args[1:] を渡します。
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("committee-tracker", flag.ContinueOnError)
	fs.Int("port", DefaultPort, "HTTP listen port")
	fs.String("db-path", DefaultDBPath(), "path to the SQLite database file")
	fs.String("public-dir", DefaultPublicDir, "directory holding the dashboard and admin pages")
	fs.String("log-level", DefaultLogLevel, "log level (debug, info, warn, error)")
	envFile := fs.String("env-file", DefaultEnvFile, "optional .env file to load")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// .env が無いのは正常 (本番は環境変数を直接渡す)
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", *envFile, err)
	}

	v := viper.New()
	v.SetDefault("port", DefaultPort)
	v.SetDefault("db_path", fs.Lookup("db-path").DefValue)
	v.SetDefault("public_dir", DefaultPublicDir)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", "text")
	v.SetDefault("cors_origins", "")
	v.SetDefault("gin_mode", "release")

	for key, env := range map[string]string{
		"port":         "PORT",
		"db_path":      "DB_PATH",
		"public_dir":   "PUBLIC_DIR",
		"log_level":    "LOG_LEVEL",
		"log_format":   "LOG_FORMAT",
		"cors_origins": "CORS_ORIGINS",
		"gin_mode":     "GIN_MODE",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	// 明示的に指定されたフラグだけを環境変数より優先させる
	for key, name := range map[string]string{
		"port":       "port",
		"db_path":    "db-path",
		"public_dir": "public-dir",
		"log_level":  "log-level",
	} {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("binding --%s: %w", name, err)
		}
	}

	cfg := &Config{
		Port:      v.GetInt("port"),
		DBPath:    v.GetString("db_path"),
		PublicDir: v.GetString("public_dir"),
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		GinMode:   v.GetString("gin_mode"),
	}
	for _, origin := range strings.Split(v.GetString("cors_origins"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は設定値を検証します。
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("db path must not be empty")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// NewLogger は設定に従ってlogrusのロガーを作成します。
func (c *Config) NewLogger() *log.Logger {
	logger := log.New()
	if level, err := log.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	if c.LogFormat == "json" {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return logger
}
