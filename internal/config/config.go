package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// DriverSQLite 使用本地 sqlite 文件作为存储。
	DriverSQLite = "sqlite"
	// DriverPostgres 使用 DATABASE_DSN 指向的 PostgreSQL。
	DriverPostgres = "postgres"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr       string
	Port             string
	GinMode          string
	DatabaseDriver   string
	DatabasePath     string
	DatabaseDSN      string
	JWTSecret        string
	JWTExpiresIn     time.Duration
	AuthCookieSecure bool
	SessionSecret    string
	UploadDir        string
	UploadURLPath    string
	UploadMaxBytes   int64
	CORSAllowOrigins []string
	DisabledModules  []string
	LogLevel         string
	LogFormat        string
	ContactThrottle  time.Duration

	SuperRootUserName string
	SuperRootPassword string
	SuperRootEmail    string
}

var defaults = map[string]any{
	"PORT":               "8080",
	"GIN_MODE":           "release",
	"DATABASE_DRIVER":    DriverSQLite,
	"DATABASE_PATH":      "corpsite.db",
	"DATABASE_DSN":       "",
	"JWT_SECRET":         "corpsite-dev-secret",
	"JWT_EXPIRES_IN":     "24h",
	"AUTH_COOKIE_SECURE": false,
	"SESSION_SECRET":     "corpsite-session-secret",
	"UPLOAD_DIR":         "web/static/uploads",
	"UPLOAD_URL_PATH":    "/static/uploads",
	"UPLOAD_MAX_BYTES":   int64(20 << 20),
	"CORS_ALLOW_ORIGINS": "*",
	"DISABLED_MODULES":   "",
	"LOG_LEVEL":          "info",
	"LOG_FORMAT":         "json",
	"CONTACT_THROTTLE":   "30s",
}

// Load 从 .env 与环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	// .env 不存在时直接使用进程环境
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) AppConfig {
	port := trimmed(v, "PORT")
	if port == "" {
		port = "8080"
	}

	listenAddr := trimmed(v, "LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	driver := strings.ToLower(trimmed(v, "DATABASE_DRIVER"))
	if driver != DriverPostgres {
		driver = DriverSQLite
	}

	jwtTTL := v.GetDuration("JWT_EXPIRES_IN")
	if jwtTTL <= 0 {
		jwtTTL = 24 * time.Hour
	}

	maxBytes := v.GetInt64("UPLOAD_MAX_BYTES")
	if maxBytes <= 0 {
		maxBytes = 20 << 20
	}

	throttle := v.GetDuration("CONTACT_THROTTLE")
	if throttle < 0 {
		throttle = 0
	}

	logFormat := strings.ToLower(trimmed(v, "LOG_FORMAT"))
	if logFormat != "console" {
		logFormat = "json"
	}

	return AppConfig{
		ListenAddr:        listenAddr,
		Port:              port,
		GinMode:           orDefault(trimmed(v, "GIN_MODE"), "release"),
		DatabaseDriver:    driver,
		DatabasePath:      orDefault(trimmed(v, "DATABASE_PATH"), "corpsite.db"),
		DatabaseDSN:       trimmed(v, "DATABASE_DSN"),
		JWTSecret:         orDefault(trimmed(v, "JWT_SECRET"), "corpsite-dev-secret"),
		JWTExpiresIn:      jwtTTL,
		AuthCookieSecure:  v.GetBool("AUTH_COOKIE_SECURE"),
		SessionSecret:     orDefault(trimmed(v, "SESSION_SECRET"), "corpsite-session-secret"),
		UploadDir:         orDefault(trimmed(v, "UPLOAD_DIR"), "web/static/uploads"),
		UploadURLPath:     orDefault(trimmed(v, "UPLOAD_URL_PATH"), "/static/uploads"),
		UploadMaxBytes:    maxBytes,
		CORSAllowOrigins:  splitList(v.GetString("CORS_ALLOW_ORIGINS")),
		DisabledModules:   splitList(strings.ToLower(v.GetString("DISABLED_MODULES"))),
		LogLevel:          strings.ToLower(orDefault(trimmed(v, "LOG_LEVEL"), "info")),
		LogFormat:         logFormat,
		ContactThrottle:   throttle,
		SuperRootUserName: trimmed(v, "SUPER_ROOT_USER_NAME"),
		SuperRootPassword: trimmed(v, "SUPER_ROOT_PASSWORD"),
		SuperRootEmail:    trimmed(v, "SUPER_ROOT_EMAIL"),
	}
}

// ModuleEnabled 判断模块是否未被 DISABLED_MODULES 关闭。
func (c AppConfig) ModuleEnabled(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, disabled := range c.DisabledModules {
		if disabled == name {
			return false
		}
	}
	return true
}

func trimmed(v *viper.Viper, key string) string {
	return strings.TrimSpace(v.GetString(key))
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
