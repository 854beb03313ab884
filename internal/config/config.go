package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	// client side
	APIURL      string
	Host        string
	TokenStore  string
	TokenFile   string
	HTTPTimeout time.Duration

	// shared backends
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	RedisPrefix string
	MySQLDSN    string

	// mock API server
	ServerPort        string
	JWTSecret         string
	AccessTokenExpiry time.Duration
	AdminName         string
	AdminEmail        string
	AdminPassword     string
	SwaggerHost       string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		APIURL:      strings.TrimSpace(os.Getenv("JOBBOARD_API_URL")),
		Host:        strings.TrimSpace(os.Getenv("JOBBOARD_HOST")),
		TokenStore:  getEnv("TOKEN_STORE", "file"),
		TokenFile:   os.Getenv("TOKEN_FILE"),
		HTTPTimeout: time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,

		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		RedisPrefix: getEnv("REDIS_PREFIX", "greenjobs:"),
		MySQLDSN:    getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/greenjobs?charset=utf8mb4&parseTime=True&loc=Local"),

		ServerPort:        getEnv("SERVER_PORT", "8000"),
		JWTSecret:         getEnv("JWT_SECRET", "change-me-secret"),
		AccessTokenExpiry: time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60)) * time.Minute,
		AdminName:         getEnv("ADMIN_NAME", "Platform Admin"),
		AdminEmail:        getEnv("ADMIN_EMAIL", "admin@greenjobs.example.com"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", "password123"),
		SwaggerHost:       os.Getenv("SWAGGER_HOST"),
	}
}

// ContainerFrontendHost is the host name the web client runs under in the
// compose deployment. Its API lives on ContainerBackendHost.
const (
	ContainerFrontendHost = "frontend"
	ContainerBackendHost  = "backend"
	defaultAPIPort        = "8000"
)

// ResolveBaseURL picks the API base address. An explicit override wins.
// Otherwise the address is derived from host: the compose frontend talks
// to the backend container, an empty host means localhost.
func ResolveBaseURL(override, host string) string {
	if o := strings.TrimRight(strings.TrimSpace(override), "/"); o != "" {
		return o
	}
	host = strings.TrimSpace(host)
	switch host {
	case "":
		host = "localhost"
	case ContainerFrontendHost:
		host = ContainerBackendHost
	}
	return "http://" + host + ":" + defaultAPIPort + "/api"
}

// BaseURL resolves the API address from c, falling back to the machine's
// host name when no host is configured.
func (c *Config) BaseURL() string {
	host := c.Host
	if host == "" && c.APIURL == "" {
		if h, err := os.Hostname(); err == nil && h == ContainerFrontendHost {
			host = h
		}
	}
	return ResolveBaseURL(c.APIURL, host)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
