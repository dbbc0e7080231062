package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var DefaultCourts = []string{"Front Left", "Front Right", "Back"}

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL       string
	JWTSecretKey      string
	AdminPasswordHash string
	ServerPort        int

	DefaultCourts         []string
	CORSAllowedOrigins    []string
	PublicRefreshInterval time.Duration

	R2 *R2Config // nil when summary archiving is disabled
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

// Load reads the configuration from the environment.
// A .env file is loaded first when present (useful for local development).
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so it can be tested without touching the process env.
func FromEnv(getenv func(string) string) (*Config, error) {
	dbURL := getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	adminHash := getenv("ADMIN_PASSWORD_HASH")
	if adminHash == "" {
		plain := getenv("ADMIN_PASSWORD")
		if plain == "" {
			return nil, fmt.Errorf("either ADMIN_PASSWORD_HASH or ADMIN_PASSWORD must be set")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash ADMIN_PASSWORD: %w", err)
		}
		adminHash = string(hashed)
	} else if _, err := bcrypt.Cost([]byte(adminHash)); err != nil {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is not a bcrypt hash: %w", err)
	}

	portStr := getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	courts := splitList(getenv("DEFAULT_COURTS"))
	if len(courts) == 0 {
		courts = append([]string(nil), DefaultCourts...)
	}

	origins := splitList(getenv("CORS_ALLOWED_ORIGINS"))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	refresh := 10 * time.Second
	if v := getenv("PUBLIC_REFRESH_INTERVAL"); v != "" {
		refresh, err = time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PUBLIC_REFRESH_INTERVAL: %w", err)
		}
		if refresh <= 0 {
			return nil, fmt.Errorf("PUBLIC_REFRESH_INTERVAL must be positive, got %s", refresh)
		}
	}

	r2, err := loadR2(getenv)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:           dbURL,
		JWTSecretKey:          jwtKey,
		AdminPasswordHash:     adminHash,
		ServerPort:            port,
		DefaultCourts:         courts,
		CORSAllowedOrigins:    origins,
		PublicRefreshInterval: refresh,
		R2:                    r2,
	}

	return cfg, nil
}

// loadR2 is all-or-nothing: either every R2_* variable is set or none is.
func loadR2(getenv func(string) string) (*R2Config, error) {
	r2 := R2Config{
		AccountID:       getenv("R2_ACCOUNT_ID"),
		AccessKeyID:     getenv("R2_ACCESS_KEY_ID"),
		SecretAccessKey: getenv("R2_SECRET_ACCESS_KEY"),
		BucketName:      getenv("R2_BUCKET_NAME"),
		PublicBaseURL:   getenv("R2_PUBLIC_BASE_URL"),
	}
	fields := []string{r2.AccountID, r2.AccessKeyID, r2.SecretAccessKey, r2.BucketName, r2.PublicBaseURL}

	set := 0
	for _, f := range fields {
		if f != "" {
			set++
		}
	}
	switch set {
	case 0:
		return nil, nil
	case len(fields):
		return &r2, nil
	default:
		return nil, errors.New("R2 storage is partially configured: set all of R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_BUCKET_NAME, R2_PUBLIC_BASE_URL or none")
	}
}

func splitList(v string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
