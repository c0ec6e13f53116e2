package config

import (
    "fmt"
    "os"
    "time"

    "github.com/joho/godotenv"
)

type Config struct {
    Env        string
    ListenAddr string

    // Slot storage: Postgres when DATABASE_URL is set, embedded leveldb
    // under DataDir otherwise.
    DatabaseURL string
    DataDir     string

    ListURL    string
    ListAPIKey string
    UserAgent  string
    ListTTL    time.Duration

    RefreshEvery time.Duration
    RefreshDelay time.Duration

    AuthURL         string
    AuthClientID    string
    AuthRedirectURL string
    AuthTimeout     time.Duration
}

func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
    if v := os.Getenv(key); v != "" {
        if d, err := time.ParseDuration(v); err == nil { return d }
    }
    return def
}

func Load() (Config, error) {
    _ = godotenv.Load()

    cfg := Config{
        Env:         getenv("APP_ENV", "development"),
        ListenAddr:  getenv("LISTEN_ADDR", ":8080"),
        DatabaseURL: os.Getenv("DATABASE_URL"),
        DataDir:     getenv("DATA_DIR", "./data"),

        ListURL:    os.Getenv("LIST_URL"),
        ListAPIKey: os.Getenv("LIST_API_KEY"),
        UserAgent:  getenv("USER_AGENT", "sitevet/1.0"),
        ListTTL:    getenvDuration("LIST_TTL", 24*time.Hour),

        RefreshEvery: getenvDuration("REFRESH_EVERY", time.Hour),
        RefreshDelay: getenvDuration("REFRESH_DELAY", 10*time.Second),

        AuthURL:         os.Getenv("AUTH_URL"),
        AuthClientID:    os.Getenv("AUTH_CLIENT_ID"),
        AuthRedirectURL: getenv("AUTH_REDIRECT_URL", "http://127.0.0.1:8917/oauth/callback"),
        AuthTimeout:     getenvDuration("AUTH_TIMEOUT", 2*time.Minute),
    }
    if cfg.ListURL == "" {
        return cfg, fmt.Errorf("LIST_URL not set")
    }
    return cfg, nil
}
