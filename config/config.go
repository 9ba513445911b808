package config

import (
    "log"
    "os"
)

type Config struct {
    DatabaseURL   string
    JWTSecret     string
    Port          string
    Environment   string
    AdminEmail    string
    AdminPassword string
}

func Load() *Config {
    return &Config{
        DatabaseURL:   getEnv("DATABASE_URL", "loanms.db"),
        JWTSecret:     getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
        Port:          getEnv("PORT", "8080"),
        Environment:   getEnv("ENVIRONMENT", "development"),
        AdminEmail:    getEnv("ADMIN_EMAIL", "admin@loanms.com"),
        AdminPassword: getEnv("ADMIN_PASSWORD", "Admin@123"),
    }
}

func getEnv(key, defaultValue string) string {
    if value := os.Getenv(key); value != "" {
        return value
    }
    return defaultValue
}

func ValidateConfig(cfg *Config) {
    if len(cfg.JWTSecret) < 32 {
        log.Printf("WARNING: JWT_SECRET should be at least 32 characters for security")
    }
    if cfg.Environment == "production" && cfg.AdminPassword == "Admin@123" {
        log.Printf("WARNING: Change ADMIN_PASSWORD in production environment")
    }
}
