package main

import (
    "log"
    "net/http"

    "loanms-go/config"
    "loanms-go/database"
    "loanms-go/handlers"
    "loanms-go/middleware"
    "loanms-go/utils"

    "github.com/joho/godotenv"
)

func main() {
    // Load environment variables
    if err := godotenv.Load(); err != nil {
        log.Println("No .env file found")
    }

    cfg := config.Load()
    config.ValidateConfig(cfg)

    if err := utils.InitializeJWT(cfg.JWTSecret); err != nil {
        log.Fatal("Failed to initialize JWT:", err)
    }

    db, err := database.Initialize(cfg.DatabaseURL)
    if err != nil {
        log.Fatal("Failed to initialize database:", err)
    }

    if err := database.Seed(db, cfg); err != nil {
        log.Fatal("Failed to seed database:", err)
    }

    h := handlers.NewHandlers(db, cfg)
    r := handlers.NewRouter(h)

    // Apply global middleware
    r.Use(middleware.CORS)
    r.Use(middleware.RateLimit)

    port := cfg.Port
    if port == "" {
        port = "8080"
    }

    log.Printf("Server starting on port %s", port)
    log.Printf("Environment: %s", cfg.Environment)
    log.Fatal(http.ListenAndServe(":"+port, r))
}
