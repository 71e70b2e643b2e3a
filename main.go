package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/todo-app/modules/api"
	"github.com/example/todo-app/modules/listview"
	"github.com/example/todo-app/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	// Configuration from environment
	taskStore := getEnv("TASK_STORE", task.StoreSQLite)
	dbPath := getEnv("DB_PATH", "tasks.db")
	dbDebug := getEnvBool("DB_DEBUG", false)
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	redisPrefix := getEnv("REDIS_PREFIX", "todo:")
	databaseURL := getEnv("DATABASE_URL", "")
	seedSample := getEnvBool("SEED_SAMPLE", false)
	httpAddr := getEnv("HTTP_ADDR", ":3000")
	allowedOrigins := getEnv("CORS_ALLOWED_ORIGINS", "")
	accessLog := getEnvBool("ACCESS_LOG", true)

	shutdownTimeout, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "30s"))
	if err != nil {
		log.Fatalf("Invalid SHUTDOWN_TIMEOUT: %v", err)
	}

	logLevel := mono.LogLevelInfo
	if getEnv("LOG_LEVEL", "info") == "error" {
		logLevel = mono.LogLevelError
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(logLevel),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	logger := app.Logger()

	// Order: the core first, then modules with dependencies
	app.Register(task.NewModule(task.Config{
		Store:       taskStore,
		DBPath:      dbPath,
		DBDebug:     dbDebug,
		RedisAddr:   redisAddr,
		RedisPrefix: redisPrefix,
		DatabaseURL: databaseURL,
		SeedSample:  seedSample,
	}, logger.WithModule("task")))
	app.Register(listview.NewModule(logger.WithModule("listview")))
	app.Register(api.NewModule(api.Config{
		Addr:           httpAddr,
		AllowedOrigins: allowedOrigins,
		AccessLog:      accessLog,
	}, logger.WithModule("api")))

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	logger.Info("Todo app started",
		"store", taskStore,
		"addr", httpAddr,
		"seeded", seedSample)
	logger.Info("REST API endpoints",
		"list", "GET /api/v1/tasks?category=&search=&sort=",
		"create", "POST /api/v1/tasks",
		"toggle", "POST /api/v1/tasks/:id/toggle",
		"edit", "PUT /api/v1/tasks/:id",
		"delete", "DELETE /api/v1/tasks/:id",
		"deletePositions", "POST /api/v1/tasks/delete-positions",
		"changes", "GET /ws/changes (websocket)")
	logger.Info("Press Ctrl+C to shutdown gracefully")

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				logger.Info("Graceful shutdown initiated")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	logger.Info("Application exited", "code", exitCode)
	os.Exit(exitCode)
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return value
}
