package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/taskboard-demo/modules/api"
	"github.com/example/taskboard-demo/modules/auth"
	"github.com/example/taskboard-demo/modules/cache"
	"github.com/example/taskboard-demo/modules/tasks"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	httpPort := getEnvInt("TASKBOARD_HTTP_PORT", 3000)
	redisAddr := os.Getenv("TASKBOARD_REDIS_ADDR")
	cacheTTL := getEnvDuration("TASKBOARD_CACHE_TTL", 5*time.Minute)

	log.Println("=== Taskboard ===")

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	authModule := auth.NewModule()
	tasksModule := tasks.NewModule()
	apiModule := api.NewModule(httpPort)

	// The list cache is optional: no Redis address, no cache module.
	var cacheModule *cache.Module
	if redisAddr != "" {
		cacheModule = cache.NewModule(redisAddr, cacheTTL)
		app.Register(cacheModule)
	}

	// Order: independent modules first, then dependent modules
	app.Register(authModule)
	app.Register(tasksModule)
	app.Register(apiModule)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	if cacheModule != nil {
		tasksModule.SetCache(cacheModule.GetCache())
	}

	printStartupInfo(httpPort, redisAddr)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(port int, redisAddr string) {
	log.Println("")
	log.Println("Application started successfully!")
	if redisAddr != "" {
		log.Printf("Task list cache enabled (Redis: %s)", redisAddr)
	}
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", port)
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /auth/register  - Register a new user")
	log.Println("  POST   /auth/login     - Login and get tokens")
	log.Println("  POST   /auth/refresh   - Refresh access token")
	log.Println("  GET    /health         - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /tags           - List tags (name ascending)")
	log.Println("  POST   /tags           - Create a tag")
	log.Println("  GET    /tasks          - List tasks (query: search, completed)")
	log.Println("  POST   /tasks          - Create a task")
	log.Println("  PUT    /tasks          - Update a task (partial)")
	log.Println("  DELETE /tasks?id=      - Delete a task")
	log.Println("  GET    /tasks/stats    - Aggregate task statistics")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
