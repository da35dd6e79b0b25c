package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/planday/backend/api/handler"
)

type Handlers struct {
	Auth       *apiHandler.AuthHandler
	Task       *apiHandler.TaskHandler
	Preference *apiHandler.PreferenceHandler
	Schedule   *apiHandler.ScheduleHandler
	Ingest     *apiHandler.IngestHandler
	Health     *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/refresh", handlers.Auth.Refresh)

	// Protected routes
	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.GET("/api/v1/tasks/{id}", authMiddleware(handlers.Task.GetTask))
	r.PATCH("/api/v1/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))

	r.GET("/api/v1/users/me", authMiddleware(handlers.Auth.Me))
	r.GET("/api/v1/users/preferences", authMiddleware(handlers.Preference.Get))
	r.PATCH("/api/v1/users/preferences", authMiddleware(handlers.Preference.Update))

	r.POST("/api/v1/schedule/generate", authMiddleware(handlers.Schedule.Generate))
	r.GET("/api/v1/schedule/{date}", authMiddleware(handlers.Schedule.Get))
	r.POST("/api/v1/schedule/{id}/adjust", authMiddleware(handlers.Schedule.Adjust))

	r.POST("/api/v1/ingest/text", authMiddleware(handlers.Ingest.IngestText))
	r.GET("/api/v1/notes", authMiddleware(handlers.Ingest.ListNotes))
	r.GET("/api/v1/notes/{id}", authMiddleware(handlers.Ingest.GetNote))
	r.DELETE("/api/v1/notes/{id}", authMiddleware(handlers.Ingest.DeleteNote))

	return r
}
