package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/coach-lambda/internal/auth"
	"github.com/saulo-duarte/coach-lambda/internal/chat"
	_ "github.com/saulo-duarte/coach-lambda/internal/docs"
	"github.com/saulo-duarte/coach-lambda/internal/goal"
	"github.com/saulo-duarte/coach-lambda/internal/middlewares"
	"github.com/saulo-duarte/coach-lambda/internal/reflection"
	"github.com/saulo-duarte/coach-lambda/internal/settings"
	"github.com/saulo-duarte/coach-lambda/internal/stats"
	"github.com/saulo-duarte/coach-lambda/internal/task"
)

type RouterConfig struct {
	AllowedOrigins    []string
	DefaultUserID     string
	ChatHandler       *chat.Handler
	GoalHandler       *goal.Handler
	SettingsHandler   *settings.Handler
	TaskHandler       *task.Handler
	ReflectionHandler *reflection.Handler
	StatsHandler      *stats.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.Cors(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Group(func(r chi.Router) {
		r.Use(auth.UserScope(cfg.DefaultUserID))

		r.Route("/api", func(r chi.Router) {
			r.Mount("/chat", chat.Routes(cfg.ChatHandler))
			r.Post("/generate-tasks", cfg.TaskHandler.GenerateTasks)
			r.Post("/goals", cfg.GoalHandler.AdoptGoals)
		})

		r.Mount("/goals", goal.Routes(cfg.GoalHandler))
		r.Mount("/settings", settings.Routes(cfg.SettingsHandler))
		r.Mount("/tasks", task.Routes(cfg.TaskHandler))
		r.Mount("/reflections", reflection.Routes(cfg.ReflectionHandler))
		r.Mount("/stats", stats.Routes(cfg.StatsHandler))
	})
	return r
}
