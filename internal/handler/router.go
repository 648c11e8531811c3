package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chathandler "github.com/MohamedRasheqA/teachback/internal/handler/chat"
	logshandler "github.com/MohamedRasheqA/teachback/internal/handler/logs"
	settingshandler "github.com/MohamedRasheqA/teachback/internal/handler/settings"
	speechhandler "github.com/MohamedRasheqA/teachback/internal/handler/speech"
	tracehandler "github.com/MohamedRasheqA/teachback/internal/handler/trace"
	middlewarePkg "github.com/MohamedRasheqA/teachback/internal/middleware"
	"github.com/MohamedRasheqA/teachback/pkg/utils"
)

// Pinger reports whether the relational store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps bundles the constructed handlers wired by the process entry point.
type Deps struct {
	Chat     *chathandler.Handler
	Settings *settingshandler.Handler
	Logs     *logshandler.Handler
	Speech   *speechhandler.Handler
	Trace    *tracehandler.Handler
	DB       Pinger
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		deps.Chat.RegisterRoutes(api)
		deps.Settings.RegisterRoutes(api)
		deps.Logs.RegisterRoutes(api)
		deps.Speech.RegisterRoutes(api)
		deps.Trace.RegisterRoutes(api)

		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			if deps.DB != nil {
				if err := deps.DB.Ping(r.Context()); err != nil {
					utils.RespondError(w, http.StatusServiceUnavailable, "database unreachable")
					return
				}
			}
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}
