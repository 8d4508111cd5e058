package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/floralab/bloombot/internal/dispatch"
	"github.com/floralab/bloombot/internal/handler/bot"
	"github.com/floralab/bloombot/internal/handler/webapp"
	middlewarePkg "github.com/floralab/bloombot/internal/middleware"
	"github.com/floralab/bloombot/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(dispatcher *dispatch.Dispatcher, cat webapp.Catalog) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	botHandler := bot.New(dispatcher)
	wsHandler := bot.NewWebSocketHandler(dispatcher)
	webappHandler := webapp.New(cat)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	botHandler.RegisterRoutes(r)
	wsHandler.RegisterRoutes(r)

	r.Route("/api", func(api chi.Router) {
		webappHandler.RegisterRoutes(api)
	})

	return r
}
