package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"local_mart/config"
	"local_mart/database/handler"
	"local_mart/middleware"
	"local_mart/utils"
)

const readHeaderTimeout = 30 * time.Second

type Server struct {
	chi.Router
	server *http.Server
}

// SetupRoutes builds the router for the whole API.
func SetupRoutes(h *handler.Handler, auth *middleware.Authenticator) *Server {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestLogger)
	router.Use(chimiddleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, struct {
			Status string `json:"status"`
		}{Status: "ok"})
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api", func(api chi.Router) {
		api.Group(PublicRoute(h, auth))
		api.Group(UserRoute(h, auth))
		api.Route("/admin", func(admin chi.Router) {
			admin.Use(auth.Required)
			admin.Use(middleware.AdminMiddleware)
			admin.Group(AdminRoute(h))
		})
	})

	return &Server{
		Router: router,
	}
}

func (srv *Server) Run(cfg config.ServerConfig) error {
	srv.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}
	return srv.server.ListenAndServe()
}

func (srv *Server) Stop(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.server.Shutdown(ctx)
}
