package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	handlers "github.com/gws-tools/scubacfg/pkg/handlers/session"
	scubamiddleware "github.com/gws-tools/scubacfg/pkg/server/middleware"
	"github.com/gws-tools/scubacfg/pkg/services/catalog"
	"github.com/gws-tools/scubacfg/pkg/services/profiles"
	"github.com/gws-tools/scubacfg/pkg/services/session"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
}

type Dependencies struct {
	Sessions session.Store
	Catalog  catalog.Registry
	Profiles profiles.Registry
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	h := handlers.NewHandler(
		config.Dependencies.Sessions,
		config.Dependencies.Catalog,
		config.Dependencies.Profiles,
	)

	router := chi.NewRouter()

	router.Use(scubamiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/baselines", h.ListBaselines)
		r.Get("/baselines/{baseline}/policies", h.ListPolicies)

		r.Post("/sessions", h.CreateSession)
		r.Route("/sessions/{session}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Put("/organization", h.SetOrganization)
			r.Put("/products", h.SetProducts)
			r.Put("/omissions", h.PutOmission)
			r.Delete("/omissions/{policy}", h.DeleteOmission)
			r.Put("/annotations", h.PutAnnotation)
			r.Delete("/annotations/{policy}", h.DeleteAnnotation)
			r.Put("/breakglass", h.PutBreakGlass)
			r.Delete("/breakglass/{email}", h.DeleteBreakGlass)
			r.Put("/output", h.SetOutput)
			r.Put("/auth", h.SetAuth)
			r.Put("/auth/profiles/{profile}", h.ApplyAuthProfile)
			r.Post("/validate", h.Validate)
			r.Get("/export", h.Export)
			r.Post("/import", h.Import)
		})
	})

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

// Router exposes the configured mux, mainly for tests.
func (w *WebAPI) Router() http.Handler {
	return w.router
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
