package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-gateway/admission"
	"github.com/sprintertech/sprinter-gateway/api/handlers"
)

type Handlers struct {
	Agent      *handlers.AgentHandler
	Monitor    *handlers.MonitorHandler
	Paid       *handlers.PaidHandler
	Strategies *handlers.StrategiesHandler
	Listings   *handlers.ListingsHandler
}

// NewRouter wires every route behind the admission controller. Routes that
// mutate state or proxy to paid upstream services require the API key.
func NewRouter(admit *admission.Controller, h Handlers) *mux.Router {
	r := mux.NewRouter()

	public := func(endpoint string, handler http.HandlerFunc) http.Handler {
		return admit.Middleware(endpoint, false)(handler)
	}
	private := func(endpoint string, handler http.HandlerFunc) http.Handler {
		return admit.Middleware(endpoint, true)(handler)
	}

	r.Handle("/agent", public("agent", h.Agent.HandleAgent)).Methods("POST")
	r.Handle("/agent/monitor", public("monitor", h.Monitor.HandleMonitor)).Methods("GET")
	r.Handle("/agent/paid", private("paid", h.Paid.HandlePaid)).Methods("POST")

	r.Handle("/strategies/{name}", public("strategies", h.Strategies.HandlePricing)).Methods("GET")
	r.Handle("/strategies/{name}", public("strategies", h.Strategies.HandleStrategies)).Methods("POST")

	r.Handle("/listings", public("listings", h.Listings.HandleDiscover)).Methods("GET")
	r.Handle("/listings/leaderboard", public("listings", h.Listings.HandleLeaderboard)).Methods("GET")
	r.Handle("/listings/{id}", public("listings", h.Listings.HandleGet)).Methods("GET")
	r.Handle("/listings", private("listings-admin", h.Listings.HandleRegister)).Methods("POST")
	r.Handle("/listings/{id}/executions", private("listings-admin", h.Listings.HandleExecution)).Methods("POST")
	r.Handle("/listings/{id}/verification", private("listings-admin", h.Listings.HandleVerification)).Methods("PUT")

	return r
}

// Serve runs the API server until ctx is done and then shuts it down gracefully.
// Write timeouts are left unset so event streams can stay open.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       time.Second * 10,
		ReadHeaderTimeout: time.Second * 2,
		IdleTimeout:       time.Second * 60,
	}

	errChn := make(chan error, 1)
	go func() {
		log.Info().Msgf("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChn <- err
		}
	}()

	select {
	case err := <-errChn:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		log.Err(err).Msgf("Error shutting down server")
	} else {
		log.Info().Msgf("Server shut down gracefully.")
	}
	return nil
}
