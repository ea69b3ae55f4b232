// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	CHECK_TIMEOUT = 2 * time.Second
)

// Check reports whether a dependency of the gateway is usable.
type Check func(ctx context.Context) error

// Handler returns ok when every check passes and 503 with the failing checks otherwise.
func Handler(checks map[string]Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), CHECK_TIMEOUT)
		defer cancel()

		failed := make(map[string]string)
		for name, check := range checks {
			if err := check(ctx); err != nil {
				failed[name] = err.Error()
			}
		}

		if len(failed) == 0 {
			_, _ = w.Write([]byte("ok"))
			return
		}

		names := make([]string, 0, len(failed))
		for name := range failed {
			names = append(names, name)
		}
		sort.Strings(names)
		log.Warn().Strs("checks", names).Msg("Health check failed")

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(failed)
	}
}

// StartHealthEndpoint starts /health endpoint on provided port and stops it once ctx is done
func StartHealthEndpoint(ctx context.Context, port uint16, checks map[string]Check) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", Handler(checks))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	log.Info().Msgf("Starting /health endpoint on port %d", port)
	err := srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Err(err).Msgf("Failed starting health server")
	}
}
