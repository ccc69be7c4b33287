package rest

import (
	"log/slog"
	"net/http"
)

type healthHandlers struct {
	logger *slog.Logger
}

// ping answers liveness checks.
func (that *healthHandlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write ping response", "error", err)
	}
}

func (that *healthHandlers) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"ok":true}`)); err != nil {
		that.logger.Error("failed to write health response", "error", err)
	}
}
