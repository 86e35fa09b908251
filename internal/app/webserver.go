package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/osintgrid/osintgrid/internal/ctxlog"
	"github.com/osintgrid/osintgrid/internal/entity"
)

// serve runs the entity service until ctx is cancelled. The service is a thin
// veneer over the registry: it lists entities, compiles blueprints, and
// forwards transform dispatches. Retry, rate limiting, and auth are the
// reverse proxy's problem, not this process's.
func (a *App) serve(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: a.buildMux(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	a.logger.Info("🧭 Entity service starting", "address", fmt.Sprintf("http://localhost:%d", port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// buildMux wires the service routes. Split out from serve so tests can hit
// the handlers through httptest without binding a port.
func (a *App) buildMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", a.healthHandler)
	mux.HandleFunc("GET /entities", a.entitiesHandler)
	mux.HandleFunc("GET /entities/{label}/blueprint", a.blueprintHandler)
	mux.HandleFunc("POST /transforms", a.transformHandler)
	return mux
}

// healthHandler reports liveness.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// entitiesHandler lists the UI-visible metadata of available entities.
func (a *App) entitiesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.registry.UILabels())
}

// blueprintHandler compiles and returns the named entity's blueprint.
func (a *App) blueprintHandler(w http.ResponseWriter, r *http.Request) {
	label := r.PathValue("label")
	desc, ok := a.registry.Lookup(label)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "entity not found"})
		return
	}

	bp, err := entity.Compile(desc, nil)
	if err != nil {
		a.logger.Error("Blueprint compile failed", "entity", label, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, bp)
}

// transformHandler dispatches the transform named on an incoming graph node
// and returns the produced records. An unknown transform is an empty result,
// not an error; a handler failure surfaces as a 500 with the error text.
func (a *App) transformHandler(w http.ResponseWriter, r *http.Request) {
	var node entity.GraphNode
	if err := json.NewDecoder(r.Body).Decode(&node); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("malformed graph node: %s", err)})
		return
	}

	desc, ok := a.registry.Lookup(node.Data.Label)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "entity not found"})
		return
	}

	ctx := ctxlog.WithLogger(r.Context(), a.logger)
	records, err := desc.RunTransform(ctx, node.Transform, &node, &entity.Use{Settings: map[string]any{}})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if records == nil {
		records = []entity.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
