package httpadapter

import (
    "encoding/json"
    "errors"
    "net/http"

    "github.com/go-chi/chi/v5"

    "sitevet/internal/dispatch"
    "sitevet/internal/services/siteinfo"
)

// Server exposes the inbound query surface over HTTP. Everything routes
// through the dispatcher so HTTP traffic interleaves with timers and
// navigation events instead of racing them.
type Server struct {
    dispatcher *dispatch.Dispatcher
}

func New(d *dispatch.Dispatcher) *Server { return &Server{dispatcher: d} }

func (s *Server) Routes() chi.Router {
    r := chi.NewRouter()
    r.Get("/healthz", s.getHealthz)
    r.Get("/siteinfo", s.getSiteInfo)
    r.Post("/refresh", s.postRefresh)
    return r
}

func (s *Server) getHealthz(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getSiteInfo(w http.ResponseWriter, r *http.Request) {
    rawurl := r.URL.Query().Get("url")
    if rawurl == "" {
        writeError(w, http.StatusBadRequest, "missing url parameter")
        return
    }
    info, err := s.dispatcher.Query(r.Context(), rawurl)
    if errors.Is(err, siteinfo.ErrBadURL) {
        writeError(w, http.StatusBadRequest, err.Error())
        return
    }
    if err != nil {
        writeError(w, http.StatusInternalServerError, err.Error())
        return
    }
    writeJSON(w, http.StatusOK, info)
}

// postRefresh nudges the synchronizer the same way a timer fire would. The
// TTL still applies; this does not force a fetch of a fresh cache.
func (s *Server) postRefresh(w http.ResponseWriter, r *http.Request) {
    s.dispatcher.Post(dispatch.TimerFired{Name: "manual"})
    w.WriteHeader(http.StatusAccepted)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(code)
    _ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
    writeJSON(w, code, map[string]string{"error": msg})
}
