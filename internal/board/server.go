package board

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Server serves a Store over the dweet HTTP API.
type Server struct {
	store  *Store
	logger *slog.Logger
	mux    *http.ServeMux
}

// NewServer returns a handler for store. A nil logger discards access logs.
func NewServer(store *Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{store: store, logger: logger, mux: http.NewServeMux()}

	s.mux.HandleFunc("POST /dweet/for/{thing}", s.handleDweet)
	s.mux.HandleFunc("GET /dweet/for/{thing}", s.handleDweetQuery)
	s.mux.HandleFunc("GET /get/latest/dweet/for/{thing}", s.handleLatest)
	s.mux.HandleFunc("GET /get/dweets/for/{thing}", s.handleAll)
	s.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeFailed(w, http.StatusNotFound, "we couldn't find this")
	})

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleDweet(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var content map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.UseNumber()
	if err := dec.Decode(&content); err != nil {
		writeFailed(w, http.StatusBadRequest, "the body must be a JSON object")
		return
	}

	s.put(w, r.PathValue("thing"), content)
}

// handleDweetQuery accepts the query-string form of a dweet.
func (s *Server) handleDweetQuery(w http.ResponseWriter, r *http.Request) {
	content := make(map[string]any)
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			content[k] = v[0]
		}
	}
	s.put(w, r.PathValue("thing"), content)
}

func (s *Server) put(w http.ResponseWriter, thing string, content map[string]any) {
	d := s.store.Put(thing, content)
	s.logger.Info("dweet stored", "thing", thing, "entries", len(content), "transaction", d.Transaction)
	writeSucceeded(w, "dweeting", "dweet", d)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	thing := r.PathValue("thing")
	d, ok := s.store.Latest(thing)
	s.logger.Debug("latest dweet requested", "thing", thing, "found", ok)
	if !ok {
		writeFailed(w, http.StatusNotFound, "we couldn't find this")
		return
	}
	writeSucceeded(w, "getting", "dweets", []any{d})
}

func (s *Server) handleAll(w http.ResponseWriter, r *http.Request) {
	thing := r.PathValue("thing")
	all := s.store.All(thing)
	s.logger.Debug("dweets requested", "thing", thing, "count", len(all))
	if len(all) == 0 {
		writeFailed(w, http.StatusNotFound, "we couldn't find this")
		return
	}
	writeSucceeded(w, "getting", "dweets", all)
}

func writeSucceeded(w http.ResponseWriter, by, the string, with any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"this": "succeeded",
		"by":   by,
		"the":  the,
		"with": with,
	})
}

func writeFailed(w http.ResponseWriter, status int, because string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"this":    "failed",
		"with":    status,
		"because": because,
	})
}
