package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/net/html"

	"github.com/trawlerhq/trawler/pkg/logging"
)

// Server serves the board over HTTP.
type Server struct {
	board *Board
	log   *logging.Logger
}

// NewServer creates a dashboard server for the board.
func NewServer(board *Board, log *logging.Logger) *Server {
	return &Server{board: board, log: log}
}

// Handler returns the HTTP handler: an HTML index, a JSON state endpoint,
// and a server-sent change stream.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/api/state", s.handleState)
	r.Get("/api/events", s.handleEvents)

	return r
}

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	if s.log != nil {
		s.log.Infof("dashboard listening on %s", addr)
	}
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.board.State()); err != nil && s.log != nil {
		s.log.Warnf("encoding dashboard state: %v", err)
	}
}

// handleEvents streams one "tick" event per board change so clients refetch
// state only when something actually happened.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")

	changes, cancel := s.board.Watch()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-changes:
			fmt.Fprint(w, "event: tick\ndata: {}\n\n")
			flusher.Flush()
		}
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	state := s.board.State()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<!doctype html><html><head><title>trawler</title></head><body>")
	fmt.Fprint(w, "<h1>trawler</h1>")

	if img, ok := state.Images[0]; ok && img != "" {
		fmt.Fprintf(w, `<img src="data:image/jpeg;base64,%s" alt="latest capture">`, img)
	}

	fmt.Fprint(w, "<h2>Snapshot</h2>")
	if state.MarkupTruncated {
		fmt.Fprint(w, "<p>(truncated)</p>")
	}
	fmt.Fprintf(w, "<pre>%s</pre>", html.EscapeString(state.Markup))

	fmt.Fprint(w, "<h2>Outcomes</h2><ul>")
	for i := len(state.Feed) - 1; i >= 0; i-- {
		entry := state.Feed[i]
		fmt.Fprintf(w, "<li>[%s] %s</li>",
			html.EscapeString(entry.Actor), html.EscapeString(entry.Text))
	}
	fmt.Fprint(w, "</ul></body></html>")
}
