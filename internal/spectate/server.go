package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Server exposes the feeds over HTTP and WebSocket.
type Server struct {
	hub    *Hub
	router *mux.Router
	logger *log.Logger

	mu    sync.RWMutex
	feeds map[string]*Feed
}

// NewServer creates a server with its routes set up. Call Run before
// serving so the hub delivers messages.
func NewServer(logger *log.Logger) *Server {
	s := &Server{
		hub:    NewHub(logger),
		router: mux.NewRouter(),
		logger: logger,
		feeds:  make(map[string]*Feed),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/races", s.handleListRaces).Methods("GET")
	s.router.HandleFunc("/races/{id}", s.handleGetRace).Methods("GET")
	s.router.HandleFunc("/ws/{id}", s.handleWebSocket)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run drives the hub until ctx is done.
func (s *Server) Run(ctx context.Context) { s.hub.Run(ctx) }

// NewFeed registers a race under a fresh ID.
func (s *Server) NewFeed(title string) *Feed {
	f := &Feed{id: uuid.NewString(), hub: s.hub}
	f.view.Race, f.view.Title = f.id, title

	s.mu.Lock()
	s.feeds[f.id] = f
	s.mu.Unlock()
	s.logger.Info("race published", "race", f.id, "title", title)
	return f
}

// Remove unpublishes a race.
func (s *Server) Remove(id string) {
	s.mu.Lock()
	delete(s.feeds, id)
	s.mu.Unlock()
}

func (s *Server) feed(id string) (*Feed, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.feeds[id]
	return f, ok
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("spectator server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("spectate: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("spectate: shutdown: %w", err)
	}
	return nil
}

// RaceSummary is one entry of the race list.
type RaceSummary struct {
	Race  string `json:"race"`
	Title string `json:"title"`
	Mode  string `json:"mode"`
	Moves int    `json:"moves"`
	Won   bool   `json:"won"`
}

func (s *Server) handleListRaces(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	list := make([]RaceSummary, 0, len(s.feeds))
	for _, f := range s.feeds {
		v := f.View()
		list = append(list, RaceSummary{Race: v.Race, Title: v.Title, Mode: v.Mode, Moves: v.Moves, Won: v.Won})
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool { return list[i].Race < list[j].Race })
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetRace(w http.ResponseWriter, r *http.Request) {
	f, ok := s.feed(mux.Vars(r)["id"])
	if !ok {
		s.writeError(w, http.StatusNotFound, "race not found")
		return
	}
	s.writeJSON(w, http.StatusOK, f.View())
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	f, ok := s.feed(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "race not found")
		return
	}
	initial, err := encode(id, EventState, f.View())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "cannot encode race")
		return
	}
	s.hub.ServeWS(w, r, id, initial)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("cannot write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
