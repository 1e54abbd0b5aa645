package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-racetrack/internal/config"
	"github.com/vovakirdan/tui-racetrack/internal/core"
	"github.com/vovakirdan/tui-racetrack/internal/registry"
	"github.com/vovakirdan/tui-racetrack/internal/spectate"
	"github.com/vovakirdan/tui-racetrack/internal/storage"
)

// SSHServer serves hot-seat races over SSH. Every session gets its own
// game; finished races go to the shared results store.
type SSHServer struct {
	config    config.RaceConfig
	server    *ssh.Server
	store     *storage.Store
	spectator *spectate.Server
	logger    *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// spectator may be nil.
func NewSSHServer(cfg config.RaceConfig, store *storage.Store, spectator *spectate.Server, logger *log.Logger) (*SSHServer, error) {
	srv := &SSHServer{
		config:    cfg,
		store:     store,
		spectator: spectator,
		logger:    logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.Server.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".racetrack", "host_key")
	}

	// Ensure host key directory exists
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Server.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.Server.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	rt := core.DefaultConfig()
	rt.ScreenW = pty.Window.Width
	rt.ScreenH = pty.Window.Height

	model := NewSessionModel(SessionOptions{
		Config:    s.config,
		Runtime:   rt,
		Store:     s.store,
		Spectator: s.spectator,
		Logger:    s.logger.With("user", sshSession.User()),
		User:      sshSession.User(),
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Server.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Server.Address
}

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Config    config.RaceConfig
	Runtime   core.RuntimeConfig
	Store     *storage.Store
	Spectator *spectate.Server // may be nil
	Logger    *log.Logger
	User      string
}

// SessionModel manages the full session flow: menu -> race or results -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	opts     SessionOptions
	menu     MenuModel
	race     *Model
	results  *ResultsModel
	feedID   string
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	return SessionModel{
		opts: opts,
		menu: NewMenuModel(opts.Runtime),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch {
	case m.race != nil:
		return m.updateRace(msg)
	case m.results != nil:
		return m.updateResults(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode. The menu quits its own
// program when something is chosen, so that command is swallowed here.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.WantsResults() {
		results := NewResultsModel(m.opts.Store, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		m.results = &results
		return m, results.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		t, err := registry.Create(selected.TrackID)
		if err != nil {
			// Shouldn't happen since menu only shows registered tracks
			m.menu = NewMenuModel(m.opts.Runtime)
			return m, nil
		}

		opts := Options{
			TrackID:   t.ID,
			Title:     t.Title,
			Grid:      t.Grid,
			Direction: t.Direction,
			Edit:      m.menu.WantsEditor(),
			Seats:     m.opts.Config.SeatSetup(),
			Animation: m.opts.Config.Animation,
			Runtime:   m.opts.Runtime,
			Store:     m.opts.Store,
			Logger:    m.opts.Logger,
		}
		if m.opts.Spectator != nil && !opts.Edit {
			feed := m.opts.Spectator.NewFeed(fmt.Sprintf("%s on %s", m.opts.User, t.Title))
			m.feedID = feed.ID()
			opts.Notifier = feed
		}
		m.opts.Logger.Info("race started", "track", t.ID, "edit", opts.Edit)

		model := NewModel(opts)
		m.race = &model
		return m, model.Init()
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// updateRace handles updates while a race or the editor is open.
func (m SessionModel) updateRace(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.race.Update(msg)
	if raceModel, ok := newModel.(Model); ok {
		m.race = &raceModel
	}

	if m.race.IsQuitting() {
		m.closeFeed()
		m.quitting = true
		return m, tea.Quit
	}

	if m.race.BackToMenu() {
		m.closeFeed()
		m.race = nil
		m.menu = NewMenuModel(m.opts.Runtime)
		return m, m.menu.Init()
	}
	return m, cmd
}

// updateResults handles updates while the results table is open.
func (m SessionModel) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.results.Update(msg)
	if resultsModel, ok := newModel.(ResultsModel); ok {
		m.results = &resultsModel
	}

	if m.results.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.results.IsGoingBack() {
		m.results = nil
		m.menu = NewMenuModel(m.opts.Runtime)
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m *SessionModel) closeFeed() {
	if m.feedID != "" && m.opts.Spectator != nil {
		m.opts.Spectator.Remove(m.feedID)
	}
	m.feedID = ""
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch {
	case m.race != nil:
		return m.race.View()
	case m.results != nil:
		return m.results.View()
	}
	return m.menu.View()
}
