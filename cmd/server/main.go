package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/ccspalanca/BuntasPalanca-PREFINAL/internal/config"
	"github.com/ccspalanca/BuntasPalanca-PREFINAL/internal/memory"
	"github.com/ccspalanca/BuntasPalanca-PREFINAL/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

var cleanupWg sync.WaitGroup

func main() {
	// 1. Config
	cfg := config.Load()
	log.SetLevel(cfg.Level())

	timings := memory.Timings{
		PreRoll:      cfg.PreRoll,
		Highlight:    cfg.Highlight,
		Gap:          cfg.Gap,
		FailFlash:    cfg.FailFlash,
		RestartDelay: cfg.RestartDelay,
	}

	// 2. Setup SSH
	s, err := wish.NewServer(
		wish.WithAddress(cfg.Addr()),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithMiddleware(
			bm.Middleware(teaHandler(timings)),
			logging.Middleware(),
			activeterm.Middleware(),
		),
	)
	if err != nil {
		log.Fatal("Could not create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	log.Info("Starting Server", "host", cfg.Host, "port", cfg.Port)

	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Listen Error", "err", err)
			done <- nil
		}
	}()

	<-done
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Shutdown", "err", err)
	}

	log.Info("Waiting for cleanups...")
	cleanupWg.Wait()
	log.Info("Shutdown complete")
}

func teaHandler(timings memory.Timings) bm.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		cleanup := &ui.CleanupState{}
		m := ui.InitialModel(s, cleanup, log.Default(), memory.WithTimings(timings))

		cleanupWg.Add(1)
		// Stop the game once the connection is gone
		go func() {
			defer cleanupWg.Done()
			<-s.Context().Done()

			cleanup.Mu.Lock()
			defer cleanup.Mu.Unlock()

			best := cleanup.Controller.Snapshot().Best
			cleanup.Controller.Close()
			cleanup.Feed.Close()
			log.Info("Session ended", "id", cleanup.SessionID, "best", best)
		}()

		return m, []tea.ProgramOption{tea.WithAltScreen()}
	}
}
