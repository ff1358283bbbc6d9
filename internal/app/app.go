package app

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyaoi/mdpull/internal/config"
	"github.com/kyaoi/mdpull/internal/session"
	"github.com/kyaoi/mdpull/internal/ui"
)

// Run executes the Bubble Tea program for the markdown reader.
func Run(target string, cfg config.Config, logger *slog.Logger) error {
	var store *session.Store
	if cfg.Viewer.Session {
		s, err := session.DefaultStore()
		if err != nil {
			logger.Warn("sessions disabled", "error", err)
		} else {
			store = s
		}
	}

	state, err := LoadInitialState(target, cfg, store, logger)
	if err != nil {
		return err
	}
	return runProgram(state, cfg)
}

func runProgram(state ui.State, cfg config.Config) error {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Viewer.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(ui.NewModel(state), opts...)
	_, err := program.Run()
	return err
}
