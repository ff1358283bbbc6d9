package app

import (
	"log/slog"

	"github.com/kyaoi/mdpull/internal/config"
	"github.com/kyaoi/mdpull/internal/docs"
	"github.com/kyaoi/mdpull/internal/session"
	"github.com/kyaoi/mdpull/internal/ui"
)

// LoadInitialState opens the library for target and prepares the UI state.
// A saved session for the same library and start document brings back the
// documents that were shown and where the reader was.
func LoadInitialState(target string, cfg config.Config, store *session.Store, logger *slog.Logger) (ui.State, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	lib, start, err := docs.Open(target)
	if err != nil {
		return ui.State{}, err
	}
	first, err := lib.Read(start)
	if err != nil {
		return ui.State{}, err
	}

	state := ui.State{
		Library: lib,
		Docs:    []docs.Doc{first},
		Config:  cfg,
		Store:   store,
		Logger:  logger,
	}
	if store == nil {
		return state, nil
	}

	sess, ok, err := store.Load()
	switch {
	case err != nil:
		logger.Warn("ignoring saved session", "path", store.Path(), "error", err)
		return state, nil
	case !ok || !sess.Matches(lib.Root(), start):
		return state, nil
	}

	loaded := []docs.Doc{first}
	for _, rel := range sess.Loaded[1:] {
		doc, err := lib.Read(rel)
		if err != nil {
			logger.Info("session document gone", "path", rel, "error", err)
			state.Docs = loaded
			return state, nil
		}
		loaded = append(loaded, doc)
	}
	state.Docs = loaded
	state.Restore = &ui.Restore{YOffset: sess.YOffset, Refresh: sess.Refresh}
	logger.Debug("session restored", "documents", len(loaded), "y_offset", sess.YOffset)
	return state, nil
}
