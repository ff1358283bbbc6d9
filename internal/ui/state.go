package ui

import (
	"log/slog"

	"k8s.io/utils/clock"

	"github.com/kyaoi/mdpull/internal/config"
	"github.com/kyaoi/mdpull/internal/docs"
	"github.com/kyaoi/mdpull/internal/refresh"
	"github.com/kyaoi/mdpull/internal/session"
)

// State contains the data required to bootstrap the Bubble Tea model.
type State struct {
	Library *docs.Library
	// Docs are the documents shown at start, in order.
	Docs   []docs.Doc
	Config config.Config

	// Store is nil when sessions are disabled.
	Store *session.Store
	// Restore is applied on start when set.
	Restore *Restore

	Logger *slog.Logger
	Clock  clock.PassiveClock
}

// Restore is the part of a saved session applied to the model.
type Restore struct {
	YOffset int
	Refresh refresh.SavedState
}
