package ui

import (
	"context"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"thumbnailer/background"
	"thumbnailer/config"
	"thumbnailer/form"
	"thumbnailer/logger"
)

// EditorState holds the shared state for the entire editor.
// This centralized state allows different UI components to communicate with each other.
// For example, when a user types a title, the preview card re-renders, and when a
// background pick fails, the status line under the preview shows a notice.
//
// Field values live in the form state holder and the active background lives in the
// background selector. Both notify their own subscribers; EditorState only adds the
// window-level concerns (dialogs, notices, app lifetime).
type EditorState struct {
	// Window is the main application window, needed for showing dialogs
	Window fyne.Window

	// Config is the loaded user configuration
	Config *config.Config

	// Form holds the three text fields
	Form *form.State

	// Backgrounds owns the active background descriptor and the pick operations
	Backgrounds *background.Selector

	// Log is the "ui" component logger
	Log *logger.Logger

	// ctx lives as long as the application; async picks derive from it
	ctx    context.Context
	cancel context.CancelFunc

	mu sync.Mutex

	// OnNotice is called when a transient message should be shown to the user
	// The callback receives the message text
	OnNotice []func(msg string)
}

// NewEditorState creates and initializes a new editor state.
// This should be called once at application startup.
//
// Parameters:
//   - window: The main application window (may be nil in tests)
//   - cfg: The loaded configuration
//   - formState: The form state holder
//   - selector: The background selector
//   - log: Logger for UI events
//
// Returns:
//   - *EditorState: A new state instance ready to be shared by the views
func NewEditorState(window fyne.Window, cfg *config.Config, formState *form.State, selector *background.Selector, log *logger.Logger) *EditorState {
	ctx, cancel := context.WithCancel(context.Background())

	return &EditorState{
		Window:      window,
		Config:      cfg,
		Form:        formState,
		Backgrounds: selector,
		Log:         log.Component("ui"),
		ctx:         ctx,
		cancel:      cancel,
		OnNotice:    make([]func(string), 0),
	}
}

// Context returns the application lifetime context.
func (s *EditorState) Context() context.Context {
	return s.ctx
}

// Close cancels every pending background pick. Called when the app quits.
func (s *EditorState) Close() {
	s.cancel()
}

// Notify shows a transient message to the user via all registered callbacks.
// Must be called on the fyne goroutine.
//
// Parameters:
//   - msg: The message to show
func (s *EditorState) Notify(msg string) {
	s.mu.Lock()
	callbacks := append([]func(string){}, s.OnNotice...)
	s.mu.Unlock()

	for _, callback := range callbacks {
		callback(msg)
	}
}

// RegisterNoticeCallback registers a callback to be called when a notice is raised.
// Multiple callbacks can be registered and will all be called in order.
//
// Parameters:
//   - callback: Function to call with the notice text
func (s *EditorState) RegisterNoticeCallback(callback func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.OnNotice = append(s.OnNotice, callback)
}

// ShowError logs err and, when a window is attached, shows it in a dialog.
func (s *EditorState) ShowError(err error, msg string) {
	s.Log.Error(err, msg)
	if s.Window != nil {
		dialog.ShowError(err, s.Window)
	}
}
