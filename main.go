package main

// main.go focuses on application initialization.
// All UI layout, components, and state management live in separate packages:
//
// Package structure:
// - models/     : Form fields and background descriptors
// - form/       : Form state holder (title, subtitle, category)
// - background/ : Background selector (random gradient/colour, remote and uploaded images)
// - preview/    : Pure preview renderer and background painter
// - fetcher/    : HTTP client for random remote images
// - parser/     : Image decoding, data URIs, path helpers
// - validation/ : Shared struct validator
// - config/     : config.yaml, .env overrides, build info
// - logger/     : zerolog wrapper and rotating log file
// - ui/         : Editor state, theme, cards and windows

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"

	"thumbnailer/background"
	"thumbnailer/config"
	"thumbnailer/fetcher"
	"thumbnailer/form"
	"thumbnailer/logger"
	"thumbnailer/ui"
)

const appID = "com.backyard.thumbnailer"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runEditor loads the configuration, wires the editor components and runs the
// fyne event loop until the window is closed.
func runEditor(flags *rootFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logFile, err := logger.OpenRotatingFile(cfg.LogPath(), logger.DefaultMaxSize, logger.DefaultMaxBackups)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logOpts := logger.Options{Level: cfg.LogLevel, Writer: logFile}
	if flags.verbose {
		logOpts.Level = "debug"
		logOpts.Console = os.Stderr
	}

	log, err := logger.New(logOpts)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	log.Infof("starting %s", config.BuildInfo())
	log.Debugf("logging to %s", logFile.Path())
	if cfg.Created {
		log.Infof("created default config at %s", cfg.Path)
	} else {
		log.Infof("loaded config from %s", cfg.Path)
	}

	client, err := fetcher.NewClient(fetcher.Options{
		Endpoint:    cfg.RandomImageURL,
		Timeout:     cfg.RequestTimeout,
		UserAgent:   cfg.UserAgent,
		Logger:      log,
		MinInterval: cfg.MinInterval,
	})
	if err != nil {
		return fmt.Errorf("failed to create image client: %w", err)
	}

	formState := form.New(log)
	selector := background.New(background.Options{
		Fetcher: client,
		Logger:  log,
	})

	// Create a new Fyne application instance
	thumbApp := app.NewWithID(appID)

	app.SetMetadata(fyne.AppMetadata{
		ID:      appID,
		Name:    "Thumbnailer",
		Version: config.Version,
	})

	// Create the main application window
	myWindow := thumbApp.NewWindow("thumbnailer")
	myWindow.SetIcon(theme.MediaPhotoIcon())

	state := ui.NewEditorState(myWindow, cfg, formState, selector, log)
	defer state.Close()

	// -------------------------------------------------------------------------
	// MENUS
	// -------------------------------------------------------------------------
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Logs", func() {
			log.Info("[UI] log window opened (menu)")
			ui.ShowLogWindow(thumbApp, logFile.Path())
		}),
		fyne.NewMenuItem("Configuration", func() {
			log.Info("[UI] configuration window opened (menu)")
			ui.ShowConfigWindow(thumbApp, cfg.Path)
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			log.Info("[UI] about dialog opened")
			ui.ShowAboutDialog(thumbApp)
		}),
	)

	myWindow.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))

	// -------------------------------------------------------------------------
	// KEYBOARD SHORTCUTS
	// -------------------------------------------------------------------------
	myWindow.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyQ,
		Modifier: fyne.KeyModifierControl,
	}, func(shortcut fyne.Shortcut) {
		log.Info("[UI] user closed application (ctrl + q)")
		thumbApp.Quit()
	})
	myWindow.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyL,
		Modifier: fyne.KeyModifierControl,
	}, func(shortcut fyne.Shortcut) {
		log.Info("[UI] log window opened (ctrl + l)")
		ui.ShowLogWindow(thumbApp, logFile.Path())
	})
	myWindow.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyR,
		Modifier: fyne.KeyModifierControl,
	}, func(shortcut fyne.Shortcut) {
		log.Info("[UI] fields cleared (ctrl + r)")
		formState.ResetAll()
	})

	myWindow.SetCloseIntercept(func() {
		log.Info("[UI] user closed application (window)")
		thumbApp.Quit()
	})

	// Set initial window size
	myWindow.Resize(fyne.NewSize(ui.DefaultWindowWidth, ui.DefaultWindowHeight))

	// Build the complete UI layout
	content, _ := ui.BuildMainLayout(state)
	myWindow.SetContent(content)

	// Show the window and run the event loop
	myWindow.ShowAndRun()

	log.Info("editor closed")
	return nil
}
