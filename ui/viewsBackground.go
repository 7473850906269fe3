package ui

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"golang.design/x/clipboard"

	"thumbnailer/background"
	"thumbnailer/models"
)

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// clipboardReady initialises the system clipboard once.
// Headless sessions (CI, no X server) report an error here instead of panicking later.
func clipboardReady() error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	return clipboardErr
}

// BackgroundView represents the "Background" card.
// It offers the four background choices plus paste-from-clipboard:
// 1. Random gradient and random colour apply immediately
// 2. Random image fetches in the background; the old background stays until it arrives
// 3. Upload and paste decode the image in the background and apply it as a data URI
//
// Failures never clear the current background, they show a notice under the preview.
type BackgroundView struct {
	// Card is the complete UI component ready to be added to the layout
	Card fyne.CanvasObject

	// UI components that need to be accessed after creation
	gradientButton *widget.Button
	colorButton    *widget.Button
	imageButton    *widget.Button
	uploadButton   *widget.Button
	pasteButton    *widget.Button

	// state is a reference to the shared editor state
	state *EditorState
}

// NewBackgroundView creates the background selection card.
//
// Parameters:
//   - state: Pointer to the shared editor state
//
// Returns:
//   - *BackgroundView: A new background view bound to state.Backgrounds
func NewBackgroundView(state *EditorState) *BackgroundView {
	view := &BackgroundView{
		state: state,
	}

	view.gradientButton = widget.NewButtonWithIcon("Random gradient", theme.ColorPaletteIcon(), func() {
		view.onRandomGradient()
	})
	view.colorButton = widget.NewButtonWithIcon("Random colour", theme.ColorChromaticIcon(), func() {
		view.onRandomColor()
	})
	view.imageButton = widget.NewButtonWithIcon("Random image", theme.MediaPhotoIcon(), func() {
		view.onRandomImage()
	})
	view.uploadButton = widget.NewButtonWithIcon("Upload image", theme.FolderOpenIcon(), func() {
		view.onUploadClicked()
	})
	view.pasteButton = widget.NewButtonWithIcon("Paste image", theme.ContentPasteIcon(), func() {
		view.onPasteClicked()
	})

	cardContent := container.NewVBox(
		NewBoldLabel("Background"),
		NewSeparator(),
		container.NewGridWithColumns(2, view.gradientButton, view.colorButton),
		container.NewGridWithColumns(2, view.imageButton, view.uploadButton),
		view.pasteButton,
	)

	view.Card = NewCard(cardContent)

	return view
}

// onRandomGradient picks and applies a new two colour gradient.
func (v *BackgroundView) onRandomGradient() models.Background {
	bg := v.state.Backgrounds.PickRandomGradient()
	v.state.Log.Debugf("random gradient picked: %s", bg.CSS())
	return bg
}

// onRandomColor picks and applies a new solid colour.
func (v *BackgroundView) onRandomColor() models.Background {
	bg := v.state.Backgrounds.PickRandomColor()
	v.state.Log.Debugf("random colour picked: %s", bg.CSS())
	return bg
}

// onRandomImage starts a remote fetch. The returned task is used by tests.
func (v *BackgroundView) onRandomImage() *background.Task {
	v.state.Notify("Fetching a random image...")
	task := v.state.Backgrounds.PickRandomRemoteImage(v.state.Context())
	v.watch(task)
	return task
}

// onUploadClicked opens an image-only file dialog.
func (v *BackgroundView) onUploadClicked() {
	if v.state.Window == nil {
		return
	}

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			v.state.ShowError(err, "file dialog failed")
			return
		}
		if reader == nil {
			// Cancelled
			return
		}

		name := reader.URI().Name()
		if err := ValidateUploadName(name); err != nil {
			_ = reader.Close()
			v.state.ShowError(err, "upload rejected")
			return
		}

		v.uploadFrom(name, reader)
	}, v.state.Window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(UploadExtensions))
	fileDialog.Show()
}

// onPasteClicked uploads an image from the system clipboard.
func (v *BackgroundView) onPasteClicked() *background.Task {
	if err := clipboardReady(); err != nil {
		v.state.Log.Error(err, "clipboard unavailable")
		v.state.Notify("Clipboard is not available")
		return nil
	}

	data := clipboard.Read(clipboard.FmtImage)
	if len(data) == 0 {
		v.state.Notify("The clipboard does not contain an image")
		return nil
	}

	return v.uploadFrom("clipboard", io.NopCloser(bytes.NewReader(data)))
}

// uploadFrom hands r to the selector, which closes it once it has been read.
func (v *BackgroundView) uploadFrom(source string, r io.ReadCloser) *background.Task {
	v.state.Log.Infof("decoding uploaded image %s", source)
	task := v.state.Backgrounds.PickUploadedImage(v.state.Context(), source, r)
	v.watch(task)
	return task
}

// watch waits for task off the fyne goroutine and reports failures in the status line.
func (v *BackgroundView) watch(task *background.Task) {
	go func() {
		bg, err := task.Wait(v.state.Context())

		if err != nil {
			if errors.Is(err, background.ErrSuperseded) {
				v.state.Log.Debug("background pick superseded by a newer one")
			}
			if msg := noticeFor(err); msg != "" {
				fyne.Do(func() { v.state.Notify(msg) })
			}
			return
		}

		v.state.Log.Info(fmt.Sprintf("background applied: %s", bg.Kind()))
	}()
}
