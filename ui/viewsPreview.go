package ui

import (
	"image"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"thumbnailer/models"
	"thumbnailer/preview"
)

// PreviewView represents the thumbnail preview card.
// This view shows:
// 1. The active background painted edge to edge (gradient, colour or image)
// 2. The title, subtitle and category lines in white, or their placeholders when empty
// 3. A refresh button that clears all three fields
// 4. A status line with the background's CSS value and transient notices
//
// The view never decides what to show on its own: every repaint goes through
// preview.Render with the current form values and the active background.
type PreviewView struct {
	// Card is the complete UI component ready to be added to the layout
	Card fyne.CanvasObject

	// UI components that need to be accessed after creation
	raster        *canvas.Raster    // Paints the background at whatever size the card gets
	titleText     *canvas.Text      // Preview title line
	subtitleText  *canvas.Text      // Preview subtitle line
	categoryText  *canvas.Text      // Preview category line (under the subtitle)
	lines         *fyne.Container   // Title, divider, subtitle and category, top to bottom
	divider       *canvas.Rectangle // Rule under the title, half the preview width
	statusLabel   *widget.Label     // Background CSS or the latest notice
	refreshButton *widget.Button    // Clears the form

	// state is a reference to the shared editor state
	state *EditorState

	// mu guards current, which the raster generator reads from the render goroutine
	mu      sync.Mutex
	current preview.View

	// noticeSeq identifies the newest notice so an older timer does not clear it
	noticeSeq int
}

// NewPreviewView creates the preview card and subscribes it to form and background changes.
//
// Parameters:
//   - state: Pointer to the shared editor state
//
// Returns:
//   - *PreviewView: A new preview view showing the current state
func NewPreviewView(state *EditorState) *PreviewView {
	view := &PreviewView{
		state: state,
	}

	// The raster asks for pixels at the card's real size, so gradients and
	// cover-cropped images stay sharp when the window is resized
	view.raster = canvas.NewRaster(view.paint)
	view.raster.SetMinSize(fyne.NewSize(float32(state.Config.PreviewWidth), float32(state.Config.PreviewHeight)))

	view.titleText = newPreviewText(PreviewTitleTextSize, true)
	view.subtitleText = newPreviewText(PreviewSubtitleTextSize, false)
	view.categoryText = newPreviewText(PreviewCategoryTextSize, false)

	view.divider = canvas.NewRectangle(PreviewDividerColor)
	view.divider.SetMinSize(fyne.NewSize(1, PreviewDividerThickness))

	view.lines = container.NewVBox(
		view.titleText,
		container.New(&dividerLayout{ratio: PreviewDividerRatio}, view.divider),
		view.subtitleText,
		view.categoryText,
	)

	// Spacers above and below keep the text block vertically centred
	textBlock := container.NewVBox(layout.NewSpacer(), view.lines, layout.NewSpacer())

	thumbnail := container.NewStack(view.raster, container.NewPadded(textBlock))

	view.refreshButton = widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), func() {
		view.onRefreshClicked()
	})

	view.statusLabel = widget.NewLabel("")
	view.statusLabel.Truncation = fyne.TextTruncateEllipsis

	cardContent := container.NewBorder(
		nil,
		container.NewBorder(nil, nil, nil, view.refreshButton, view.statusLabel),
		nil,
		nil,
		thumbnail,
	)

	view.Card = NewCardWithHeader("Preview", cardContent)

	// Form listeners run synchronously on the goroutine that changed the field,
	// which is always the fyne goroutine (entry callbacks, refresh button)
	state.Form.Subscribe(func(models.FormFields) {
		view.refresh()
	})

	// Background listeners may run on a fetch or decode goroutine
	state.Backgrounds.Subscribe(func(models.Background) {
		fyne.Do(view.refresh)
	})

	state.RegisterNoticeCallback(view.showNotice)

	view.refresh()

	return view
}

// dividerLayout centres its single object horizontally and stretches it to
// ratio of the available width.
type dividerLayout struct {
	ratio float32
}

func (d *dividerLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		w := size.Width * d.ratio
		h := o.MinSize().Height
		o.Resize(fyne.NewSize(w, h))
		o.Move(fyne.NewPos((size.Width-w)/2, (size.Height-h)/2))
	}
}

func (d *dividerLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var minSize fyne.Size
	for _, o := range objects {
		minSize = minSize.Max(o.MinSize())
	}
	return minSize
}

// newPreviewText creates one centred white line of the thumbnail.
func newPreviewText(size float32, bold bool) *canvas.Text {
	text := canvas.NewText("", preview.TextColor)
	text.TextSize = size
	text.TextStyle = fyne.TextStyle{Bold: bold}
	text.Alignment = fyne.TextAlignCenter
	return text
}

// View returns the last rendered preview.
func (v *PreviewView) View() preview.View {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// refresh re-renders from the current form values and active background.
// Must be called on the fyne goroutine.
func (v *PreviewView) refresh() {
	rendered := preview.Render(v.state.Form.Fields(), v.state.Backgrounds.Active())

	v.mu.Lock()
	v.current = rendered
	v.mu.Unlock()

	setLine(v.titleText, rendered.Title)
	setLine(v.subtitleText, rendered.Subtitle)
	setLine(v.categoryText, rendered.Category)

	v.statusLabel.SetText("Background: " + rendered.Background.CSS)
	v.raster.Refresh()
}

func setLine(text *canvas.Text, line preview.Line) {
	text.Text = line.Text
	text.TextStyle.Italic = line.Placeholder
	text.Refresh()
}

// paint is the raster generator; fyne calls it with the pixel size of the card.
func (v *PreviewView) paint(w, h int) image.Image {
	v.mu.Lock()
	bg := v.current.Background
	v.mu.Unlock()

	return preview.PaintBackground(bg, w, h)
}

// onRefreshClicked clears all three fields.
// The entries and this card update through the form subscription.
func (v *PreviewView) onRefreshClicked() {
	v.state.Log.Info("refresh clicked, clearing all fields")
	v.state.Form.ResetAll()
}

// showNotice puts msg in the status line for NoticeDuration seconds,
// then restores the background description.
func (v *PreviewView) showNotice(msg string) {
	if msg == "" {
		return
	}

	v.noticeSeq++
	seq := v.noticeSeq
	v.statusLabel.SetText(msg)

	time.AfterFunc(NoticeDuration*time.Second, func() {
		fyne.Do(func() {
			if seq != v.noticeSeq {
				return
			}
			v.statusLabel.SetText("Background: " + v.View().Background.CSS)
		})
	})
}
