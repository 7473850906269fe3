package ui

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/nxadm/tail"
)

const (
	maxLinesShown = 1000 // Keep the last 1000 lines on screen
)

// logBuffer keeps the newest lines of the followed log file.
type logBuffer struct {
	mu    sync.Mutex
	lines []string
	limit int
	total int
}

func newLogBuffer(limit int) *logBuffer {
	return &logBuffer{limit: limit}
}

// add appends line and drops the oldest lines beyond the limit.
func (b *logBuffer) add(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lines = append(b.lines, line)
	b.total++
	if over := len(b.lines) - b.limit; over > 0 {
		b.lines = append(b.lines[:0:0], b.lines[over:]...)
	}
}

// filter returns the kept lines containing query (case insensitive), all of them for "".
func (b *logBuffer) filter(query string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if query == "" {
		return append([]string(nil), b.lines...)
	}

	queryLower := strings.ToLower(query)
	var filtered []string
	for _, line := range b.lines {
		if strings.Contains(strings.ToLower(line), queryLower) {
			filtered = append(filtered, line)
		}
	}
	return filtered
}

func (b *logBuffer) counts() (kept, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines), b.total
}

// ShowLogWindow opens a window that follows logPath live, like `tail -f`.
// Rotation is handled by reopening the file.
func ShowLogWindow(app fyne.App, logPath string) {
	logWindow := app.NewWindow("Thumbnailer Log")
	logWindow.Resize(fyne.NewSize(800, 600))

	logLabel := widget.NewLabel("Waiting for log lines...")
	logLabel.Wrapping = fyne.TextWrapWord

	searchEntry := widget.NewEntry()
	searchEntry.SetPlaceHolder("Filter shown lines...")

	infoLabel := widget.NewLabel("")

	buffer := newLogBuffer(maxLinesShown)

	// Must be called on the fyne goroutine
	updateDisplay := func() {
		lines := buffer.filter(searchEntry.Text)
		kept, total := buffer.counts()
		logLabel.SetText(strings.Join(lines, "\n"))
		if searchEntry.Text != "" {
			infoLabel.SetText(fmt.Sprintf("%d matches in the last %d lines of %s", len(lines), kept, logPath))
			return
		}
		infoLabel.SetText(fmt.Sprintf("Following %s (%d lines read, showing the last %d)", logPath, total, kept))
	}

	searchEntry.OnChanged = func(string) {
		updateDisplay()
	}

	clearButton := widget.NewButton("Clear Filter", func() {
		searchEntry.SetText("")
	})

	openDirButton := widget.NewButton("Open Log Directory", func() {
		openDirectory(app, filepath.Dir(logPath), logWindow)
	})

	searchBox := container.NewBorder(nil, nil, nil,
		container.NewHBox(clearButton, openDirButton),
		searchEntry)

	scroll := container.NewScroll(logLabel)

	content := container.NewBorder(
		container.NewVBox(searchBox, infoLabel),
		nil, nil, nil,
		scroll,
	)
	logWindow.SetContent(content)

	follower, err := tail.TailFile(logPath, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: false,
		Location:  &tail.SeekInfo{Offset: 0, Whence: io.SeekStart},
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		logLabel.SetText(fmt.Sprintf("Failed to follow log file: %v", err))
		logWindow.Show()
		return
	}

	logWindow.SetOnClosed(func() {
		_ = follower.Stop()
		follower.Cleanup()
	})

	logWindow.Show()

	go func() {
		for line := range follower.Lines {
			if line.Err != nil {
				continue
			}
			buffer.add(line.Text)
			fyne.Do(func() {
				updateDisplay()
				scroll.ScrollToBottom()
			})
		}
	}()
}

// openDirectory opens the file manager at path through the desktop's URL handler.
func openDirectory(app fyne.App, path string, parent fyne.Window) {
	dir := &url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	if err := app.OpenURL(dir); err != nil {
		dialog.ShowError(fmt.Errorf("failed to open directory: %w", err), parent)
	}
}
