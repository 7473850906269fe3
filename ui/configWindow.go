package ui

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ShowConfigWindow shows the config.yaml in use, read only, with a search box.
// Edits are made in the file itself and picked up on the next start.
func ShowConfigWindow(app fyne.App, configPath string) {
	configWindow := app.NewWindow("Thumbnailer Configuration")
	configWindow.Resize(fyne.NewSize(700, 450))

	configLabel := widget.NewLabel("Loading configuration file...")
	configLabel.Wrapping = fyne.TextWrapWord

	pathLabel := widget.NewLabel(configPath)
	pathLabel.TextStyle = fyne.TextStyle{Monospace: true}

	searchEntry := widget.NewEntry()
	searchEntry.SetPlaceHolder("Search configuration...")

	var allLines []string

	performSearch := func() {
		query := searchEntry.Text
		if query == "" {
			configLabel.SetText(strings.Join(allLines, "\n"))
			return
		}

		var filtered []string
		queryLower := strings.ToLower(query)
		for _, line := range allLines {
			if strings.Contains(strings.ToLower(line), queryLower) {
				filtered = append(filtered, line)
			}
		}

		if len(filtered) == 0 {
			configLabel.SetText(fmt.Sprintf("No results found for: %s", query))
			return
		}
		configLabel.SetText(strings.Join(filtered, "\n") + fmt.Sprintf("\n\n[Found %d matches]", len(filtered)))
	}

	// Trigger search on Enter key
	searchEntry.OnSubmitted = func(string) {
		performSearch()
	}

	searchButton := widget.NewButton("Search", func() {
		performSearch()
	})

	clearButton := widget.NewButton("Clear", func() {
		searchEntry.SetText("")
		configLabel.SetText(strings.Join(allLines, "\n"))
	})

	searchBox := container.NewBorder(nil, nil, nil,
		container.NewHBox(searchButton, clearButton),
		searchEntry)

	scroll := container.NewScroll(configLabel)

	content := container.NewBorder(container.NewVBox(pathLabel, searchBox), nil, nil, nil, scroll)
	configWindow.SetContent(content)
	configWindow.Show()

	go func() {
		fileData, err := os.ReadFile(configPath)
		if err != nil {
			fyne.Do(func() {
				configLabel.SetText(fmt.Sprintf("Failed to read configuration: %v", err))
			})
			return
		}

		scanner := bufio.NewScanner(bytes.NewReader(fileData))
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}

		if err := scanner.Err(); err != nil {
			fyne.Do(func() {
				configLabel.SetText(fmt.Sprintf("Error reading configuration: %v", err))
			})
			return
		}

		fyne.Do(func() {
			allLines = lines
			configLabel.SetText(strings.Join(lines, "\n"))
		})
	}()
}
