package ui

import (
	"thumbnailer/config"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

func ShowAboutDialog(app fyne.App) {
	title := widget.NewLabel("Thumbnailer")
	title.TextStyle = fyne.TextStyle{Bold: true}

	version := widget.NewLabel(
		"Version: " + config.Version +
			"\nCommit: " + config.GitCommit +
			"\nBuilt: " + config.BuildTime,
	)

	version.Alignment = fyne.TextAlignCenter

	description := widget.NewLabel(
		"Live preview for blog and video thumbnails.",
	)
	description.Wrapping = fyne.TextWrapWord

	features := widget.NewLabel(
		"Features:\n" +
			"• Title, subtitle and category with live preview\n" +
			"• Random gradient or random colour backgrounds\n" +
			"• Random remote images\n" +
			"• Upload or paste your own image\n" +
			"• Refresh to start over",
	)
	features.Wrapping = fyne.TextWrapWord

	// Declare window first so the close button can reference it
	var aboutWin fyne.Window
	closeBtn := widget.NewButton("Close", func() {
		aboutWin.Close()
	})

	mainContent := container.NewVBox(
		container.NewCenter(title),
		container.NewCenter(version),
		widget.NewSeparator(),
		description,
		widget.NewSeparator(),
		features,
	)

	scroll := container.NewScroll(mainContent)

	bottom := container.NewVBox(
		widget.NewSeparator(),
		container.NewCenter(closeBtn),
	)

	content := container.NewBorder(nil, bottom, nil, nil, scroll)

	aboutWin = app.NewWindow("About Thumbnailer")
	aboutWin.SetContent(content)
	aboutWin.Resize(fyne.NewSize(400, 380))
	aboutWin.SetFixedSize(true)
	aboutWin.Show()
}
