package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"thumbnailer/models"
	"thumbnailer/preview"
)

// FieldsView represents the "Text" card with the three input fields.
// Every keystroke goes straight to the form state holder; the preview card
// listens to the form, so there is no save button.
type FieldsView struct {
	// Card is the complete UI component ready to be added to the layout
	Card fyne.CanvasObject

	// entries maps each form field to its input widget
	entries map[models.Field]*widget.Entry

	// syncing is set while the view writes form values back into the entries,
	// so the resulting OnChanged calls are not fed into the form again
	syncing bool

	// state is a reference to the shared editor state
	state *EditorState
}

// NewFieldsView creates the input card.
//
// Parameters:
//   - state: Pointer to the shared editor state
//
// Returns:
//   - *FieldsView: A new fields view bound to state.Form
func NewFieldsView(state *EditorState) *FieldsView {
	view := &FieldsView{
		state:   state,
		entries: make(map[models.Field]*widget.Entry, len(models.AllFields)),
	}

	placeholders := map[models.Field]string{
		models.FieldTitle:    preview.PlaceholderTitle,
		models.FieldSubtitle: preview.PlaceholderSubtitle,
		models.FieldCategory: preview.PlaceholderCategory,
	}
	labels := map[models.Field]string{
		models.FieldTitle:    "Title:",
		models.FieldSubtitle: "Subtitle:",
		models.FieldCategory: "Category:",
	}

	cardContent := container.NewVBox(
		NewBoldLabel("Text"),
		NewSeparator(),
	)

	for _, field := range models.AllFields {
		entry := widget.NewEntry()
		entry.SetPlaceHolder(placeholders[field])
		entry.SetText(state.Form.Field(field))

		f := field
		entry.OnChanged = func(text string) {
			view.onEntryChanged(f, text)
		}

		view.entries[field] = entry
		cardContent.Add(widget.NewLabel(labels[field]))
		cardContent.Add(entry)
	}

	// Keep the entries in step with the form, e.g. after the refresh button
	state.Form.Subscribe(view.syncEntries)

	view.Card = NewCard(cardContent)

	return view
}

// Entry returns the input widget for field, or nil for an unknown field.
func (v *FieldsView) Entry(field models.Field) *widget.Entry {
	return v.entries[field]
}

// onEntryChanged forwards user input to the form state holder.
func (v *FieldsView) onEntryChanged(field models.Field, text string) {
	if v.syncing {
		return
	}
	v.state.Form.SetField(field, text)
}

// syncEntries copies form values into entries that differ.
func (v *FieldsView) syncEntries(fields models.FormFields) {
	v.syncing = true
	defer func() { v.syncing = false }()

	for _, field := range models.AllFields {
		entry := v.entries[field]
		if entry == nil {
			continue
		}
		if value := fields.Get(field); entry.Text != value {
			entry.SetText(value)
		}
	}
}
