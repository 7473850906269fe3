package models

import "fmt"

// Field identifies one of the three text inputs of the thumbnail form.
type Field string

const (
	FieldTitle    Field = "title"    // Large headline text, followed by the divider
	FieldSubtitle Field = "subtitle" // Smaller line under the divider
	FieldCategory Field = "category" // Small tag under the subtitle
)

// AllFields lists every form field in display order.
var AllFields = []Field{FieldTitle, FieldSubtitle, FieldCategory}

// Valid reports whether f is one of the known form fields.
func (f Field) Valid() bool {
	switch f {
	case FieldTitle, FieldSubtitle, FieldCategory:
		return true
	}
	return false
}

// FormFields holds the current text of every form input.
// All values are optional and default to the empty string.
type FormFields struct {
	Title    string `json:"title" yaml:"title"`       // Headline entered by the user
	Subtitle string `json:"subtitle" yaml:"subtitle"` // Sub headline entered by the user
	Category string `json:"category" yaml:"category"` // Category tag entered by the user
}

// Get returns the value of the given field, or "" for an unknown field.
func (f FormFields) Get(field Field) string {
	switch field {
	case FieldTitle:
		return f.Title
	case FieldSubtitle:
		return f.Subtitle
	case FieldCategory:
		return f.Category
	}
	return ""
}

// With returns a copy of f with the given field replaced.
// Unknown fields leave the copy unchanged.
func (f FormFields) With(field Field, value string) FormFields {
	switch field {
	case FieldTitle:
		f.Title = value
	case FieldSubtitle:
		f.Subtitle = value
	case FieldCategory:
		f.Category = value
	}
	return f
}

// String implements fmt.Stringer for log output.
func (f FormFields) String() string {
	return fmt.Sprintf("title=%q subtitle=%q category=%q", f.Title, f.Subtitle, f.Category)
}
