package models

import (
	"fmt"
	"image"
)

// BackgroundKind names the variant of a Background descriptor.
type BackgroundKind string

const (
	KindGradient      BackgroundKind = "gradient"
	KindSolidColor    BackgroundKind = "solid"
	KindRemoteImage   BackgroundKind = "remote_image"
	KindUploadedImage BackgroundKind = "uploaded_image"
)

// DefaultBackground is the descriptor shown before the user picks anything.
var DefaultBackground Background = SolidColor{Color: "#000000"}

// Background describes how the preview area is painted.
// Exactly one descriptor is active at a time; picking a new one replaces it.
//
// The interface is sealed: only the four descriptor types in this package implement it.
type Background interface {
	// Kind returns the variant tag of the descriptor.
	Kind() BackgroundKind

	// CSS returns the value a browser `background` property would take for this descriptor.
	CSS() string

	isBackground()
}

// Gradient is a two colour linear gradient.
// Angle follows CSS semantics: 0 points up, angles grow clockwise.
type Gradient struct {
	Angle  int    `json:"angle" validate:"gte=0,lt=360"`       // Degrees in [0, 360)
	ColorA string `json:"color_a" validate:"required,hexcolor6"` // Start colour, e.g. "#1a2b3c"
	ColorB string `json:"color_b" validate:"required,hexcolor6"` // End colour
}

func (Gradient) Kind() BackgroundKind { return KindGradient }

func (g Gradient) CSS() string {
	return fmt.Sprintf("linear-gradient(%ddeg, %s, %s)", g.Angle, g.ColorA, g.ColorB)
}

func (Gradient) isBackground() {}

// SolidColor is a flat fill.
type SolidColor struct {
	Color string `json:"color" validate:"required,hexcolor6"`
}

func (SolidColor) Kind() BackgroundKind { return KindSolidColor }

func (s SolidColor) CSS() string { return s.Color }

func (SolidColor) isBackground() {}

// RemoteImage is a picture resolved from the random image endpoint.
// Image holds the decoded pixels so rendering never needs the network.
type RemoteImage struct {
	URL   string      `json:"url" validate:"required,url"`
	Image image.Image `json:"-"`
}

func (RemoteImage) Kind() BackgroundKind { return KindRemoteImage }

func (r RemoteImage) CSS() string { return fmt.Sprintf("url(%s) center / cover", r.URL) }

func (RemoteImage) isBackground() {}

// UploadedImage is a local file encoded as a data URI.
type UploadedImage struct {
	DataURI string      `json:"data_uri" validate:"required,datauri"`
	Image   image.Image `json:"-"`
}

func (UploadedImage) Kind() BackgroundKind { return KindUploadedImage }

// CSS truncates the payload; data URIs are usually far too long to display.
func (u UploadedImage) CSS() string {
	uri := u.DataURI
	if len(uri) > 48 {
		uri = uri[:48] + "…"
	}
	return fmt.Sprintf("url(%s) center / cover", uri)
}

func (UploadedImage) isBackground() {}
