// Package export delivers the rendered canvas to the user as files.
package export

import (
	"bytes"
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
)

// Encoder renders the canvas as JPEG. *state.Surface implements it.
type Encoder interface {
	Export(w io.Writer) error
}

// Download writes src as a JPEG named name inside dir, replacing any file
// of that name, and returns the written location. Nothing is written when
// src fails to encode.
func Download(dir, name string, src Encoder) (fyne.URI, error) {
	var buf bytes.Buffer
	if err := src.Export(&buf); err != nil {
		return nil, err
	}

	u, err := storage.Child(storage.NewFileURI(dir), name)
	if err != nil {
		return nil, fmt.Errorf("download location: %w", err)
	}
	w, err := storage.Writer(u)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", u, err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("write %s: %w", u, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", u, err)
	}
	return u, nil
}
