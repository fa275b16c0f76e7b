// Package mimetypes resolves the media type of attachments and photos.
package mimetypes

import (
	"fmt"
	"mime"

	"github.com/gabriel-vasile/mimetype"
)

const (
	Unknown        = "application/octet-stream"
	TextPlain      = "text/plain"
	ApplicationPDF = "application/pdf"
	ImagePNG       = "image/png"
	ImageJPEG      = "image/jpeg"
	ImageGIF       = "image/gif"
)

// Resolve returns the bare media type of a blob. A declared type is
// validated and stripped of its parameters; an empty one is sniffed from
// the content.
func Resolve(declared string, content []byte) (string, error) {
	if declared == "" {
		return Detect(content), nil
	}
	mt, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return "", fmt.Errorf("invalid mime type %q: %w", declared, err)
	}
	return mt, nil
}

// Detect sniffs content. Unrecognised content is application/octet-stream.
func Detect(content []byte) string {
	mt, _, err := mime.ParseMediaType(mimetype.Detect(content).String())
	if err != nil {
		return Unknown
	}
	return mt
}
