package mimetypes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	pdf := []byte("%PDF-1.4\n%âãÏÓ\n")

	tests := []struct {
		name     string
		declared string
		content  []byte
		want     string
		wantErr  bool
	}{
		{"Declared with charset", "text/plain; charset=utf-8", nil, TextPlain, false},
		{"Declared upper case", "IMAGE/PNG", nil, ImagePNG, false},
		{"Declared wins over content", "application/json", png, "application/json", false},
		{"Sniffed PNG", "", png, ImagePNG, false},
		{"Sniffed PDF", "", pdf, ApplicationPDF, false},
		{"Sniffed text", "", []byte("hello there"), TextPlain, false},
		{"Invalid declared", "not a mime", nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)

			got, err := Resolve(tt.declared, tt.content)

			if tt.wantErr {
				req.Error(err)
				return
			}
			req.NoError(err)
			req.Equal(tt.want, got)
		})
	}
}
