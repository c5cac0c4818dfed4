package viewstate

import (
	"encoding/base64"
	"errors"
	"path/filepath"
	"strings"

	"landmark-lens/api/internal/util"
)

// FallbackMIME is sent for accepted files whose declared type is not image/*.
const FallbackMIME = "image/jpeg"

var ErrInvalidFile = errors.New("not an image file")

// rawExtensions are camera/RAW formats accepted regardless of content type.
var rawExtensions = map[string]struct{}{
	"dng": {}, "cr2": {}, "cr3": {}, "nef": {}, "arw": {}, "heic": {},
}

// File is one user-selected upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte

	// PreviewURI is a shell-owned handle used to display the image again
	// (object URL, Telegram file id, path...). A data URL is used when empty.
	PreviewURI string
}

// Accept applies the upload rule and returns the MIME type to transmit.
func Accept(f File) (string, error) {
	if strings.HasPrefix(f.ContentType, "image/") {
		return f.ContentType, nil
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(f.Name), "."))
	if _, ok := rawExtensions[ext]; ok {
		return FallbackMIME, nil
	}
	return "", ErrInvalidFile
}

func encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func decode(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

func previewURI(f File, mime, encoded string) string {
	if f.PreviewURI != "" {
		return f.PreviewURI
	}
	return util.MakeDataURL(mime, encoded)
}
