package assetindex

import (
	"encoding/base64"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// File is a named byte buffer produced by an input adapter.
type File struct {
	Name string
	Data []byte
}

// Asset is a decoded image addressable by its base filename.
type Asset struct {
	Name    string // base filename, case-sensitive
	MIME    string // e.g. "image/png"
	Content string // data URI
	Size    int    // raw byte length
}

// fallbackMIME covers image types that have no magic-byte signature
// or that mime.TypeByExtension may not know on minimal systems.
var fallbackMIME = map[string]string{
	".svg":  "image/svg+xml",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
}

// Decode turns a named buffer into an Asset carrying a base64 data URI.
// The MIME type is sniffed from the content first and falls back to the
// file extension, so mislabelled screenshots still render.
func Decode(name string, data []byte) (Asset, error) {
	base := Basename(name)
	if base == "" {
		return Asset{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if len(data) == 0 {
		return Asset{}, fmt.Errorf("%w: %s", ErrEmptyAsset, base)
	}

	mimeType, err := detectMIME(base, data)
	if err != nil {
		return Asset{}, err
	}

	return Asset{
		Name:    base,
		MIME:    mimeType,
		Content: "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
		Size:    len(data),
	}, nil
}

// detectMIME sniffs magic bytes, then the extension.
func detectMIME(name string, data []byte) (string, error) {
	if filetype.IsImage(data) {
		kind, err := filetype.Match(data)
		if err == nil && kind != filetype.Unknown {
			return kind.MIME.Value, nil
		}
	}

	ext := strings.ToLower(filepath.Ext(name))
	if mt, ok := fallbackMIME[ext]; ok {
		return mt, nil
	}
	if mt := mime.TypeByExtension(ext); strings.HasPrefix(mt, "image/") {
		// Strip parameters such as "; charset=utf-8".
		if i := strings.IndexByte(mt, ';'); i != -1 {
			mt = strings.TrimSpace(mt[:i])
		}
		return mt, nil
	}

	return "", fmt.Errorf("%w: %s", ErrNotImage, name)
}

// Basename strips everything up to and including the last path separator.
// Both forward and back slashes are treated as separators.
func Basename(ref string) string {
	if i := strings.LastIndexAny(ref, `/\`); i != -1 {
		return ref[i+1:]
	}
	return ref
}
