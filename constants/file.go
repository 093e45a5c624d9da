package constants

import (
	"mime"
	"path/filepath"
	"strings"
)

// FileFormat is the extraction route chosen for an upload.
type FileFormat string

const (
	PDF   FileFormat = "PDF"
	IMAGE FileFormat = "IMAGE"
)

const (
	MediaTypePDF  = "application/pdf"
	MediaTypeJPEG = "image/jpeg"
	MediaTypePNG  = "image/png"

	mediaTypeOctetStream = "application/octet-stream"
)

// AllowedMediaTypes maps accepted declared content types to their route.
var AllowedMediaTypes = map[string]FileFormat{
	MediaTypePDF:  PDF,
	MediaTypeJPEG: IMAGE,
	MediaTypePNG:  IMAGE,
}

// AllowedExtensions is consulted only when the client did not declare a usable content type.
var AllowedExtensions = map[string]string{
	"pdf":  MediaTypePDF,
	"jpg":  MediaTypeJPEG,
	"jpeg": MediaTypeJPEG,
	"png":  MediaTypePNG,
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// NormalizeMediaType strips parameters and lowercases a Content-Type value.
// "image/JPEG; charset=binary" -> "image/jpeg".
func NormalizeMediaType(contentType string) string {
	ct := strings.TrimSpace(contentType)
	if ct == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		return mt
	}
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// ClassifyUpload returns the route and the effective media type for an upload.
// The declared content type wins; the filename extension is only a fallback when the
// client sent nothing useful. Byte signatures are not inspected.
func ClassifyUpload(contentType, filename string) (FileFormat, string, bool) {
	mt := NormalizeMediaType(contentType)
	if mt == "" || mt == mediaTypeOctetStream {
		if byExt, ok := AllowedExtensions[NormalizeExt(filepath.Ext(filename))]; ok {
			mt = byExt
		}
	}
	if mt == "image/jpg" {
		mt = MediaTypeJPEG
	}
	format, ok := AllowedMediaTypes[mt]
	if !ok {
		return "", mt, false
	}
	return format, mt, true
}
