package util

import (
	"net/http"
	"path/filepath"
	"strings"
)

// DetectMIME sniffs the content type from the first bytes of a file.
func DetectMIME(head []byte) string {
	if len(head) > 512 {
		head = head[:512]
	}
	return http.DetectContentType(head)
}

// IsPhotoMIME reports whether an employee photo of this type can be
// decoded and thumbnailed.
func IsPhotoMIME(mimeType string) bool {
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "image/jpeg", "image/png", "image/gif", "image/webp", "image/bmp":
		return true
	default:
		return false
	}
}

func IsPhotoExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(filename))) {
	case ".jpg", ".jpeg", ".jpe", ".jfif", ".png", ".gif", ".webp", ".bmp":
		return true
	default:
		return false
	}
}
