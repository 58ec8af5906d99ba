package domain

import (
	"path/filepath"
	"strings"
)

var mimeByExtension = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
	".txt":  "text/plain",
	".md":   "text/markdown",
}

func MimeTypeFor(fileName string) string {
	if mt, ok := mimeByExtension[Extension(fileName)]; ok {
		return mt
	}
	return "application/octet-stream"
}

// Extension returns the lowercased extension including the dot.
func Extension(fileName string) string {
	return strings.ToLower(filepath.Ext(fileName))
}
