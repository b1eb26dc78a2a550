package server

import (
	"path"
	"strings"
)

var statusText = map[int]string{
	200: "OK",
	301: "Moved Permanently",
	404: "Not Found",
	500: "Internal Server Error",
}

var contentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"html": "text/html",
	"css":  "text/css",
	"txt":  "text/plain",
}

// StatusText returns the reason phrase for code, or "" if the code is unknown.
func StatusText(code int) string {
	return statusText[code]
}

// ContentType returns the content type for the extension of name, or "".
func ContentType(name string) string {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	return contentTypes[strings.ToLower(ext)]
}
