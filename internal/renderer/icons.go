package renderer

import (
	"path"
	"strings"
)

// Icon is an Apache-style row icon.
type Icon struct {
	Src string
	Alt string
}

var (
	iconBlank   = Icon{Src: "/icons/blank.gif", Alt: "[ICO]"}
	iconBack    = Icon{Src: "/icons/back.gif", Alt: "[PARENTDIR]"}
	iconFolder  = Icon{Src: "/icons/folder.gif", Alt: "[DIR]"}
	iconSound   = Icon{Src: "/icons/sound2.gif", Alt: "[SND]"}
	iconImage   = Icon{Src: "/icons/image2.gif", Alt: "[IMG]"}
	iconVideo   = Icon{Src: "/icons/movie.gif", Alt: "[VID]"}
	iconText    = Icon{Src: "/icons/text.gif", Alt: "[TXT]"}
	iconArchive = Icon{Src: "/icons/compressed.gif", Alt: "[   ]"}
	iconUnknown = Icon{Src: "/icons/unknown.gif", Alt: "[   ]"}
)

func contentTypeFromExt(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	types := map[string]string{
		".mp3":  "audio/mpeg",
		".flac": "audio/flac",
		".wav":  "audio/wav",
		".ogg":  "audio/ogg",
		".m4a":  "audio/mp4",
		".aac":  "audio/aac",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
		".webp": "image/webp",
		".svg":  "image/svg+xml",
		".mp4":  "video/mp4",
		".webm": "video/webm",
		".mkv":  "video/x-matroska",
		".txt":  "text/plain",
		".md":   "text/markdown",
		".json": "application/json",
		".xml":  "application/xml",
		".zip":  "application/zip",
		".tar":  "application/x-tar",
		".gz":   "application/gzip",
	}
	if t, ok := types[ext]; ok {
		return t
	}
	return "application/octet-stream"
}

func isArchiveType(contentType string, filename string) bool {
	ext := strings.ToLower(path.Ext(filename))
	return contentType == "application/zip" ||
		contentType == "application/x-tar" ||
		contentType == "application/gzip" ||
		ext == ".rar" || ext == ".7z"
}

// fileIcon picks the row icon for a file name.
func fileIcon(name string) Icon {
	contentType := contentTypeFromExt(name)
	switch {
	case strings.HasPrefix(contentType, "audio/"):
		return iconSound
	case strings.HasPrefix(contentType, "image/"):
		return iconImage
	case strings.HasPrefix(contentType, "video/"):
		return iconVideo
	case strings.HasPrefix(contentType, "text/"),
		contentType == "application/json",
		contentType == "application/xml":
		return iconText
	case isArchiveType(contentType, name):
		return iconArchive
	}
	return iconUnknown
}
