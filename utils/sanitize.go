package utils

import "strings"

var headerFilenameReplacer = strings.NewReplacer("\r", "", "\n", "", `"`, "")

// SanitizeHeaderFilename removes characters that can break headers.
func SanitizeHeaderFilename(name string) string {
	clean := headerFilenameReplacer.Replace(strings.TrimSpace(name))
	if clean == "" {
		return "download"
	}
	return clean
}
