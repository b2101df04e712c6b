package utils

import "strings"

var sanitizeReplacer = strings.NewReplacer(
	" ", "_",
	":", "",
	";", "",
	"?", "",
	"!", "",
	"/", "_",
	"\\", "_",
	"*", "",
	"\"", "",
	"'", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFilename turns a painting title into a safe filename base.
func SanitizeFilename(title string) string {
	return strings.TrimSpace(sanitizeReplacer.Replace(strings.TrimSpace(title)))
}
