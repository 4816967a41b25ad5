package filename

import (
	"regexp"
	"strings"
)

// reservedNamesWindows is a list of reserved filenames on Windows.
// These are case-insensitive.
var reservedNamesWindows = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"COM5": true, "COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true,
	"LPT5": true, "LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

const maxLength = 255

var (
	collapseUnderscores = regexp.MustCompile(`_{2,}`)
	controlChars        = regexp.MustCompile(`[\x00-\x1f]`)

	// path separators and characters refused by Windows, Linux or macOS
	illegal = strings.NewReplacer(
		"/", "_", "\\", "_", "<", "_", ">", "_", ":", "_", "\"", "_", "|", "_", "?", "_", "*", "_",
	)

	titleSlash = strings.NewReplacer("/", "-")
)

// Title makes a post title printable in an export header.
// Only the slash is replaced, everything else is kept as rendered by WordPress.
func Title(title string) string {
	return titleSlash.Replace(title)
}

// PostFile returns the name of the file holding the post identified by slug.
// WordPress slugs are already safe and come out unchanged.
func PostFile(slug string, ext string) string {
	ext = "." + strings.TrimPrefix(ext, ".")
	stem := Sanitize(slug)
	if len(stem)+len(ext) > maxLength {
		stem = stem[:maxLength-len(ext)]
	}
	return stem + ext
}

// Sanitize cleans a string to be a valid and safe filename for
// Windows, macOS, and Linux.
func Sanitize(name string) string {
	sanitized := controlChars.ReplaceAllString(illegal.Replace(name), "")

	// reserved names are checked without the extension
	base, ext := sanitized, ""
	if dot := strings.LastIndex(sanitized, "."); dot != -1 {
		base, ext = sanitized[:dot], sanitized[dot:]
	}
	if reservedNamesWindows[strings.ToUpper(base)] {
		sanitized = "_" + base + ext
	}

	// leading/trailing spaces and dots are problematic on Windows
	sanitized = strings.Trim(sanitized, " .")
	sanitized = collapseUnderscores.ReplaceAllString(sanitized, "_")
	sanitized = strings.TrimSuffix(sanitized, "_")

	if sanitized == "" {
		return "unnamed_file"
	}

	if len(sanitized) > maxLength {
		if dot := strings.LastIndex(sanitized, "."); dot != -1 && len(sanitized)-dot < maxLength {
			ext := sanitized[dot:]
			sanitized = sanitized[:maxLength-len(ext)] + ext
		} else {
			sanitized = sanitized[:maxLength]
		}
	}
	return sanitized
}
