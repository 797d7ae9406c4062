package project

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// maxNameLength bounds project names to keep paths portable.
const maxNameLength = 100

// windowsReserved lists device names that cannot be used as file names on Windows.
var windowsReserved = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// NormalizeName trims and NFC-normalizes a project name so the same name
// typed on macOS and Linux produces the same directory.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// ValidateName checks that name is usable as a single directory name on
// every supported platform. The name is expected to be normalized.
func ValidateName(name string) error {
	if name == "" {
		return inputErr("project name", name, "must not be empty")
	}
	if name == "." || name == ".." {
		return inputErr("project name", name, "must not be a relative path element")
	}
	if len(name) > maxNameLength {
		return inputErr("project name", name, "must be at most 100 bytes")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return inputErr("project name", name, "must not contain control characters")
		}
		if strings.ContainsRune(`<>:"/\|?*`, r) {
			return inputErr("project name", name, "must not contain any of <>:\"/\\|?*")
		}
	}
	if strings.HasSuffix(name, ".") || strings.HasSuffix(name, " ") {
		return inputErr("project name", name, "must not end with a dot or space")
	}
	base := strings.ToUpper(name)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	if windowsReserved[base] {
		return inputErr("project name", name, "is a reserved device name on Windows")
	}
	return nil
}
