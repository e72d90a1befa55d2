package location

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Format identifies the on-disk shape of a locations file.
type Format int

const (
	FormatCSV Format = iota
	FormatJSONArray
	FormatJSONObject
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSONArray:
		return "json_array"
	case FormatJSONObject:
		return "json_object"
	default:
		return "unknown"
	}
}

// DetectFormat picks the decoder for a file. A .csv extension (any case) wins;
// otherwise a body whose first meaningful character is '[' is a JSON array and
// anything else is treated as a wrapped collection.
func DetectFormat(path string, content []byte) Format {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}
	if firstMeaningfulRune(content) == '[' {
		return FormatJSONArray
	}
	return FormatJSONObject
}

func firstMeaningfulRune(content []byte) rune {
	for len(content) > 0 {
		r, size := utf8.DecodeRune(content)
		content = content[size:]
		if r == '\uFEFF' || unicode.IsSpace(r) {
			continue
		}
		return r
	}
	return utf8.RuneError
}
