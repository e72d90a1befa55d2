package location

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// minCSVLineLength is the shortest line treated as a record; shorter lines are
// stray blanks such as a trailing newline.
const minCSVLineLength = 3

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode parses content according to DetectFormat(path, content).
func Decode(path string, content []byte) ([]Location, error) {
	return DecodeFormat(DetectFormat(path, content), content)
}

// DecodeFormat parses content as the given format. A leading UTF-8 byte order
// mark is ignored.
func DecodeFormat(format Format, content []byte) ([]Location, error) {
	content = bytes.TrimPrefix(content, utf8BOM)

	switch format {
	case FormatCSV:
		return DecodeCSV(content)
	case FormatJSONArray:
		return DecodeJSONArray(content)
	default:
		_, locations, err := DecodeNamedCollection(content)
		return locations, err
	}
}

// DecodeCSV reads "<lat>,<lng>" lines. Extra fields are ignored and there is no
// header handling. Any bad coordinate fails the whole file.
func DecodeCSV(content []byte) ([]Location, error) {
	var locations []Location

	scanner := bufio.NewScanner(bytes.NewReader(content))
	// the whole file is in memory already, so a line may be as long as the file
	scanner.Buffer(make([]byte, 0, 64*1024), len(content)+1)
	scanner.Split(scanCSVLines)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if len(line) < minCSVLineLength {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d: expected lat,lng", ErrParse, lineNo)
		}
		lat, err := parseCoordinate(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: lat: %w", lineNo, err)
		}
		lng, err := parseCoordinate(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: lng: %w", lineNo, err)
		}
		locations = append(locations, Location{Lat: lat, Lng: lng})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan csv: %w", err)
	}

	if locations == nil {
		locations = []Location{}
	}
	return locations, nil
}

// scanCSVLines splits on "\n", "\r\n" and a bare "\r".
func scanCSVLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// need one more byte to tell "\r" from "\r\n"
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func parseCoordinate(field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrParse, field)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrParse, field)
	}
	return v, nil
}

// DecodeJSONArray reads a bare JSON array of location records, dropping the
// ones without both coordinates.
func DecodeJSONArray(content []byte) ([]Location, error) {
	var raw []RawLocation
	if err := unmarshalJSON(content, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: null location array", ErrInvalidFormat)
	}
	return resolveAll(raw), nil
}

// DecodeNamedCollection reads the wrapped format and returns the collection
// alongside its resolved locations.
func DecodeNamedCollection(content []byte) (NamedCollection, []Location, error) {
	var collection *NamedCollection
	if err := unmarshalJSON(content, &collection); err != nil {
		return NamedCollection{}, nil, err
	}
	if collection == nil {
		return NamedCollection{}, nil, fmt.Errorf("%w: null map object", ErrInvalidFormat)
	}
	if collection.CustomCoordinates == nil {
		return *collection, nil, fmt.Errorf("%w: missing customCoordinates", ErrInvalidFormat)
	}
	return *collection, resolveAll(*collection.CustomCoordinates), nil
}

// recordFields are the RawLocation keys whose type errors count as bad values
// rather than a bad document structure.
var recordFields = map[string]struct{}{
	"lat": {}, "lng": {}, "heading": {}, "zoom": {}, "pitch": {},
	"panoId": {}, "countryCode": {}, "subdivisionCode": {},
}

// unmarshalJSON maps a record field of the wrong type to ErrParse and every
// other decoding failure to ErrInvalidFormat.
func unmarshalJSON(content []byte, v any) error {
	err := json.Unmarshal(content, v)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field[strings.LastIndex(typeErr.Field, ".")+1:]
		if _, ok := recordFields[field]; ok {
			return fmt.Errorf("%w: %w", ErrParse, err)
		}
	}
	return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
}
