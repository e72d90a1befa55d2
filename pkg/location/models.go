package location

import "encoding/json"

// Location is a geographic point with required coordinates and the optional
// camera and region metadata carried by map files.
type Location struct {
	Lat             float64         `json:"lat"`
	Lng             float64         `json:"lng"`
	Heading         float64         `json:"heading"`
	Zoom            *float64        `json:"zoom,omitempty"`
	Pitch           *float64        `json:"pitch,omitempty"`
	PanoID          *string         `json:"panoId,omitempty"`
	CountryCode     *string         `json:"countryCode,omitempty"`
	SubdivisionCode *string         `json:"subdivisionCode,omitempty"`
	Extra           json.RawMessage `json:"extra,omitempty"`
}

// RawLocation is a location record as it appears in a JSON file. Coordinates
// may be missing or null.
type RawLocation struct {
	Lat             *float64        `json:"lat"`
	Lng             *float64        `json:"lng"`
	Heading         float64         `json:"heading"`
	Zoom            *float64        `json:"zoom"`
	Pitch           *float64        `json:"pitch"`
	PanoID          *string         `json:"panoId"`
	CountryCode     *string         `json:"countryCode"`
	SubdivisionCode *string         `json:"subdivisionCode"`
	Extra           json.RawMessage `json:"extra"`
}

// NamedCollection is the wrapped map format: a name and its locations.
type NamedCollection struct {
	Name              string         `json:"name"`
	CustomCoordinates *[]RawLocation `json:"customCoordinates"`
}

// Resolve converts r into a Location. It reports false when either
// coordinate is absent.
func (r RawLocation) Resolve() (Location, bool) {
	if r.Lat == nil || r.Lng == nil {
		return Location{}, false
	}
	loc := Location{
		Lat:             *r.Lat,
		Lng:             *r.Lng,
		Heading:         r.Heading,
		Zoom:            r.Zoom,
		Pitch:           r.Pitch,
		PanoID:          r.PanoID,
		CountryCode:     r.CountryCode,
		SubdivisionCode: r.SubdivisionCode,
	}
	// a literal null extra is the same as an absent one
	if len(r.Extra) > 0 && string(r.Extra) != "null" {
		loc.Extra = r.Extra
	}
	return loc, true
}

// resolveAll keeps the records with both coordinates, in order.
func resolveAll(raw []RawLocation) []Location {
	locations := make([]Location, 0, len(raw))
	for _, r := range raw {
		if loc, ok := r.Resolve(); ok {
			locations = append(locations, loc)
		}
	}
	return locations
}
