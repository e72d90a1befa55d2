package location

import "googlemaps.github.io/maps"

// LatLng returns the point as a Maps API coordinate.
func (l Location) LatLng() maps.LatLng {
	return maps.LatLng{Lat: l.Lat, Lng: l.Lng}
}

// Bounds returns the smallest box containing every location. It reports false
// for an empty set.
func Bounds(locations []Location) (maps.LatLngBounds, bool) {
	if len(locations) == 0 {
		return maps.LatLngBounds{}, false
	}

	bounds := maps.LatLngBounds{
		NorthEast: locations[0].LatLng(),
		SouthWest: locations[0].LatLng(),
	}
	for _, loc := range locations[1:] {
		bounds.NorthEast.Lat = max(bounds.NorthEast.Lat, loc.Lat)
		bounds.NorthEast.Lng = max(bounds.NorthEast.Lng, loc.Lng)
		bounds.SouthWest.Lat = min(bounds.SouthWest.Lat, loc.Lat)
		bounds.SouthWest.Lng = min(bounds.SouthWest.Lng, loc.Lng)
	}
	return bounds, true
}
