package suggestion

import "github.com/quokkabay/quokkabay/internal/modules/model"

// Fallback reference point. It is not derived from the zip code.
const (
	FallbackBaseLat = 40.7128
	FallbackBaseLng = -74.0060

	fallbackStep = 0.01
)

// EnsureCoordinates gives every activity usable map coordinates. Entries with missing or
// non-finite coordinates are placed at the base point offset by (index-2)*0.01 degrees on
// both axes, so a full batch of five forms a small diagonal cluster centred on index 2.
// Valid coordinates are kept. The input slice is not modified.
func EnsureCoordinates(activities []model.Activity) []model.Activity {
	out := make([]model.Activity, len(activities))
	for i, a := range activities {
		if a.Coordinates.Valid() {
			c := *a.Coordinates
			a.Coordinates = &c
		} else {
			offset := float64(i-2) * fallbackStep
			a.Coordinates = &model.Coordinates{
				Lat: FallbackBaseLat + offset,
				Lng: FallbackBaseLng + offset,
			}
		}
		out[i] = a
	}
	return out
}
