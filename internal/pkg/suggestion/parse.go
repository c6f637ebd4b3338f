package suggestion

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/bytedance/sonic"

	"github.com/quokkabay/quokkabay/internal/modules/model"
)

var (
	ErrEmptyResponse = errors.New("empty model response")
	ErrUnparsable    = errors.New("no JSON array in model response")
)

// lenientJSON keeps number literals as json.Number so one out-of-range coordinate does
// not fail the whole document.
var lenientJSON = sonic.Config{UseNumber: true}.Froze()

// arrayPattern spans from the first '[' to the last ']', across lines.
var arrayPattern = regexp.MustCompile(`\[[\s\S]*\]`)

// ParseActivities decodes model output in two stages: the whole text as JSON, then the
// bracketed array embedded in surrounding prose. A JSON value that is not an array yields
// no activities.
func ParseActivities(text string) ([]model.Activity, error) {
	if text == "" {
		return nil, ErrEmptyResponse
	}

	var raw any
	if err := lenientJSON.UnmarshalFromString(text, &raw); err != nil {
		match := arrayPattern.FindString(text)
		if match == "" {
			return nil, ErrUnparsable
		}
		if err := lenientJSON.UnmarshalFromString(match, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnparsable, err)
		}
	}

	return fromRaw(raw), nil
}

func fromRaw(raw any) []model.Activity {
	items, _ := raw.([]any)

	out := make([]model.Activity, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, model.Activity{
			Name:         asString(m["name"]),
			Description:  asString(m["description"]),
			WhyItMatches: asString(m["whyItMatches"]),
			CostRange:    model.CostRange(asString(m["costRange"])),
			Link:         asString(m["link"]),
			Coordinates:  asCoordinates(m["coordinates"]),
		})
	}
	return out
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}

// asCoordinates only accepts JSON numbers; anything else is left for the fallback.
// Literals beyond float64 range come back as ±Inf and fail Coordinates.Valid.
func asCoordinates(v any) *model.Coordinates {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	lat, latOK := asFloat(m["lat"])
	lng, lngOK := asFloat(m["lng"])
	if !latOK || !lngOK {
		return nil
	}
	return &model.Coordinates{Lat: lat, Lng: lng}
}

func asFloat(v any) (float64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}
