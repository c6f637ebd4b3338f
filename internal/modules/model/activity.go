package model

import "math"

// CostRange is the closed set of price tiers shown for an activity.
type CostRange string

const (
	CostFree   CostRange = "Free"
	CostLow    CostRange = "$"
	CostMedium CostRange = "$$"
	CostHigh   CostRange = "$$$"
)

func (c CostRange) Valid() bool {
	switch c {
	case CostFree, CostLow, CostMedium, CostHigh:
		return true
	}
	return false
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether both axes are finite numbers.
func (c *Coordinates) Valid() bool {
	if c == nil {
		return false
	}
	return isFinite(c.Lat) && isFinite(c.Lng)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Activity is one suggested local activity. Activities are value objects: they are
// regenerated wholesale, never edited.
type Activity struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	WhyItMatches string       `json:"whyItMatches"`
	CostRange    CostRange    `json:"costRange"`
	Link         string       `json:"link,omitempty"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
}

// LinkPtr returns the link as a nullable value; an empty link is null.
func (a Activity) LinkPtr() *string {
	if a.Link == "" {
		return nil
	}
	l := a.Link
	return &l
}
