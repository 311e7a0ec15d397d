// Package backend talks to the travel-request backend that turns a free-text
// request into extracted trip parameters, recommended packages and a
// markdown proposal.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ErrEmptyRequest is returned when the travel request is blank.
var ErrEmptyRequest = errors.New("travel request is empty")

// Client processes a free-text travel request.
type Client interface {
	Process(ctx context.Context, request string) (*Response, error)
}

// Response is the backend payload.
type Response struct {
	ExtractedInfo ExtractedInfo `json:"extracted_info"`
	Packages      []Package     `json:"packages"`
	Proposal      string        `json:"proposal"`
	Timings       Timings       `json:"timings"`
}

// ExtractedInfo holds the trip parameters pulled from the request. Every
// field is optional; the backend omits what it could not find.
type ExtractedInfo struct {
	Destination string `json:"destination,omitempty"`
	Dates       string `json:"dates,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Budget      string `json:"budget,omitempty"`
	Travelers   string `json:"travelers,omitempty"`
	TravelType  string `json:"travel_type,omitempty"`
	Interests   string `json:"interests,omitempty"`
}

// UnmarshalJSON accepts numbers where strings are expected; the backend
// sends e.g. travelers as 2 or "2" depending on the extractor.
func (e *ExtractedInfo) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	fields := map[string]*string{
		"destination": &e.Destination,
		"dates":       &e.Dates,
		"duration":    &e.Duration,
		"budget":      &e.Budget,
		"travelers":   &e.Travelers,
		"travel_type": &e.TravelType,
		"interests":   &e.Interests,
	}
	for key, dst := range fields {
		if v, ok := raw[key]; ok {
			*dst = looseString(v)
		}
	}
	return nil
}

// looseString renders a JSON scalar as a string; arrays of strings are
// joined with ", ", and null or objects yield "".
func looseString(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String()
	}
	var list []string
	if err := json.Unmarshal(v, &list); err == nil {
		return strings.Join(list, ", ")
	}
	return ""
}

// Destination returns the trip destination, preferring extracted info and
// falling back to the first package's location.
func (r *Response) Destination() string {
	if r.ExtractedInfo.Destination != "" {
		return r.ExtractedInfo.Destination
	}
	for _, p := range r.Packages {
		if p.Location != "" {
			return p.Location
		}
		if p.Destination != "" {
			return p.Destination
		}
	}
	return ""
}

// Package is a recommended travel package.
type Package struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Location    string          `json:"location,omitempty"`
	Destination string          `json:"destination,omitempty"`
	Description string          `json:"description,omitempty"`
	Duration    string          `json:"duration,omitempty"`
	Activities  []string        `json:"activities,omitempty"`
	Price       float64         `json:"price,omitempty"`
	WeatherData json.RawMessage `json:"weather_data,omitempty"`
}

// UnmarshalJSON accepts the enriched package shape as well as the flat one:
// price may be a number, a numeric string or {"amount": N}, and activities
// may be strings or objects carrying a name.
func (p *Package) UnmarshalJSON(data []byte) error {
	type plain Package
	var raw struct {
		plain
		Duration   json.RawMessage   `json:"duration"`
		Activities []json.RawMessage `json:"activities"`
		Price      json.RawMessage   `json:"price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Package(raw.plain)
	p.Duration = looseString(raw.Duration)
	p.Price = looseAmount(raw.Price)
	p.Activities = nil
	for _, a := range raw.Activities {
		if name := activityName(a); name != "" {
			p.Activities = append(p.Activities, name)
		}
	}
	return nil
}

// looseAmount reads a price as a number, a string like "$1,200" or an
// object with an amount field. Anything else is 0.
func looseAmount(v json.RawMessage) float64 {
	if len(v) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(v, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
		f, _ := strconv.ParseFloat(s, 64)
		return f
	}
	var obj struct {
		Amount json.RawMessage `json:"amount"`
	}
	if err := json.Unmarshal(v, &obj); err == nil && len(obj.Amount) > 0 && obj.Amount[0] != '{' {
		return looseAmount(obj.Amount)
	}
	return 0
}

func activityName(v json.RawMessage) string {
	if s := looseString(v); s != "" {
		return s
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(v, &obj); err == nil {
		return obj.Name
	}
	return ""
}

// Timings are backend-reported durations in milliseconds. The backend
// computes them from wall-clock seconds, so they are fractional.
type Timings struct {
	ExtractionMs float64 `json:"extraction_ms"`
	GenerationMs float64 `json:"generation_ms"`
	TotalMs      float64 `json:"total_ms"`
}
