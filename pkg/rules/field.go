package rules

import "strings"

// Location names one of the three addressable request sections.
type Location string

const (
	LocationBody   Location = "body"
	LocationQuery  Location = "query"
	LocationParams Location = "params"
)

// SplitField resolves a dotted field descriptor into a request location and a
// bare field name. Descriptors without a recognized location prefix default to
// the body section with the full descriptor as the field name, so a field
// literally named "query" (no dot) still resolves to body.
func SplitField(descriptor string) (Location, string) {
	prefix, rest, ok := strings.Cut(descriptor, ".")
	if !ok {
		return LocationBody, descriptor
	}

	switch Location(prefix) {
	case LocationBody, LocationQuery, LocationParams:
		return Location(prefix), rest
	default:
		return LocationBody, descriptor
	}
}

// Request holds the decoded request sections a validator list runs against.
// Query and path parameters arrive as strings; body values carry whatever
// types the JSON decoder produced.
type Request struct {
	Body   map[string]any
	Query  map[string]any
	Params map[string]any
}

func (r Request) lookup(loc Location, name string) (any, bool) {
	var section map[string]any
	switch loc {
	case LocationQuery:
		section = r.Query
	case LocationParams:
		section = r.Params
	default:
		section = r.Body
	}
	if section == nil {
		return nil, false
	}
	v, ok := section[name]
	return v, ok
}
