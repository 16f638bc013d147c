package models

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/gookit/validate"
	"github.com/spf13/cast"
)

const (
	MinLat = -90.0
	MaxLat = 90.0
	MinLng = -180.0
	MaxLng = 180.0
)

// SightForm is an add request as typed by a user. Coordinates arrive either
// as JSON numbers or as text fields, so they are kept untyped until validated.
type SightForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	ImageName   string `json:"imageName"`
	Lat         any    `json:"lat"`
	Lng         any    `json:"lng"`
}

type formField struct {
	name  string
	rules []string
	// coordinate fields are parsed and range checked once their rules pass
	bounds *coordinateBounds
}

type coordinateBounds struct {
	min, max float64
	rule     string
}

var (
	latBounds = &coordinateBounds{MinLat, MaxLat, "latitude"}
	lngBounds = &coordinateBounds{MinLng, MaxLng, "longitude"}
)

// Reported in this order, at most one message per field.
var formFields = []formField{
	{"name", []string{"required"}, nil},
	{"description", []string{"required"}, nil},
	{"imageName", []string{"required"}, nil},
	{"kind", []string{"required", "knownKind"}, nil},
	{"lat", []string{"required"}, latBounds},
	{"lng", []string{"required"}, lngBounds},
}

var formMessages = map[string]string{
	"name.required":        "name is required",
	"description.required": "description is required",
	"imageName.required":   "a photo is required",
	"kind.required":        "kind is required",
	"kind.knownKind":       "kind is not one of the known kinds",
	"lat.required":         "latitude is required",
	"lat.isFloat":          "latitude must be a number",
	"lat.latitude":         "latitude must be between -90 and 90",
	"lng.required":         "longitude is required",
	"lng.isFloat":          "longitude must be a number",
	"lng.longitude":        "longitude must be between -180 and 180",
}

// ValidationError carries every problem found in a form.
type ValidationError struct {
	Fields   []string
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid sight: " + strings.Join(e.Messages, "; ")
}

func trimmed(v any) string {
	if v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func (f *SightForm) values() map[string]any {
	return map[string]any{
		"name":        strings.TrimSpace(f.Name),
		"description": strings.TrimSpace(f.Description),
		"imageName":   strings.TrimSpace(f.ImageName),
		"kind":        strings.TrimSpace(f.Kind),
		"lat":         trimmed(f.Lat),
		"lng":         trimmed(f.Lng),
	}
}

// check returns the failed rule for val, or "" when it is a number in range.
// Parsing goes through cast so ".5", "45." and "1e1" are numbers.
func (b *coordinateBounds) check(val any) string {
	n, err := cast.ToFloat64E(val)
	if err != nil {
		return "isFloat"
	}
	if n < b.min || n > b.max {
		return b.rule
	}
	return ""
}

// Validate checks the whole form and returns a *ValidationError listing all
// problems, or nil. kinds restricts the accepted kind labels when non-empty.
func (f *SightForm) Validate(kinds []string) error {
	values := f.values()
	v := validate.Map(values)
	v.StopOnError = false

	v.AddValidator("knownKind", func(val any) bool {
		return len(kinds) == 0 || slices.Contains(kinds, cast.ToString(val))
	})
	for _, field := range formFields {
		v.StringRule(field.name, strings.Join(field.rules, "|"))
	}
	v.AddMessages(formMessages)
	v.Validate()

	verr := &ValidationError{}
	for _, field := range formFields {
		msg, ok := firstMessage(v.Errors.Field(field.name), field.rules)
		if !ok && field.bounds != nil {
			if rule := field.bounds.check(values[field.name]); rule != "" {
				msg, ok = formMessages[field.name+"."+rule], true
			}
		}
		if !ok {
			continue
		}
		verr.Fields = append(verr.Fields, field.name)
		verr.Messages = append(verr.Messages, msg)
	}
	if len(verr.Messages) == 0 {
		if v.Errors.Empty() {
			return nil
		}
		verr.Messages = append(verr.Messages, v.Errors.One())
	}
	return verr
}

func firstMessage(ms map[string]string, rules []string) (string, bool) {
	if len(ms) == 0 {
		return "", false
	}
	for _, rule := range rules {
		if msg, ok := ms[rule]; ok {
			return msg, true
		}
	}
	keys := make([]string, 0, len(ms))
	for k := range ms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return ms[keys[0]], true
}

// ToSight validates the form and builds an active Sight without an id.
func (f *SightForm) ToSight(kinds []string) (*Sight, error) {
	if err := f.Validate(kinds); err != nil {
		return nil, err
	}
	values := f.values()
	lat, err := cast.ToFloat64E(values["lat"])
	if err != nil {
		return nil, fmt.Errorf("latitude: %w", err)
	}
	lng, err := cast.ToFloat64E(values["lng"])
	if err != nil {
		return nil, fmt.Errorf("longitude: %w", err)
	}
	return &Sight{
		Name:        values["name"].(string),
		Description: values["description"].(string),
		Kind:        values["kind"].(string),
		ImageName:   values["imageName"].(string),
		Lat:         lat,
		Lng:         lng,
		Status:      StatusActive,
	}, nil
}
