package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() *SightForm {
	return &SightForm{
		Name:        "伏見稲荷大社",
		Description: "千本鳥居",
		Kind:        "寺社",
		ImageName:   "JPEG_20240101_120000_ab12cd34.jpg",
		Lat:         "34.9671",
		Lng:         "135.7727",
	}
}

func validationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	return verr
}

func TestSightForm_Valid(t *testing.T) {
	assert.NoError(t, validForm().Validate(nil))
}

func TestSightForm_CollectsAllErrors(t *testing.T) {
	f := &SightForm{Kind: "寺社"}
	verr := validationError(t, f.Validate(nil))

	assert.Equal(t, []string{"name", "description", "imageName", "lat", "lng"}, verr.Fields)
	assert.Len(t, verr.Messages, 5)
}

func TestSightForm_WhitespaceIsEmpty(t *testing.T) {
	f := validForm()
	f.Name = "   "
	verr := validationError(t, f.Validate(nil))
	assert.Equal(t, []string{"name"}, verr.Fields)
}

func TestSightForm_Coordinates(t *testing.T) {
	tests := []struct {
		name   string
		lat    any
		lng    any
		fields []string
	}{
		{"origin", "0", "0", nil},
		{"numeric origin", 0.0, 0.0, nil},
		{"upper bounds", "90", "180", nil},
		{"lower bounds", "-90", "-180", nil},
		{"numeric bounds", 90.0, -180.0, nil},
		{"latitude 91", "91", "0", []string{"lat"}},
		{"longitude -181", "0", "-181", []string{"lng"}},
		{"both out of range", 91.0, -181.0, []string{"lat", "lng"}},
		{"not a number", "north", "0", []string{"lat"}},
		{"empty", "", nil, []string{"lat", "lng"}},
		{"leading dot", ".5", ".5", nil},
		{"trailing dot", "45.", "45.", nil},
		{"exponent", "1e1", "-1e1", nil},
		{"exponent out of range", "1e2", "0", []string{"lat"}},
		{"overflow", "1e400", "0", []string{"lat"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			f.Lat, f.Lng = tt.lat, tt.lng
			err := f.Validate(nil)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			verr := validationError(t, err)
			assert.Equal(t, tt.fields, verr.Fields)
			assert.Len(t, verr.Messages, len(tt.fields))
		})
	}
}

func TestSightForm_CoordinateMessages(t *testing.T) {
	tests := []struct {
		lat     string
		message string
	}{
		{"north", "latitude must be a number"},
		{"1e400", "latitude must be a number"},
		{"91", "latitude must be between -90 and 90"},
		{"-90.5", "latitude must be between -90 and 90"},
	}
	for _, tt := range tests {
		t.Run(tt.lat, func(t *testing.T) {
			f := validForm()
			f.Lat = tt.lat
			verr := validationError(t, f.Validate(nil))
			assert.Equal(t, []string{tt.message}, verr.Messages)
		})
	}

	f := validForm()
	f.Lng = "east"
	verr := validationError(t, f.Validate(nil))
	assert.Equal(t, []string{"longitude must be a number"}, verr.Messages)
}

func TestSightForm_KnownKinds(t *testing.T) {
	kinds := []string{"寺社", "自然"}

	assert.NoError(t, validForm().Validate(kinds))

	f := validForm()
	f.Kind = "遊園地"
	verr := validationError(t, f.Validate(kinds))
	assert.Equal(t, []string{"kind"}, verr.Fields)
}

func TestSightForm_ToSight(t *testing.T) {
	f := validForm()
	f.Name = "  伏見稲荷大社 "
	s, err := f.ToSight(nil)
	require.NoError(t, err)

	assert.Equal(t, 0, s.ID)
	assert.Equal(t, "伏見稲荷大社", s.Name)
	assert.Equal(t, 34.9671, s.Lat)
	assert.Equal(t, 135.7727, s.Lng)
	assert.Equal(t, StatusActive, s.Status)
}

func TestSightForm_ToSightInvalid(t *testing.T) {
	f := validForm()
	f.Lat = "91"
	_, err := f.ToSight(nil)
	validationError(t, err)
}

func TestSightForm_ToSightShortForms(t *testing.T) {
	f := validForm()
	f.Lat, f.Lng = ".5", "1e1"
	s, err := f.ToSight(nil)
	require.NoError(t, err)
	assert.Equal(t, 0.5, s.Lat)
	assert.Equal(t, 10.0, s.Lng)
}

func TestSightForm_DecodesNumbersAndStrings(t *testing.T) {
	var f SightForm
	raw := `{"name":"n","description":"d","kind":"k","imageName":"i.jpg","lat":35.1,"lng":"139.2"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &f))

	s, err := f.ToSight(nil)
	require.NoError(t, err)
	assert.Equal(t, 35.1, s.Lat)
	assert.Equal(t, 139.2, s.Lng)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Messages: []string{"a", "b"}}
	assert.Equal(t, "invalid sight: a; b", err.Error())
}
