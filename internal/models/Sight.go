package models

import (
	json "github.com/goccy/go-json"
)

type Sight struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	ImageName   string  `json:"imageName"`
	Description string  `json:"description"`
	Kind        string  `json:"kind"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Status      Status  `json:"-"`
}

// MarshalJSON writes the lifecycle status together with the legacy
// "visible" flag so documents stay readable by clients that only know it.
func (s Sight) MarshalJSON() ([]byte, error) {
	type fields Sight
	status := s.Status
	if status == "" {
		status = StatusActive
	}
	return json.Marshal(struct {
		fields
		Status  Status `json:"status"`
		Visible bool   `json:"visible"`
	}{fields(s), status, status.IsActive()})
}

// UnmarshalJSON accepts both "status" and the legacy "visible" flag.
// "status" wins when both are present; a record with neither is active.
func (s *Sight) UnmarshalJSON(data []byte) error {
	type fields Sight
	var doc struct {
		fields
		Status  string `json:"status"`
		Visible *bool  `json:"visible"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	*s = Sight(doc.fields)
	switch {
	case doc.Status != "":
		status, err := ParseStatus(doc.Status)
		if err != nil {
			return err
		}
		s.Status = status
	case doc.Visible != nil && !*doc.Visible:
		s.Status = StatusDeleted
	default:
		s.Status = StatusActive
	}
	return nil
}

func (s *Sight) IsVisible() bool {
	return s.Status.IsActive()
}

// MaxID returns the largest id in sights, or 0 for an empty slice.
func MaxID(sights []*Sight) int {
	maxID := 0
	for _, s := range sights {
		if s.ID > maxID {
			maxID = s.ID
		}
	}
	return maxID
}
