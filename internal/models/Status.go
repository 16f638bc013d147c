package models

import "fmt"

// Status is the lifecycle state of a stored sight.
type Status string

const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusDeleted:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown sight status %q", s)
}

func (s Status) IsActive() bool {
	return s == StatusActive
}
