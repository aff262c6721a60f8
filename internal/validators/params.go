package validators

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrEmptyID = errors.New("empty id")

// ParseID parses a non nil uuid from a path or body value.
func ParseID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, ErrEmptyID
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, err
	}
	if id == uuid.Nil {
		return uuid.Nil, ErrEmptyID
	}
	return id, nil
}

// OptionalID parses raw when present. A nil pointer means absent.
func OptionalID(raw string) (*uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := ParseID(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
