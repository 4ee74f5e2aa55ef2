package dto

import (
	"bytes"
	"fmt"
	"time"
)

// ErrorResponse HTTP error body. Error carries the human-readable message.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// MessageResponse plain acknowledgement (deletes, bulk updates).
type MessageResponse struct {
	Message string `json:"message"`
}

// Date accepts RFC 3339 timestamps and bare YYYY-MM-DD dates (read as midnight UTC).
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		d.Time = time.Time{}
		return nil
	}
	s := string(b)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

// MarshalJSON writes RFC 3339.
func (d Date) MarshalJSON() ([]byte, error) {
	return d.Time.MarshalJSON()
}

// Ptr returns the time or nil for a zero date.
func (d *Date) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
