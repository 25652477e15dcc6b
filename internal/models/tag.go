package models

import "strings"

// Tag labels events; inactive tags stay listed but are not offered on events
type Tag struct {
	ID        string     `json:"_id"`
	Name      string     `json:"tagName"`
	Status    bool       `json:"tagStatus"`
	UpdatedAt *Timestamp `json:"updatedAt,omitempty"`
}

// TagWrite is the body of the create and update tag calls
type TagWrite struct {
	Name   string `json:"tagName"`
	Status *bool  `json:"tagStatus,omitempty"`
}

// Validate validates the tag data
func (t *TagWrite) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrInvalidInput
	}
	return nil
}
