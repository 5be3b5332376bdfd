package models

import (
	"strings"
	"time"
)

// Vendor matches the vendors table. Email is unique case-insensitively so
// inbound mail can be matched regardless of capitalization.
type Vendor struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ContactPerson string    `json:"contact_person"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (v *Vendor) Prepare() {
	v.Name = strings.TrimSpace(v.Name)
	v.Email = strings.TrimSpace(v.Email)
	v.ContactPerson = strings.TrimSpace(v.ContactPerson)
}
