package models

import "time"

type RFPItem struct {
	ID             int64     `json:"id"`
	RFPID          int64     `json:"rfp_id"`
	Name           string    `json:"name"`
	Quantity       int       `json:"quantity"`
	Specifications string    `json:"specifications"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
