package entity

import "time"

// Brand representa una marca (tabla merek).
type Brand struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
