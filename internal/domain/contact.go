package domain

import "time"

type Contact struct {
	ID        int64
	Name      string
	Email     string
	Number    string
	Message   string
	CreatedAt time.Time
}
