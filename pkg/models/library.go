package models

import "time"

type LibraryItem struct {
	UserID     string     `json:"user_id"`
	GameID     GameID     `json:"game_id"`
	ExternalID ExternalID `json:"external_id"`
	Status     string     `json:"status"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
