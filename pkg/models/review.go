package models

import "time"

type Review struct {
	ID         int64      `json:"id"`
	UserID     string     `json:"user_id"`
	GameID     GameID     `json:"game_id"`
	ExternalID ExternalID `json:"external_id"`
	Rating     int        `json:"rating"`
	Text       string     `json:"text,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ReviewAggregate is computed from the reviews table on demand and never stored.
// AverageRaw is on the 0-10 review scale.
type ReviewAggregate struct {
	GameID     GameID
	AverageRaw *float64
	Count      int
}
