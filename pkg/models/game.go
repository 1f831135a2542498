package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ExternalID is the catalog provider's numeric game id, kept in its
// decimal string form. In JSON it is a number, as the provider sends it.
type ExternalID string

// GameID is the surrogate key of a row in the games table.
type GameID int64

// ParseExternalID validates a provider id taken from user input.
func ParseExternalID(s string) (ExternalID, bool) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return "", false
	}
	return ExternalID(strconv.FormatInt(n, 10)), true
}

// ExternalIDFromInt formats a provider id as returned in JSON payloads.
func ExternalIDFromInt(n int64) ExternalID {
	return ExternalID(strconv.FormatInt(n, 10))
}

func (id ExternalID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts the id as a number or as a quoted string.
func (id *ExternalID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ExternalID(strings.TrimSpace(s))
		return nil
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("external id %s: not an integer", b)
	}
	*id = ExternalIDFromInt(n)
	return nil
}

// Game is the local record created the first time anything local
// (a review, a library entry) refers to a catalog game.
type Game struct {
	ID         GameID     `json:"id"`
	ExternalID ExternalID `json:"external_id"`
	CreatedAt  time.Time  `json:"created_at"`
}
