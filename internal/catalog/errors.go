package catalog

import "errors"

const (
	OpListGames     = "failed to fetch games"
	OpGetGame       = "failed to fetch game details"
	OpListAdditions = "failed to fetch game additions"
	OpListGenres    = "failed to fetch genres"
)

// Error reports a failed upstream call. Its message names the operation
// only; the cause is logged where the failure happens and kept for
// errors.Is/As.
type Error struct {
	Op    string
	Cause error
}

func (e *Error) Error() string {
	return e.Op
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// IsUpstream reports whether err came from the catalog provider.
func IsUpstream(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
