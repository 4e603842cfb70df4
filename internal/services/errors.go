package services

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the referenced record does not exist; no
// mutation happens on that path.
var ErrNotFound = errors.New("not found")

// ContentRejectedError is the defined outcome for a toxic submission: the
// content is discarded, moderation side effects are committed, and the
// flagged terms go back to the submitter. It is not an internal failure.
type ContentRejectedError struct {
	ContentType  string
	Score        float64
	FlaggedTerms []string
}

func (e *ContentRejectedError) Error() string {
	return fmt.Sprintf("%s rejected by moderation (score %.2f)", e.ContentType, e.Score)
}

// AsContentRejected unwraps err into a ContentRejectedError if it is one.
func AsContentRejected(err error) (*ContentRejectedError, bool) {
	var rejected *ContentRejectedError
	if errors.As(err, &rejected) {
		return rejected, true
	}
	return nil, false
}
