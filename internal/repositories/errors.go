package repositories

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// RemoteIOError reports a rejected gateway operation.
type RemoteIOError struct {
	Op         string
	Collection string
	ID         string
	Err        error
}

func (e *RemoteIOError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("remote %s %s/%s: %v", e.Op, e.Collection, e.ID, e.Err)
	}
	return fmt.Sprintf("remote %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *RemoteIOError) Unwrap() error { return e.Err }

func remoteErr(op, collection, id string, err error) error {
	return &RemoteIOError{Op: op, Collection: collection, ID: id, Err: err}
}

// withoutID returns a copy of doc that does not carry IDField.
func withoutID(doc Document) Document {
	out := doc.Clone()
	delete(out, IDField)
	delete(out, "_id")
	return out
}
