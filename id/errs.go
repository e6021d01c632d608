package id

import (
	"errors"
	"fmt"
)

var ErrCollision = errors.New("id collision")

// CollisionError reports two distinct texts that hash to the same Single Id.
type CollisionError struct {
	ID     Id
	Text   string
	Stored string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s: %q and %q both hash to %016x", ErrCollision, e.Text, e.Stored, uint64(e.ID))
}

func (e *CollisionError) Unwrap() error {
	return ErrCollision
}
