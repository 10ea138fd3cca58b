package mutate

import (
	"errors"
	"fmt"
)

var ErrAlreadyGrouped = errors.New("item already belongs to a group")
var ErrNothingToGroup = errors.New("no items to group")
var ErrMainTabImmutable = errors.New("main tab cannot be deleted or renamed")

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
