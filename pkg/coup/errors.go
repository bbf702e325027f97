package coup

import "fmt"

// IllegalActionError is returned by Apply when the submitted action is not
// a member of Actions(p) — a caller bug: the engine rejects rather than
// attempting to recover.
type IllegalActionError struct {
	Action Action
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("coup: illegal action: %s", e.Action)
}
