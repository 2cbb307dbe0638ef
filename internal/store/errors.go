package store

import "fmt"

// NotFoundError reports a missing column or item.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// MoveError reports a move the board does not allow.
type MoveError struct {
	ItemID string
	Reason string
}

func (e *MoveError) Error() string {
	if e.ItemID != "" {
		return fmt.Sprintf("cannot move %s: %s", e.ItemID, e.Reason)
	}
	return fmt.Sprintf("cannot move: %s", e.Reason)
}
