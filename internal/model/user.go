package model

import "github.com/google/uuid"

type User struct {
	ID          uuid.UUID
	DisplayName string
}

// Known reports whether the user carries an authenticated identity.
func (u User) Known() bool {
	return u.ID != uuid.Nil
}
