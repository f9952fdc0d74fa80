// Package model defines the domain types for allowance budgets.
package model

// UserID identifies one of the two fixed budget owners.
type UserID string

const (
	User1 UserID = "user1"
	User2 UserID = "user2"
)

// Users lists every known user in display order.
var Users = []UserID{User1, User2}

// DefaultLabels maps each user to its display label when the config does
// not override it.
var DefaultLabels = map[UserID]string{
	User1: "spouse A",
	User2: "spouse B",
}

// Valid reports whether id belongs to the fixed user set.
func (id UserID) Valid() bool {
	for _, u := range Users {
		if u == id {
			return true
		}
	}
	return false
}

// Other returns the user that is not id.
func (id UserID) Other() UserID {
	if id == User1 {
		return User2
	}
	return User1
}
