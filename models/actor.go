package models

// Actor is the identity acting on a request. The zero value is anonymous.
type Actor struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Anonymous is the acting identity of an unauthenticated request
var Anonymous = Actor{}

// IsAuthenticated reports whether the actor is a known user
func (a Actor) IsAuthenticated() bool {
	return a.UserID != ""
}
