package types

// UserContext scopes repository and service calls to the authenticated
// user. It is always passed explicitly; there is no ambient current-user
// state anywhere in the sync layer.
type UserContext struct {
	UserID string
	Token  string
}

// Valid reports whether the context names a user.
func (u UserContext) Valid() bool { return u.UserID != "" }
