package domain

// Identity is the caller as seen by everything outside the identity provider.
type Identity struct {
	ID       string
	Name     string
	ImageURL string
	Role     Role
}

// RoleState is the derived role of the caller. Loading is set while the role
// is not known yet.
type RoleState struct {
	Role    Role
	Loading bool
}

// Session is built once per request and handed to components explicitly.
// Identity is nil for anonymous callers.
type Session struct {
	Identity *Identity
	Role     RoleState
}

// Authenticated reports whether the session carries an identity.
func (s *Session) Authenticated() bool {
	return s != nil && s.Identity != nil
}
