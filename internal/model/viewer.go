package model

// Viewer is whoever is looking at the catalog.  The zero value is the
// anonymous viewer; an authenticated viewer is built with ViewerFor.
// The wrapped user is only reachable through User, so callers always
// handle the anonymous case.
type Viewer struct {
	user *User
}

// Anonymous returns the viewer for requests without a known user.
func Anonymous() Viewer { return Viewer{} }

// ViewerFor returns an authenticated viewer for u.
func ViewerFor(u User) Viewer { return Viewer{user: &u} }

// User returns the authenticated user and true, or false for an
// anonymous viewer.
func (v Viewer) User() (User, bool) {
	if v.user == nil {
		return User{}, false
	}
	return *v.user, true
}

// ID returns the user id, or 0 when anonymous.
func (v Viewer) ID() int64 {
	if v.user == nil {
		return 0
	}
	return v.user.ID
}
