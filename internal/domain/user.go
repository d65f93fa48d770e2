package domain

// User is the only entity of the service.
// The id is assigned by the store and cannot change afterwards, so it is
// kept unexported and only set through RestoreUser.
type User struct {
	id    *int64
	Name  string
	Email string
}

// NewUser builds a user that has not been persisted yet (no id).
func NewUser(name, email string) User {
	return User{Name: name, Email: email}
}

// RestoreUser rebuilds a persisted user from stored values.
func RestoreUser(id int64, name, email string) User {
	return User{id: &id, Name: name, Email: email}
}

// ID returns the store-assigned id and whether it is present.
func (u User) ID() (int64, bool) {
	if u.id == nil {
		return 0, false
	}
	return *u.id, true
}

func (u User) Persisted() bool { return u.id != nil }
