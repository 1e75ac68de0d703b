package models

// User is the public representation of an account: exactly the fields that
// may appear in API responses. The password hash lives in a storage-only
// structure (db.Credentials) and is never part of this type, so it cannot
// leak through serialization.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
