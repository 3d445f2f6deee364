package entity

// UserCredential represents one registered account. The email is the unique
// key, normalized to lowercase before storage. Checksum is the demo-grade
// password verification value, not a cryptographic hash.
type UserCredential struct {
	Email    string `json:"email"`
	Checksum string `json:"passwordHash"`
}

// Session is the currently signed-in identity. At most one session exists at
// a time; an anonymous session is represented by the absence of a Session.
// Sessions are indefinite until an explicit sign-out.
type Session struct {
	Email string `json:"email"`
}
