package models

import "time"

// User represents an account entity used for authentication and authorization.
// The stored document additionally carries the bcrypt password digest under
// the "password" key; the digest is never serialized to JSON and the raw
// secret is never persisted.
type User struct {
	// ID is the store-assigned document identifier.
	ID string `json:"_id"`

	// Name is the display name of the account holder.
	Name string `json:"name"`

	// Email is the unique natural key used during registration and login.
	Email string `json:"email"`

	// Password holds the bcrypt digest of the account secret.
	// It must never leave the service layer.
	Password string `json:"-"`

	// IsAdmin marks administrator accounts. It is derived from the stored
	// document and embedded into issued tokens; it is never read from
	// request input.
	IsAdmin bool `json:"isAdmin"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Collection returns the name of the store collection holding account documents.
func (User) Collection() string {
	return "users"
}

// Credentials is the input shape accepted by the register and login
// operations. Password is the raw secret supplied by the caller; it is
// hashed before any document is written.
type Credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Identity is the verified caller identity derived from a signed token.
// It is attached to the request context only after token verification
// succeeds; no other code path may construct and attach it.
type Identity struct {
	// SubjectID is the account document ID carried in the token subject claim.
	SubjectID string

	// IsAdmin mirrors the admin claim of the verified token.
	IsAdmin bool
}

// UserFromDocument builds a typed view over a stored account document.
// Missing or mistyped fields are left at their zero values.
func UserFromDocument(doc Document) User {
	user := User{
		ID: doc.ID(),
	}
	user.Name, _ = doc["name"].(string)
	user.Email, _ = doc["email"].(string)
	user.Password, _ = doc["password"].(string)
	user.IsAdmin, _ = doc["isAdmin"].(bool)

	if createdAt, ok := doc[FieldCreatedAt].(string); ok {
		user.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	}
	if updatedAt, ok := doc[FieldUpdatedAt].(string); ok {
		user.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	}

	return user
}

// PublicDocument returns a copy of an account document with the password
// digest removed, safe to serialize into API responses.
func PublicDocument(doc Document) Document {
	public := doc.Clone()
	delete(public, "password")
	return public
}
