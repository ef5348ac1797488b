package domain

import (
	"strings"
	"time"
)

// User represents a registered user of the ledger.
type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext password, transient during registration/login
	HashedPassword string    `json:"-"` // Never expose the hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a User from registration input. The ID is assigned by
// the store on creation, and the caller is responsible for hashing the
// plaintext password before the user is persisted.
func NewUser(name, email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Name:      name,
		Email:     email,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	// A user must carry a credential in one of the two forms: plaintext
	// before hashing, or the stored hash afterwards.
	if u.Password == "" && u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// validEmailFormat performs a minimal structural check: a single '@' with
// a dotted domain part. Full RFC 5322 validation is left to the request
// layer's validator tags.
func validEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domainPart := email[at+1:]
	if strings.Contains(domainPart, "@") {
		return false
	}

	dot := strings.Index(domainPart, ".")
	return dot > 0 && dot < len(domainPart)-1
}
