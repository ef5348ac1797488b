package mocks

import "errors"

// MockPasswordHasher implements auth.PasswordHasher for testing.
type MockPasswordHasher struct {
	HashFn  func(password string) (string, error)
	HashErr error
}

// Hash implements the auth.PasswordHasher interface. The default prefixes
// the plaintext so tests can assert the stored value differs from it.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return "hashed:" + password, nil
}

// MockPasswordVerifier implements auth.PasswordVerifier for testing.
type MockPasswordVerifier struct {
	// ShouldSucceed determines whether the comparison succeeds
	ShouldSucceed bool

	CompareFn func(hashedPassword, password string) error

	// CompareCalledWith stores the last arguments passed to Compare
	CompareCalledWith struct {
		HashedPassword string
		Password       string
	}
	CompareCallCount int
}

// Compare implements the auth.PasswordVerifier interface.
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.CompareCalledWith.HashedPassword = hashedPassword
	m.CompareCalledWith.Password = password
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}

	if m.ShouldSucceed {
		return nil
	}
	return errors.New("password mismatch")
}
