package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrNoEmptyString rejects empty password input before hashing
var ErrNoEmptyString = errors.New("password must not be empty")

// ErrMismatchedHashAndPassword is the sentinel for a wrong password. It is a
// value, not a failure: verification of a bad credential is an expected
// outcome.
var ErrMismatchedHashAndPassword = errors.New("password does not match hash")

const bcryptCost = 14

// HashPassword will generate a password hash
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(h), err
}

// ComparePasswordAndHash will validate the given cleartext
// password matches the hashed password
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}

// Hasher adapts the package functions to the PasswordAuthenticator
// interface so stores and orchestrators can take an injected dependency.
type Hasher struct{}

func (Hasher) HashPassword(password string) (string, error) {
	return HashPassword(password)
}

func (Hasher) ComparePasswordAndHash(password, hash string) error {
	return ComparePasswordAndHash(password, hash)
}

var _ PasswordAuthenticator = (*Hasher)(nil)
