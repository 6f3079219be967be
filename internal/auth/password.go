package auth

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	if len(password) == 0 {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// PasswordVerifier bounds how many bcrypt comparisons run at once so a burst
// of login attempts cannot saturate every scheduler thread.
type PasswordVerifier struct {
	sem *semaphore.Weighted
}

// NewPasswordVerifier creates a verifier allowing up to limit concurrent
// comparisons; limit <= 0 selects GOMAXPROCS.
func NewPasswordVerifier(limit int) *PasswordVerifier {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	return &PasswordVerifier{sem: semaphore.NewWeighted(int64(limit))}
}

// Verify compares a plaintext password with the stored hash. A mismatch is
// reported as ErrInvalidCredential.
func (v *PasswordVerifier) Verify(ctx context.Context, hash, password string) error {
	if hash == "" {
		return ErrInvalidCredential
	}
	if err := v.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer v.sem.Release(1)
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredential
	}
	return nil
}
