package ports

import "context"

// PasswordHasher abstracts irreversible password hashing.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Verify must compare in constant time with respect to the input.
	Verify(plain, hash string) bool
}

// CompromisedChecker reports whether a plaintext password appears in a
// known-compromised corpus.
type CompromisedChecker interface {
	IsCompromised(ctx context.Context, plain string) (bool, error)
}
