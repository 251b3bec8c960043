package redis

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const compromisedSetKey = "compromised_passwords"

// CompromisedChecker answers compromised-password lookups against a Redis set
// of uppercase SHA-1 digests, the format breach corpora are distributed in.
// Plaintext passwords never leave the process.
type CompromisedChecker struct {
	client *redis.Client
}

// NewCompromisedChecker creates a CompromisedChecker wrapping the given
// Redis client.
func NewCompromisedChecker(client *redis.Client) *CompromisedChecker {
	return &CompromisedChecker{client: client}
}

// IsCompromised reports whether the password's digest appears in the corpus.
func (c *CompromisedChecker) IsCompromised(ctx context.Context, plain string) (bool, error) {
	found, err := c.client.SIsMember(ctx, compromisedSetKey, digest(plain)).Result()
	if err != nil {
		return false, fmt.Errorf("compromised check: %w", err)
	}
	return found, nil
}

func digest(plain string) string {
	sum := sha1.Sum([]byte(plain))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
