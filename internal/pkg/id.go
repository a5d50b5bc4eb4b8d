// Package pkg holds small helpers shared by the repositories and the use cases.
package pkg

import "github.com/google/uuid"

// GenerateGameID - returns a random UUIDv4 string.
func GenerateGameID() string {
	return uuid.NewString()
}
