package security

import "time"

// Maker makes and verifies bearer tokens carrying a verified account handle.
type Maker interface {

	// CreateToken creates a new token for a specific account handle and duration
	CreateToken(handle string, duration time.Duration) (string, *Payload, error)

	// VerifyToken checks if the token is valid or not
	VerifyToken(token string) (*Payload, error)
}
