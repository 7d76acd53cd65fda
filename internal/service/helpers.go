package service

import (
	"time"
)

// GetExpiresAt converts a provider expires_in value in seconds to an absolute time.
func GetExpiresAt(now time.Time, expiresIn int64) time.Time {
	return now.Add(time.Duration(expiresIn) * time.Second)
}
