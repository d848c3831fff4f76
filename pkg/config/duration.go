package config

import (
	"fmt"
	"time"
)

// ValidatePositiveDuration returns an error unless d > 0.
func ValidatePositiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("duration must be positive, got %v", d)
	}
	return nil
}

// ValidateDurationRange returns an error unless min <= d <= max.
//
// Example:
//
//	if err := ValidateDurationRange(timeout, time.Second, 5*time.Minute); err != nil {
//	    return fmt.Errorf("invalid request timeout: %w", err)
//	}
func ValidateDurationRange(d, min, max time.Duration) error {
	if min > max {
		return fmt.Errorf("invalid range: min %v is greater than max %v", min, max)
	}
	if d < min || d > max {
		return fmt.Errorf("duration %v is outside [%v, %v]", d, min, max)
	}
	return nil
}
