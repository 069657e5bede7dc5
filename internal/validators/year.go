package validators

import (
	"fmt"
	"time"
)

// ValidateYear rejects years that have not happened yet.
func ValidateYear(year int) error {
	now := time.Now().Year()
	if year > now {
		return fmt.Errorf("year %d is in the future", year)
	}
	return nil
}
