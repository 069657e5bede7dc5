package validators_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"reviewhub/internal/validators"
)

func TestValidateYear(t *testing.T) {
	current := time.Now().Year()

	t.Run("CurrentYear", func(t *testing.T) {
		assert.NoError(t, validators.ValidateYear(current))
	})

	t.Run("PastYear", func(t *testing.T) {
		assert.NoError(t, validators.ValidateYear(1869))
	})

	t.Run("FutureYear", func(t *testing.T) {
		assert.Error(t, validators.ValidateYear(current+1))
	})
}
