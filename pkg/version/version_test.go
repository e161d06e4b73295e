package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	t.Run("linker value wins", func(t *testing.T) {
		old := version
		t.Cleanup(func() { version = old })
		version = "v9.9.9"

		assert.Equal(t, "v9.9.9", GetVersion())
	})

	t.Run("never empty", func(t *testing.T) {
		assert.NotEmpty(t, GetVersion())
	})
}
