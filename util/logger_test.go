package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	for _, env := range []string{"test", "development", "production"} {
		l, err := InitLogger(env)
		require.NoError(t, err)
		assert.Same(t, l, Logger())
	}
}

func TestSetLogger_NilInstallsNop(t *testing.T) {
	SetLogger(nil)
	assert.NotNil(t, Logger())
}
