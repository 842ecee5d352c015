package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestAddAndRemoveWriter(t *testing.T) {
	logger := NewLogger(zerolog.InfoLevel, false)

	var buf1, buf2 bytes.Buffer
	logger.AddWriter(&buf1, UNSTRUCTURED)
	logger.AddWriter(&buf2, STRUCTURED)
	assert.Equal(t, 2, len(logger.writers))

	// Adding the same writer again is a no-op.
	logger.AddWriter(&buf1, UNSTRUCTURED)
	assert.Equal(t, 2, len(logger.writers))
}

func TestSetLevel(t *testing.T) {
	logger := NewLogger(zerolog.InfoLevel, false)
	assert.Equal(t, zerolog.InfoLevel, logger.Level())

	logger.SetLevel(zerolog.WarnLevel)
	assert.Equal(t, zerolog.WarnLevel, logger.Level())
}

func TestNewSubLogger(t *testing.T) {
	logger := NewLogger(zerolog.InfoLevel, false)
	sub := logger.NewSubLogger("module", "checker")
	assert.Equal(t, logger.Level(), sub.Level())
}
