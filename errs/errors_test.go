package errs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelsWrapAndUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("reading column 3: %w", ErrUnexpectedTag)
	assert.ErrorIs(t, wrapped, ErrUnexpectedTag)
	assert.NotErrorIs(t, wrapped, ErrBadSignature)
}
