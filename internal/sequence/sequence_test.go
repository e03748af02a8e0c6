package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPadsToFourDigits(t *testing.T) {
	assert.Equal(t, "0001", Format(1))
	assert.Equal(t, "0042", Format(42))
	assert.Equal(t, "9999", Format(9999))
	assert.Equal(t, "10000", Format(10000))
}
