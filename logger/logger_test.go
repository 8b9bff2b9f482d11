package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskSensitiveString(t *testing.T) {
	assert.Equal(t, "", MaskSensitiveString("", 2, 2))
	assert.Equal(t, "*****", MaskSensitiveString("short", 2, 2))
	assert.Equal(t, "ab...yz", MaskSensitiveString("abcdefghijklmnopqrstuvwxyz", 2, 2))
}

func TestMaskDocumentNumber(t *testing.T) {
	assert.Equal(t, "", MaskDocumentNumber(""))
	assert.Equal(t, "******", MaskDocumentNumber("AB1234"))
	assert.Equal(t, "AB...67", MaskDocumentNumber("AB1234567"))
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "", MaskEmail(""))
	assert.Equal(t, "ja...e@example.com", MaskEmail("jane.doe@example.com"))
	// Invalid format falls back to generic masking.
	assert.Equal(t, "no...il", MaskEmail("not-an-email"))
}
