package util

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestClassifiers(t *testing.T) {
	assert.True(t, IsNumber('7'))
	assert.False(t, IsNumber('a'))
	assert.True(t, IsLetterOrUnderscore('_'))
	assert.False(t, IsLetterOrUnderscore('1'))
	assert.True(t, IsLetterOrUnderscoreOrNumber('1'))
	assert.False(t, IsLetterOrUnderscoreOrNumber('-'))
	for _, b := range []byte(" \t\n\r\f\v") {
		assert.True(t, IsSpace(b))
	}
	assert.False(t, IsSpace('x'))
}
