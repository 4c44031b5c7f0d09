package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiErrors_Error(t *testing.T) {
	errs := NewMultiErrors()
	assert.False(t, errs.HasErrors())

	errs.Add("to[1]", "invalid email address", nil)
	errs.Add("cc[0]", "invalid email address", nil)
	errs.Add("to[1]", "duplicate", nil)

	assert.True(t, errs.HasErrors())
	assert.Equal(t, "cc[0]: invalid email address | to[1]: invalid email address | to[1]: duplicate", errs.Error())
}
