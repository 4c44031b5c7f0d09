package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueEmails(t *testing.T) {
	emails := []string{"jane@example.com", "bob@example.com", "Jane@Example.com", " bob@example.com"}

	assert.Equal(t, []string{"jane@example.com", "bob@example.com"}, UniqueEmails(emails))
	assert.Empty(t, UniqueEmails(nil))
}
