package triage

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestNullJournal(t *testing.T) {
	j := NewNullJournal()

	assert.NoError(t, j.Push(&Visit{Name: "X"}))
	assert.Equal(t, 0, j.Len())

	visits, err := j.Eject(-1)
	assert.NoError(t, err)
	assert.Nil(t, visits)
}
