package triage

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
	"time"
)

func TestVisitToExec(t *testing.T) {
	v := &Visit{
		PatientID:  "42",
		Name:       "Duda",
		Priority:   1,
		Department: "er",
		AdmittedAt: time.Date(2021, 04, 29, 20, 1, 34, 0, time.UTC),
		ServedAt:   time.Date(2021, 04, 29, 20, 5, 34, 0, time.UTC),
	}

	args := v.ToExec()
	assert.Len(t, args, strings.Count(v.SQL(), "?"))
	assert.Equal(t, "Duda", args[1])
	assert.Equal(t, 1, args[2])

	data, err := v.MarshalBinary()
	require.NoError(t, err)

	decoded := new(Visit)
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, v.Name, decoded.Name)
	assert.True(t, v.ServedAt.Equal(decoded.ServedAt))
}
