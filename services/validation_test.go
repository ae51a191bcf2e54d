package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldKey(t *testing.T) {
	assert.Equal(t, "nama_liga", fieldKey("LeagueInput.nama_liga"))
	assert.Equal(t, "klub.3", fieldKey("FanInput.klub[3]"))
	assert.Equal(t, "klub", fieldKey("klub"))
}

func TestValidationErrorKeepsFirstMessage(t *testing.T) {
	verr := newValidationError()
	assert.NoError(t, verr.Err())

	verr.Add("negara", "first")
	verr.Add("negara", "second")
	assert.Equal(t, "first", verr.Fields["negara"])
	assert.ErrorIs(t, verr.Err(), ErrValidationFailed)
	assert.Contains(t, verr.Error(), "negara")
}

func TestDiffIDs(t *testing.T) {
	toAdd, toRemove := diffIDs([]int{1, 2, 3}, []int{3, 4, 2})
	assert.Equal(t, []int{4}, toAdd)
	assert.Equal(t, []int{1}, toRemove)

	toAdd, toRemove = diffIDs([]int{1, 2}, []int{2, 1})
	assert.Empty(t, toAdd)
	assert.Empty(t, toRemove)

	toAdd, toRemove = diffIDs(nil, []int{5})
	assert.Equal(t, []int{5}, toAdd)
	assert.Empty(t, toRemove)
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []int{3, 1, 2}, uniqueIDs([]int{3, 1, 3, 2, 1}))
	assert.Empty(t, uniqueIDs(nil))
}
