package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"1987-06-24"`), &d))
	assert.Equal(t, 1987, d.Year())
	assert.Equal(t, time.June, d.Month())
	assert.Equal(t, 24, d.Day())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"1987-06-24"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"24/06/1987"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`19870624`), &d))

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())
	out, err = json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestDateScanAndValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2001, 2, 3, 15, 4, 5, 0, time.FixedZone("WIB", 7*3600))))
	assert.Equal(t, "2001-02-03", d.String())

	require.NoError(t, d.Scan([]byte("1999-12-31")))
	assert.Equal(t, "1999-12-31", d.String())

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "1999-12-31", v)

	assert.Error(t, d.Scan(42))

	var zero Date
	v, err = zero.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestPlayerPositionIsValid(t *testing.T) {
	for _, p := range []PlayerPosition{PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward} {
		assert.True(t, p.IsValid(), p)
	}
	assert.False(t, PlayerPosition("st").IsValid())
	assert.False(t, PlayerPosition("").IsValid())
}
