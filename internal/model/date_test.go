package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2010-06-15")
	require.NoError(t, err)
	assert.Equal(t, 2010, d.Year())
	assert.Equal(t, time.June, d.Month())
	assert.Equal(t, 15, d.Day())

	d, err = ParseDate("2010-06-15T08:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2010-06-15", d.String())

	_, err = ParseDate("15/06/2010")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2010, time.June, 15)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2010-06-15"`, string(raw))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`"2010-06-15"`), &parsed))
	assert.Equal(t, d, parsed)

	var null Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &null))
	assert.True(t, null.IsZero())
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2010, time.June, 15, 13, 45, 0, 0, time.Local)))
	assert.Equal(t, "2010-06-15", d.String())

	require.NoError(t, d.Scan([]byte("2011-01-02")))
	assert.Equal(t, "2011-01-02", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
}
