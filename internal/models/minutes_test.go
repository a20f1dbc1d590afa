package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinutesNumericValue(t *testing.T) {
	m := Minutes{Raw: "7"}

	n, ok := m.Value()
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "7", string(b))
}

func TestMinutesTerminalStatePassesThroughVerbatim(t *testing.T) {
	m := Minutes{Raw: ArrivalEnded}

	_, ok := m.Value()
	assert.False(t, ok, "terminal state must not parse as a number")
	assert.Equal(t, "운행종료", m.String())

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"운행종료"`, string(b))
}

func TestMinutesEmptyMarshalsAsNull(t *testing.T) {
	b, err := json.Marshal(Minutes{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestMinutesUnmarshalRoundTrip(t *testing.T) {
	var m Minutes
	require.NoError(t, json.Unmarshal([]byte("12"), &m))
	assert.Equal(t, "12", m.Raw)

	require.NoError(t, json.Unmarshal([]byte(`"출발대기"`), &m))
	assert.Equal(t, ArrivalNotRunning, m.Raw)

	require.NoError(t, json.Unmarshal([]byte("null"), &m))
	assert.True(t, m.IsZero())
}
