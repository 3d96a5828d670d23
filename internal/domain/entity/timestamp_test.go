package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalLayouts(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"rfc3339", `"2024-12-01T15:45:00Z"`, time.Date(2024, 12, 1, 15, 45, 0, 0, time.UTC)},
		{"zone-less iso", `"2025-03-04T05:06:07.123456"`, time.Date(2025, 3, 4, 5, 6, 7, 123456000, time.UTC)},
		{"date only", `"2023-01-15"`, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %v", ts.Time)
		})
	}
}

func TestTimestamp_PassesThroughUnparseable(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"last tuesday"`), &ts))
	assert.True(t, ts.IsZero())
	assert.Equal(t, "last tuesday", ts.Raw)

	require.NoError(t, json.Unmarshal([]byte(`1700000000`), &ts))
	assert.Equal(t, "1700000000", ts.Raw)
	assert.True(t, ts.IsZero())

	out, err := json.Marshal(Timestamp{Raw: "last tuesday"})
	require.NoError(t, err)
	assert.JSONEq(t, `"last tuesday"`, string(out))
}

func TestTimestamp_EmitsNonStringLiteralVerbatim(t *testing.T) {
	for _, raw := range []string{`1700000000`, `true`, `{"unix":1700000000}`} {
		t.Run(raw, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(raw), &ts))

			out, err := json.Marshal(ts)
			require.NoError(t, err)
			assert.JSONEq(t, raw, string(out))
		})
	}
}

func TestTimestamp_NullRoundTrip(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())

	out, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestNewDate(t *testing.T) {
	d := NewDate(time.Date(2026, 10, 16, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, "2026-10-16", d.Raw)
	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), d.Day())

	out, err := json.Marshal(TimelineEntry{Date: d, TxCount: 3, VolumeNative: 1.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2026-10-16","tx_count":3,"volume_eth":1.5}`, string(out))
}
