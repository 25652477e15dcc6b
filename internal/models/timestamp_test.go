package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	want := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "epoch millis number", input: `1717245000000`, want: want},
		{name: "epoch millis string", input: `"1717245000000"`, want: want},
		{name: "rfc3339 string", input: `"2024-06-01T12:30:00.000Z"`, want: want},
		{name: "null", input: `null`},
		{name: "empty string", input: `""`},
		{name: "garbage string", input: `"next tuesday"`, wantErr: true},
		{name: "boolean", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.input), &ts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(ts.Time), "got %v", ts.Time)
		})
	}
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(NewTimestamp(time.UnixMilli(1717245000000)))
	require.NoError(t, err)
	assert.Equal(t, "1717245000000", string(data))

	data, err = json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}
