package fraud

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampUnmarshalShapes(t *testing.T) {
	want := time.Date(2026, time.January, 10, 9, 30, 0, 0, time.UTC)
	sec := want.Unix()

	tests := []struct {
		name string
		raw  string
	}{
		{"rfc3339 string", `"2026-01-10T09:30:00Z"`},
		{"temporal object", `{"seconds":` + jsonInt(sec) + `,"nanos":0}`},
		{"exported temporal object", `{"_seconds":` + jsonInt(sec) + `,"_nanoseconds":0}`},
		{"epoch millis", jsonInt(sec * 1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &ts))
			assert.True(t, ts.Equal(want), "got %s", ts.Time)
		})
	}
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func TestTimestampUnmarshalDateOnly(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"1990-04-12"`), &ts))
	assert.Equal(t, 1990, ts.Year())
}

func TestTimestampUnmarshalNullAndEmpty(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`""`), &ts))
	assert.True(t, ts.IsZero())
}

func TestTimestampUnmarshalRejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`{"minutes":5}`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`true`), &ts))
}

func TestTimestampMarshal(t *testing.T) {
	at := time.Date(2026, time.January, 10, 9, 30, 0, 0, time.UTC)

	got, err := json.Marshal(NewTimestamp(at))
	require.NoError(t, err)
	assert.Equal(t, `"2026-01-10T09:30:00Z"`, string(got))

	got, err = json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(got))
}

func TestMessageDecodesNestedTimestamp(t *testing.T) {
	raw := `{"senderId":"user-1","content":"hey","createdAt":{"_seconds":1767951000,"_nanoseconds":0}}`

	var msg Message
	require.NoError(t, json.Unmarshal([]byte(raw), &msg))

	assert.Equal(t, "user-1", msg.SenderID)
	assert.False(t, msg.CreatedAt.IsZero())
}
