package util_test

import (
	"encoding/json"
	"testing"
	"time"

	util "github.com/saulo-duarte/coach-lambda/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocalDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"DateOnly", "2025-03-08", "2025-03-08"},
		{"RFC3339UTC", "2025-03-08T10:00:00Z", "2025-03-08"},
		{"RFC3339Offset", "2025-03-08T23:30:00+09:00", "2025-03-08"},
		{"NoZone", "2025-03-08T23:30:00", "2025-03-08"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := util.ParseLocalDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}

	t.Run("Invalid", func(t *testing.T) {
		_, err := util.ParseLocalDate("08/03/2025")
		assert.ErrorIs(t, err, util.ErrInvalidDate)

		_, err = util.ParseLocalDate("")
		assert.ErrorIs(t, err, util.ErrInvalidDate)
	})
}

func TestIsWeekend(t *testing.T) {
	// 2025-03-08 is a Saturday.
	start := util.NewLocalDate(2025, time.March, 8)
	want := []bool{true, true, false, false, false, false, false}
	for i, w := range want {
		d := start.AddDays(i)
		assert.Equal(t, w, d.IsWeekend(), d.String())
	}
}

func TestStartOfWeek(t *testing.T) {
	assert.Equal(t, "2025-03-03", util.NewLocalDate(2025, time.March, 9).StartOfWeek().String())
	assert.Equal(t, "2025-03-03", util.NewLocalDate(2025, time.March, 3).StartOfWeek().String())
	assert.Equal(t, "2025-03-03", util.NewLocalDate(2025, time.March, 5).StartOfWeek().String())
}

func TestLocalDateJSON(t *testing.T) {
	var payload struct {
		Date util.LocalDate `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-01-05"}`), &payload))
	assert.Equal(t, time.Sunday, payload.Date.Weekday())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2025-01-05"}`, string(out))

	var empty struct {
		Date util.LocalDate `json:"date"`
	}
	out, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":null}`, string(out))
}

func TestLocalDateScan(t *testing.T) {
	var d util.LocalDate
	require.NoError(t, d.Scan("2025-02-01 00:00:00+00:00"))
	assert.Equal(t, "2025-02-01", d.String())

	require.NoError(t, d.Scan(time.Date(2025, 2, 2, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-02-02", d.String())

	assert.Error(t, d.Scan(42))
}
