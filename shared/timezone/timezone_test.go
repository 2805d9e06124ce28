package timezone_test

import (
	"testing"
	"time"

	"bistro/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useZone(t *testing.T, name string) {
	t.Helper()

	previous := timezone.Location().String()

	require.NoError(t, timezone.Load(name))
	t.Cleanup(func() { _ = timezone.Load(previous) })
}

func TestLoad(t *testing.T) {
	useZone(t, "Asia/Kolkata")

	assert.Equal(t, "Asia/Kolkata", timezone.Location().String())
	assert.Equal(t, "Asia/Kolkata", timezone.Now().Location().String())

	err := timezone.Load("Mars/Olympus_Mons")

	require.Error(t, err)
	assert.Equal(t, time.UTC, timezone.Location())
}

func TestFormatUsesRestaurantZone(t *testing.T) {
	useZone(t, "Asia/Kolkata")

	instant := time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-03-15 01:30", timezone.Format(instant, "2006-01-02 15:04"))
	assert.Equal(t, "2025-03-15", timezone.StartOfDay(instant).Format(time.DateOnly))
}

func TestParseDate(t *testing.T) {
	useZone(t, "UTC")

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "iso date", input: "2025-03-14", want: "2025-03-14"},
		{name: "us date", input: "03/14/2025", want: "2025-03-14"},
		{name: "datetime", input: "2025-03-14T18:30:00", want: "2025-03-14"},
		{name: "padded", input: " 2025-03-14 ", want: "2025-03-14"},
		{name: "garbage", input: "next friday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timezone.ParseDate(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, timezone.ErrInvalidDate)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format(time.DateOnly))
			assert.Zero(t, got.Hour())
			assert.Zero(t, got.Minute())
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{name: "24h", input: "18:30", wantHour: 18, wantMinute: 30},
		{name: "with seconds", input: "07:05:00", wantHour: 7, wantMinute: 5},
		{name: "12h pm", input: "6:30 PM", wantHour: 18, wantMinute: 30},
		{name: "12h lower case", input: "6:30 pm", wantHour: 18, wantMinute: 30},
		{name: "12h compact", input: "11:15AM", wantHour: 11, wantMinute: 15},
		{name: "out of range", input: "25:00", wantErr: true},
		{name: "garbage", input: "dinner", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, minute, err := timezone.ParseClock(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, timezone.ErrInvalidClock)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantHour, hour)
			assert.Equal(t, tt.wantMinute, minute)
		})
	}
}

func TestCombine(t *testing.T) {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	assert.True(t, timezone.Combine(day, 19, 45).Equal(time.Date(2025, 3, 14, 19, 45, 0, 0, time.UTC)))
}

func TestNormalizeClock(t *testing.T) {
	cases := map[string]string{
		"7:05 pm":  "19:05",
		"09:30":    "09:30",
		"23:59:59": "23:59",
	}

	for input, want := range cases {
		got, err := timezone.NormalizeClock(input)

		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := timezone.NormalizeClock("25:99")
	assert.ErrorIs(t, err, timezone.ErrInvalidClock)
}
