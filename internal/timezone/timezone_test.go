package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	c := MustLoad("Asia/Jakarta")

	civil := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC) // wall-clock fields only
	utc := c.ToUTC(civil)
	back := c.ToLocal(utc)

	require.Equal(t, civil.Year(), back.Year())
	require.Equal(t, civil.Month(), back.Month())
	require.Equal(t, civil.Day(), back.Day())
	require.Equal(t, civil.Hour(), back.Hour())
	require.Equal(t, civil.Minute(), back.Minute())
	require.Equal(t, civil.Second(), back.Second())
}

func TestToUTCAppliesConfiguredOffset(t *testing.T) {
	c := MustLoad("Asia/Jakarta") // UTC+7, no DST

	local := time.Date(2024, 1, 1, 7, 0, 0, 0, time.UTC)
	utc := c.ToUTC(local)
	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), utc)
}

func TestZeroValuePassesThrough(t *testing.T) {
	c := MustLoad("")
	require.True(t, c.ToLocal(time.Time{}).IsZero())
	require.True(t, c.ToUTC(time.Time{}).IsZero())
	require.Empty(t, c.Format(time.Time{}))
	require.Empty(t, c.FormatAPI(time.Time{}))
}

func TestDefaultZone(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "Asia/Jakarta", c.Zone())

	_, err = Load("Not/AZone")
	require.Error(t, err)
}

func TestParseAPICivil(t *testing.T) {
	c := MustLoad("Asia/Jakarta")

	got, err := c.ParseAPI("2024-06-10T14:45:30")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 6, 10, 7, 45, 30, 0, time.UTC), got)
	require.Equal(t, "2024-06-10T14:45:30", c.FormatAPI(got))
}

func TestParseAPIWithOffset(t *testing.T) {
	c := MustLoad("Asia/Jakarta")

	got, err := c.ParseAPI("2024-06-10T14:45:30Z")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 6, 10, 14, 45, 30, 0, time.UTC), got)

	got, err = c.ParseAPI("2024-06-10T14:45:30+07:00")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 6, 10, 7, 45, 30, 0, time.UTC), got)
}

func TestParseAPIRejectsGarbage(t *testing.T) {
	c := MustLoad("Asia/Jakarta")

	_, err := c.ParseAPI("")
	require.Error(t, err)
	_, err = c.ParseAPI("10/06/2024")
	require.Error(t, err)
}

func TestFormatUsesConfiguredZone(t *testing.T) {
	c := MustLoad("Asia/Jakarta")

	utc := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "2024-06-10 07:00:00", c.Format(utc))
}
