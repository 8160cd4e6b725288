package geo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var offices = []Site{
	{Key: "makassar", Name: "Kantor Makassar", Latitude: -5.135399, Longitude: 119.423790, RadiusMeters: 100},
	{Key: "denpasar", Name: "Kantor Denpasar", Latitude: -8.670458, Longitude: 115.212629, RadiusMeters: 100},
	{Key: "palu", Name: "Kantor Palu", Latitude: -0.900211, Longitude: 119.877888, RadiusMeters: 100},
}

func TestDistance(t *testing.T) {
	// Makassar to Denpasar is roughly 609 km.
	d := Distance(-5.135399, 119.423790, -8.670458, 115.212629)
	assert.InDelta(t, 608719, d, 1000)

	assert.Zero(t, Distance(-5.1, 119.4, -5.1, 119.4))
}

func TestNearest_Boundary(t *testing.T) {
	makassar := Position{Latitude: offices[0].Latitude, Longitude: offices[0].Longitude}

	cases := []struct {
		name   string
		meters float64
		within bool
	}{
		{"at office", 0, true},
		{"inside", 50, true},
		{"exactly at radius", 100, true},
		{"one meter past radius", 101, false},
		{"south past radius", -150, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			check, ok := Nearest(OffsetNorth(makassar, c.meters), offices)

			require.True(t, ok)
			assert.Equal(t, "makassar", check.Site.Key)
			assert.Equal(t, c.within, check.Within)
			abs := c.meters
			if abs < 0 {
				abs = -abs
			}
			assert.InDelta(t, abs, check.DistanceMeters, 1e-6)
		})
	}
}

func TestNearest_PicksClosestOffice(t *testing.T) {
	nearPalu := Position{Latitude: -0.95, Longitude: 119.88}

	check, ok := Nearest(nearPalu, offices)

	require.True(t, ok)
	assert.Equal(t, "palu", check.Site.Key)
	assert.False(t, check.Within)
	assert.Greater(t, check.DistanceMeters, 5000.0)
}

func TestNearest_NoSites(t *testing.T) {
	_, ok := Nearest(Position{}, nil)
	assert.False(t, ok)
}

func TestReport_Locate(t *testing.T) {
	lat, lng := -5.1354, 119.4238
	badLat := 95.0

	cases := []struct {
		name    string
		report  Report
		wantErr error
	}{
		{"coordinates", Report{Latitude: &lat, Longitude: &lng, Accuracy: 12}, nil},
		{"permission denied", Report{ErrorCode: "PERMISSION_DENIED"}, ErrPermissionDenied},
		{"numeric permission code", Report{ErrorCode: "1"}, ErrPermissionDenied},
		{"unavailable", Report{ErrorCode: "position_unavailable"}, ErrPositionUnavailable},
		{"timeout", Report{ErrorCode: "TIMEOUT"}, ErrTimeout},
		{"missing coordinates", Report{}, ErrPositionUnavailable},
		{"out of range", Report{Latitude: &badLat, Longitude: &lng}, ErrPositionUnavailable},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pos, err := c.report.Locate(context.Background())
			if c.wantErr != nil {
				assert.ErrorIs(t, err, c.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, lat, pos.Latitude)
			assert.Equal(t, 12.0, pos.Accuracy)
		})
	}
}

func TestResolve_TimesOut(t *testing.T) {
	slow := LocatorFunc(func(ctx context.Context) (Position, error) {
		<-ctx.Done()
		return Position{Latitude: 1}, nil
	})

	_, err := Resolve(context.Background(), slow, 20*time.Millisecond)

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestResolve_DiscardsResultAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	late := LocatorFunc(func(context.Context) (Position, error) {
		cancel()
		return Position{Latitude: 1}, nil
	})

	_, err := Resolve(ctx, late, time.Second)

	assert.True(t, errors.Is(err, context.Canceled))
}

func TestResolve_PassesThroughDeviceErrors(t *testing.T) {
	_, err := Resolve(context.Background(), Report{ErrorCode: CodePermissionDenied}, time.Second)

	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.NotErrorIs(t, err, ErrTimeout)
}
