package geo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrPermissionDenied    = errors.New("location permission denied, enable GPS access for this app")
	ErrPositionUnavailable = errors.New("location unavailable, make sure GPS is on")
	ErrTimeout             = errors.New("location request timed out, try again")
)

// Device error codes, as produced by the browser geolocation API.
const (
	CodePermissionDenied    = "PERMISSION_DENIED"
	CodePositionUnavailable = "POSITION_UNAVAILABLE"
	CodeTimeout             = "TIMEOUT"
)

// Locator acquires the current position of a device.
type Locator interface {
	Locate(ctx context.Context) (Position, error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context) (Position, error)

func (f LocatorFunc) Locate(ctx context.Context) (Position, error) { return f(ctx) }

// Report is what a device sends with a clock-in: either coordinates or the
// error its geolocation API returned.
type Report struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Accuracy  float64  `json:"accuracy"`
	ErrorCode string   `json:"error_code"`
}

func (r Report) Locate(ctx context.Context) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, err
	}

	switch strings.ToUpper(strings.TrimSpace(r.ErrorCode)) {
	case "":
	case CodePermissionDenied, "1":
		return Position{}, ErrPermissionDenied
	case CodePositionUnavailable, "2":
		return Position{}, ErrPositionUnavailable
	case CodeTimeout, "3":
		return Position{}, ErrTimeout
	default:
		return Position{}, fmt.Errorf("%w: unknown device error %q", ErrPositionUnavailable, r.ErrorCode)
	}

	if r.Latitude == nil || r.Longitude == nil {
		return Position{}, ErrPositionUnavailable
	}
	if *r.Latitude < -90 || *r.Latitude > 90 || *r.Longitude < -180 || *r.Longitude > 180 {
		return Position{}, fmt.Errorf("%w: coordinates out of range", ErrPositionUnavailable)
	}
	return Position{Latitude: *r.Latitude, Longitude: *r.Longitude, Accuracy: r.Accuracy}, nil
}

// Resolve asks l for a position within timeout. A result that arrives after
// the deadline or after ctx is cancelled is discarded.
func Resolve(ctx context.Context, l Locator, timeout time.Duration) (Position, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pos, err := l.Locate(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return Position{}, ErrTimeout
		}
		return Position{}, ctxErr
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Position{}, ErrTimeout
		}
		return Position{}, err
	}
	return pos, nil
}
