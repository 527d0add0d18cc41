package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"moving/internal/pkg/errs"

	"github.com/google/uuid"
)

const trackingCodePrefix = "MV-"

var trackingCodePattern = regexp.MustCompile(`^MV-[0-9A-F]{10}$`)

// TrackingCode is the human-readable reference printed on an order, e.g.
// "MV-3F9A01C2D4". It is generated once when the order is created.
type TrackingCode string

// NewTrackingCode derives a code from fresh random bytes.
func NewTrackingCode() TrackingCode {
	id := uuid.New()
	hex := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return TrackingCode(trackingCodePrefix + hex[:10])
}

// ParseTrackingCode accepts codes in any letter case.
func ParseTrackingCode(s string) (TrackingCode, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if !trackingCodePattern.MatchString(code) {
		return "", errs.NewValueIsInvalidErrorWithCause("tracking_code", fmt.Errorf("%q is not a tracking code", s))
	}
	return TrackingCode(code), nil
}

func (c TrackingCode) Validate() error {
	if !trackingCodePattern.MatchString(string(c)) {
		return errs.NewValueIsInvalidErrorWithCause("tracking_code", fmt.Errorf("%q is not a tracking code", string(c)))
	}
	return nil
}

func (c TrackingCode) String() string {
	return string(c)
}
