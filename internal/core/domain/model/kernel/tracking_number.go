package kernel

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"delivery/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrTrackingNumberIsNotConstructed indicates that a TrackingNumber was not
// properly initialized through one of the constructor functions. This error is
// returned when validating a zero-value TrackingNumber.
var ErrTrackingNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"TrackingNumber must be created via GenerateTrackingNumber or TrackingNumberFromString",
)

// trackingNumberPattern matches the wire format of a tracking number:
// the literal "DEL" prefix, thirteen epoch-millisecond digits, and an
// eight-character uppercase hexadecimal suffix.
var trackingNumberPattern = regexp.MustCompile(`^DEL\d{13}[0-9A-F]{8}$`)

// trackingSuffixLength is the number of random hex characters appended after
// the timestamp component.
const trackingSuffixLength = 8

// TrackingNumber is a value object that represents the externally visible,
// globally unique identifier of a delivery. It is distinct from the internal
// storage key: tracking numbers are handed to customers, printed on labels,
// and used as the partition key for delivery events, so once assigned they
// are immutable and never reused.
//
// A tracking number combines a millisecond wall-clock timestamp with an
// eight-character random suffix, prefixed with the literal "DEL" tag, e.g.
// "DEL1717171717171A1B2C3D4". Collisions are negligible but not impossible;
// callers persisting a new delivery must treat a uniqueness violation as a
// retryable condition and regenerate.
//
// The zero value of TrackingNumber is invalid and must be constructed using
// GenerateTrackingNumber or TrackingNumberFromString.
//
// TrackingNumber is immutable and thread-safe, making it suitable for
// concurrent use.
//
// Example usage:
//
//	// Generate a fresh tracking number for a new delivery
//	tn := kernel.GenerateTrackingNumber()
//
//	// Reconstruct from persistence or an API path parameter
//	tn, err := kernel.TrackingNumberFromString("DEL1717171717171A1B2C3D4")
//	if err != nil {
//	    // handle invalid format
//	}
type TrackingNumber struct {
	value string
}

// GenerateTrackingNumber produces a new tracking number from the current
// wall-clock time and a random suffix. This is the primary way to mint
// identifiers for newly created deliveries.
//
// Example:
//
//	tn := kernel.GenerateTrackingNumber()
//	fmt.Println(tn.String()) // e.g. "DEL1717171717171A1B2C3D4"
func GenerateTrackingNumber() TrackingNumber {
	millis := strconv.FormatInt(time.Now().UnixMilli(), 10)
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:trackingSuffixLength])
	return TrackingNumber{value: "DEL" + millis + suffix}
}

// TrackingNumberFromString parses a tracking number from its string
// representation, validating the wire format. It is typically used when
// reconstructing deliveries from persistence or parsing path parameters.
//
// Returns an error if the string does not match the tracking number format.
//
// Example:
//
//	tn, err := kernel.TrackingNumberFromString(c.Param("trackingNumber"))
//	if err != nil {
//	    return fmt.Errorf("invalid tracking number: %w", err)
//	}
func TrackingNumberFromString(s string) (TrackingNumber, error) {
	if s == "" {
		return TrackingNumber{}, errs.NewValueIsRequiredError("trackingNumber")
	}
	if !trackingNumberPattern.MatchString(s) {
		return TrackingNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"trackingNumber",
			fmt.Errorf("%q does not match the tracking number format", s),
		)
	}
	return TrackingNumber{value: s}, nil
}

// String returns the wire representation of the tracking number.
// For a zero value this returns the empty string.
func (t TrackingNumber) String() string {
	return t.value
}

// IsEqual compares two tracking numbers by value.
func (t TrackingNumber) IsEqual(other TrackingNumber) bool {
	return t.value == other.value
}

// Validate checks that the tracking number was created through a constructor
// and carries a well-formed value. The zero value fails with
// ErrTrackingNumberIsNotConstructed.
func (t TrackingNumber) Validate() error {
	if t.value == "" {
		return ErrTrackingNumberIsNotConstructed
	}
	if !trackingNumberPattern.MatchString(t.value) {
		return errs.NewValueIsInvalidErrorWithCause(
			"trackingNumber",
			fmt.Errorf("%q does not match the tracking number format", t.value),
		)
	}
	return nil
}
