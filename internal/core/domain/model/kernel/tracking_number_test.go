package kernel_test

import (
	"strings"
	"testing"

	"delivery/internal/core/domain/model/kernel"
	"delivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTrackingNumber(t *testing.T) {
	t.Run("matches wire format", func(t *testing.T) {
		tn := kernel.GenerateTrackingNumber()

		require.NoError(t, tn.Validate())
		assert.True(t, strings.HasPrefix(tn.String(), "DEL"))
		assert.Len(t, tn.String(), 24)
	})

	t.Run("successive generations are unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 1000 {
			tn := kernel.GenerateTrackingNumber()
			require.False(t, seen[tn.String()], "duplicate tracking number %s", tn.String())
			seen[tn.String()] = true
		}
	})

	t.Run("round-trips through string parsing", func(t *testing.T) {
		tn := kernel.GenerateTrackingNumber()

		parsed, err := kernel.TrackingNumberFromString(tn.String())
		require.NoError(t, err)
		assert.True(t, tn.IsEqual(parsed))
	})
}

func TestTrackingNumberFromString(t *testing.T) {
	t.Run("accepts well-formed value", func(t *testing.T) {
		tn, err := kernel.TrackingNumberFromString("DEL1717171717171A1B2C3D4")

		require.NoError(t, err)
		assert.Equal(t, "DEL1717171717171A1B2C3D4", tn.String())
		require.NoError(t, tn.Validate())
	})

	t.Run("rejects empty value", func(t *testing.T) {
		_, err := kernel.TrackingNumberFromString("")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		malformed := []string{
			"DEL",
			"1717171717171A1B2C3D4",
			"DEL1717171717171a1b2c3d4", // lowercase suffix
			"DEL171717171717A1B2C3D4",  // 12-digit timestamp
			"PKG1717171717171A1B2C3D4", // wrong prefix
			"DEL1717171717171A1B2C3D42",
		}

		for _, value := range malformed {
			_, err := kernel.TrackingNumberFromString(value)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, "value %q should be rejected", value)
		}
	})
}

func TestTrackingNumber_Validate(t *testing.T) {
	t.Run("zero value is not constructed", func(t *testing.T) {
		var tn kernel.TrackingNumber

		err := tn.Validate()
		require.Error(t, err)
		assert.Equal(t, kernel.ErrTrackingNumberIsNotConstructed, err)
	})
}

func TestTrackingNumber_IsEqual(t *testing.T) {
	t.Run("equal by value", func(t *testing.T) {
		a, err := kernel.TrackingNumberFromString("DEL1717171717171A1B2C3D4")
		require.NoError(t, err)
		b, err := kernel.TrackingNumberFromString("DEL1717171717171A1B2C3D4")
		require.NoError(t, err)

		assert.True(t, a.IsEqual(b))
	})

	t.Run("different values are not equal", func(t *testing.T) {
		a := kernel.GenerateTrackingNumber()
		b := kernel.GenerateTrackingNumber()

		assert.False(t, a.IsEqual(b))
	})
}
