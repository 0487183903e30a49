package commands_test

import (
	"testing"

	"delivery/internal/core/application/usecases/commands"
	"delivery/internal/core/domain/model/kernel"
	"delivery/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func TestNewAssignDeliveryCommand_Success(t *testing.T) {
	tn := kernel.GenerateTrackingNumber()
	cmd, err := commands.NewAssignDeliveryCommand(tn, "driver-42", "vehicle-7")
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	require.True(t, tn.IsEqual(cmd.TrackingNumber()))
	require.Equal(t, "driver-42", cmd.DriverID())
	require.Equal(t, "vehicle-7", cmd.VehicleID())
}

func TestNewAssignDeliveryCommand_ValidationErrors(t *testing.T) {
	tn := kernel.GenerateTrackingNumber()

	tests := []struct {
		name           string
		trackingNumber kernel.TrackingNumber
		driverID       string
		vehicleID      string
	}{
		{"zero tracking number", kernel.TrackingNumber{}, "driver-42", "vehicle-7"},
		{"empty driver ID", tn, "", "vehicle-7"},
		{"empty vehicle ID", tn, "driver-42", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewAssignDeliveryCommand(tt.trackingNumber, tt.driverID, tt.vehicleID)
			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsRequired)
		})
	}
}

func TestAssignDeliveryCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.AssignDeliveryCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrAssignDeliveryCommandIsNotConstructed)
}
