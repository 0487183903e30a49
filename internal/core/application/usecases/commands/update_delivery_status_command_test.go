package commands_test

import (
	"testing"

	"delivery/internal/core/application/usecases/commands"
	"delivery/internal/core/domain/model/delivery"
	"delivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

func TestNewUpdateDeliveryStatusCommand_Success(t *testing.T) {
	tn := kernel.GenerateTrackingNumber()
	notes := "recipient confirmed by phone"
	cmd, err := commands.NewUpdateDeliveryStatusCommand(tn, delivery.OutForDelivery, &notes)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	require.True(t, tn.IsEqual(cmd.TrackingNumber()))
	require.Equal(t, delivery.OutForDelivery, cmd.Status())
	require.NotNil(t, cmd.Notes())
	require.Equal(t, notes, *cmd.Notes())
}

func TestNewUpdateDeliveryStatusCommand_NilNotes(t *testing.T) {
	cmd, err := commands.NewUpdateDeliveryStatusCommand(
		kernel.GenerateTrackingNumber(), delivery.Delivered, nil)
	require.NoError(t, err)
	require.Nil(t, cmd.Notes())
}

func TestNewUpdateDeliveryStatusCommand_ValidationErrors(t *testing.T) {
	tn := kernel.GenerateTrackingNumber()

	tests := []struct {
		name           string
		trackingNumber kernel.TrackingNumber
		status         delivery.Status
	}{
		{"zero tracking number", kernel.TrackingNumber{}, delivery.Delivered},
		{"unknown status", tn, delivery.Unknown},
		{"out of range status", tn, delivery.Status(100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewUpdateDeliveryStatusCommand(tt.trackingNumber, tt.status, nil)
			require.Error(t, err)
		})
	}
}

func TestUpdateDeliveryStatusCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.UpdateDeliveryStatusCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrUpdateDeliveryStatusCommandIsNotConstructed)
}
