package crm

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActivity(t *testing.T) {
	ownerID := uuid.New()
	occurred := time.Now().Add(-2 * time.Hour)

	t.Run("creates activity with valid inputs", func(t *testing.T) {
		activity, err := NewActivity(ownerID, InteractionMeeting, "Onsite visit", occurred)
		require.NoError(t, err)
		require.NotNil(t, activity)

		assert.Equal(t, ownerID, activity.OwnerID)
		assert.Equal(t, InteractionMeeting, activity.Type)
		assert.True(t, activity.OccurredAt.Equal(occurred))
	})

	t.Run("zero occurrence time defaults to now", func(t *testing.T) {
		activity, err := NewActivity(ownerID, InteractionCall, "Intro call", time.Time{})
		require.NoError(t, err)
		assert.False(t, activity.OccurredAt.IsZero())
	})

	t.Run("fails with empty subject", func(t *testing.T) {
		_, err := NewActivity(ownerID, InteractionCall, "", occurred)
		require.Error(t, err)
	})

	t.Run("fails with invalid type", func(t *testing.T) {
		_, err := NewActivity(ownerID, InteractionType("visit"), "Onsite", occurred)
		require.Error(t, err)
	})
}

func TestActivity_Builders(t *testing.T) {
	ownerID := uuid.New()

	t.Run("sets outcome and duration", func(t *testing.T) {
		activity, err := NewActivity(ownerID, InteractionDemo, "Product demo", time.Now())
		require.NoError(t, err)

		outcome := OutcomePositive
		activity, err = activity.WithOutcome(&outcome)
		require.NoError(t, err)

		mins := 45
		activity, err = activity.WithDuration(&mins)
		require.NoError(t, err)

		activity.WithNotes("Asked about pricing tiers")

		assert.Equal(t, OutcomePositive, *activity.Outcome)
		assert.Equal(t, 45, *activity.DurationMins)
		assert.Equal(t, "Asked about pricing tiers", activity.Notes)
	})

	t.Run("rejects invalid outcome", func(t *testing.T) {
		activity, err := NewActivity(ownerID, InteractionDemo, "Product demo", time.Now())
		require.NoError(t, err)

		outcome := ActivityOutcome("mixed")
		_, err = activity.WithOutcome(&outcome)
		require.Error(t, err)
	})

	t.Run("rejects negative duration", func(t *testing.T) {
		activity, err := NewActivity(ownerID, InteractionDemo, "Product demo", time.Now())
		require.NoError(t, err)

		mins := -5
		_, err = activity.WithDuration(&mins)
		require.Error(t, err)
	})

	t.Run("links related records", func(t *testing.T) {
		activity, err := NewActivity(ownerID, InteractionEmail, "Sent proposal", time.Now())
		require.NoError(t, err)

		facilityID := uuid.New()
		contactID := uuid.New()
		activity.Link(&facilityID, &contactID, nil)
		assert.Equal(t, facilityID, *activity.FacilityID)
		assert.Equal(t, contactID, *activity.ContactID)
		assert.Nil(t, activity.DealID)
	})
}
