package challenge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/MilesT98/Actify/internal/models"
	"github.com/MilesT98/Actify/internal/notify"
	"github.com/MilesT98/Actify/internal/store"
)

func TestLedger_Submit(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 12, 16, 0, 0, 0, time.UTC)
	day := time.Date(2025, 6, 12, 8, 0, 0, 0, time.UTC)

	t.Run("RecordsSubmission", func(t *testing.T) {
		st := store.NewMemoryStore()
		alice := seedUser(st, "alice")
		bob := seedUser(st, "bob")
		group := seedGroup(st, "Crew", []string{alice.ID}, alice.ID, bob.ID)
		activity := seedSelectedActivity(st, group.ID, alice.ID, "Cold shower", day)

		ledger := NewLedger(st, notify.Discard{})
		sub, err := ledger.Submit(ctx, activity.ID, bob.ID, "https://photos.example.com/p1.jpg", SubmissionInput{Caption: "brrr"}, now)
		require.NoError(t, err)

		assert.Equal(t, activity.ID, sub.ActivityID)
		assert.Equal(t, bob.ID, sub.UserID)
		assert.Equal(t, "brrr", sub.Caption)
		assert.Empty(t, sub.Votes)
		assert.Empty(t, sub.Reactions)
		assert.False(t, sub.IsFeatured)

		// Compteur de défis complétés incrémenté
		updated, err := st.GetUser(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.CompletedChallenges)

		// Un seul des deux membres a soumis : activité pas encore complétée
		stored, err := st.GetActivity(ctx, activity.ID)
		require.NoError(t, err)
		assert.False(t, stored.IsCompleted)
	})

	t.Run("CompletesActivityWhenAllMembersSubmitted", func(t *testing.T) {
		st := store.NewMemoryStore()
		alice := seedUser(st, "alice")
		bob := seedUser(st, "bob")
		group := seedGroup(st, "Crew", []string{alice.ID}, alice.ID, bob.ID)
		activity := seedSelectedActivity(st, group.ID, alice.ID, "Cold shower", day)

		ledger := NewLedger(st, notify.Discard{})
		_, err := ledger.Submit(ctx, activity.ID, bob.ID, "https://photos.example.com/p1.jpg", SubmissionInput{}, now)
		require.NoError(t, err)
		_, err = ledger.Submit(ctx, activity.ID, alice.ID, "https://photos.example.com/p2.jpg", SubmissionInput{}, now.Add(time.Minute))
		require.NoError(t, err)

		stored, err := st.GetActivity(ctx, activity.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsCompleted)
	})

	t.Run("RejectsDuplicateSubmission", func(t *testing.T) {
		st := store.NewMemoryStore()
		alice := seedUser(st, "alice")
		group := seedGroup(st, "Solo", []string{alice.ID}, alice.ID)
		activity := seedSelectedActivity(st, group.ID, alice.ID, "Cold shower", day)

		ledger := NewLedger(st, notify.Discard{})
		_, err := ledger.Submit(ctx, activity.ID, alice.ID, "https://photos.example.com/p1.jpg", SubmissionInput{}, now)
		require.NoError(t, err)

		_, err = ledger.Submit(ctx, activity.ID, alice.ID, "https://photos.example.com/p2.jpg", SubmissionInput{}, now.Add(time.Minute))
		require.Error(t, err)
		assert.Equal(t, KindConflict, KindOf(err))

		// Toujours une seule soumission, compteur inchangé
		count, err := st.CountSubmissionsByActivity(ctx, activity.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		user, err := st.GetUser(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, user.CompletedChallenges)
	})

	t.Run("RejectsPendingActivity", func(t *testing.T) {
		st := store.NewMemoryStore()
		alice := seedUser(st, "alice")
		group := seedGroup(st, "Solo", []string{alice.ID}, alice.ID)
		activity := seedActivity(st, group.ID, alice.ID, "Not selected yet")

		ledger := NewLedger(st, notify.Discard{})
		_, err := ledger.Submit(ctx, activity.ID, alice.ID, "https://photos.example.com/p1.jpg", SubmissionInput{}, now)
		require.Error(t, err)
		assert.Equal(t, KindInvalidState, KindOf(err))
	})

	t.Run("RejectsNonMember", func(t *testing.T) {
		st := store.NewMemoryStore()
		alice := seedUser(st, "alice")
		mallory := seedUser(st, "mallory")
		group := seedGroup(st, "Private", []string{alice.ID}, alice.ID)
		activity := seedSelectedActivity(st, group.ID, alice.ID, "Cold shower", day)

		ledger := NewLedger(st, notify.Discard{})
		_, err := ledger.Submit(ctx, activity.ID, mallory.ID, "https://photos.example.com/p1.jpg", SubmissionInput{}, now)
		require.Error(t, err)
		assert.Equal(t, KindForbidden, KindOf(err))
	})

	t.Run("RejectsUnknownActivity", func(t *testing.T) {
		st := store.NewMemoryStore()
		alice := seedUser(st, "alice")

		ledger := NewLedger(st, notify.Discard{})
		_, err := ledger.Submit(ctx, "nope", alice.ID, "https://photos.example.com/p1.jpg", SubmissionInput{}, now)
		require.Error(t, err)
		assert.Equal(t, KindNotFound, KindOf(err))
	})

	t.Run("NotifiesAdminsOnly", func(t *testing.T) {
		st := store.NewMemoryStore()
		alice := seedUser(st, "alice") // admin
		bob := seedUser(st, "bob")
		carol := seedUser(st, "carol")
		group := seedGroup(st, "Crew", []string{alice.ID}, alice.ID, bob.ID, carol.ID)
		activity := seedSelectedActivity(st, group.ID, alice.ID, "Cold shower", day)

		ledger := NewLedger(st, notify.NewStoreNotifier(st))
		_, err := ledger.Submit(ctx, activity.ID, bob.ID, "https://photos.example.com/p1.jpg", SubmissionInput{}, now)
		require.NoError(t, err)

		require.Len(t, notificationsFor(st, alice.ID), 1)
		assert.Empty(t, notificationsFor(st, bob.ID))
		assert.Empty(t, notificationsFor(st, carol.ID))
		assert.Equal(t, model.NotificationTypeSubmission, notificationsFor(st, alice.ID)[0].Type)
	})

	t.Run("AdminSubmitterIsNotSelfNotified", func(t *testing.T) {
		st := store.NewMemoryStore()
		alice := seedUser(st, "alice")
		group := seedGroup(st, "Solo", []string{alice.ID}, alice.ID)
		activity := seedSelectedActivity(st, group.ID, alice.ID, "Cold shower", day)

		ledger := NewLedger(st, notify.NewStoreNotifier(st))
		_, err := ledger.Submit(ctx, activity.ID, alice.ID, "https://photos.example.com/p1.jpg", SubmissionInput{}, now)
		require.NoError(t, err)
		assert.Empty(t, notificationsFor(st, alice.ID))
	})

	t.Run("KeepsLocationWhenProvided", func(t *testing.T) {
		st := store.NewMemoryStore()
		alice := seedUser(st, "alice")
		group := seedGroup(st, "Solo", []string{alice.ID}, alice.ID)
		activity := seedSelectedActivity(st, group.ID, alice.ID, "Cold shower", day)

		ledger := NewLedger(st, notify.Discard{})
		sub, err := ledger.Submit(ctx, activity.ID, alice.ID, "https://photos.example.com/p1.jpg", SubmissionInput{
			Location: &model.GeoPoint{Lat: 48.8566, Lng: 2.3522},
		}, now)
		require.NoError(t, err)
		require.NotNil(t, sub.Location)
		assert.InDelta(t, 48.8566, sub.Location.Lat, 0.0001)
	})
}
