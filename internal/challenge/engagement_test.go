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

type engagementFixture struct {
	st         *store.MemoryStore
	alice      *model.UserProfile
	bob        *model.UserProfile
	group      *model.Group
	submission *model.Submission
}

// alice est admin et autrice de la soumission, bob est simple membre
func newEngagementFixture(t *testing.T) *engagementFixture {
	t.Helper()
	st := store.NewMemoryStore()
	alice := seedUser(st, "alice")
	bob := seedUser(st, "bob")
	group := seedGroup(st, "Crew", []string{alice.ID}, alice.ID, bob.ID)
	day := time.Date(2025, 6, 12, 8, 0, 0, 0, time.UTC)
	activity := seedSelectedActivity(st, group.ID, alice.ID, "Cold shower", day)

	ledger := NewLedger(st, notify.Discard{})
	sub, err := ledger.Submit(context.Background(), activity.ID, alice.ID, "https://photos.example.com/p1.jpg", SubmissionInput{}, day.Add(2*time.Hour))
	require.NoError(t, err)

	return &engagementFixture{st: st, alice: alice, bob: bob, group: group, submission: sub}
}

func TestEngagement_ToggleVote(t *testing.T) {
	ctx := context.Background()

	t.Run("AddThenRemoveRoundTrip", func(t *testing.T) {
		fx := newEngagementFixture(t)
		eng := NewEngagement(fx.st, notify.Discard{})

		voted, err := eng.ToggleVote(ctx, fx.submission.ID, fx.bob.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{fx.bob.ID}, voted.Votes)

		unvoted, err := eng.ToggleVote(ctx, fx.submission.ID, fx.bob.ID)
		require.NoError(t, err)
		assert.Empty(t, unvoted.Votes)
	})

	t.Run("AddCreditsAuthorAndNotifies", func(t *testing.T) {
		fx := newEngagementFixture(t)
		eng := NewEngagement(fx.st, notify.NewStoreNotifier(fx.st))

		_, err := eng.ToggleVote(ctx, fx.submission.ID, fx.bob.ID)
		require.NoError(t, err)

		author, err := fx.st.GetUser(ctx, fx.alice.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, author.TotalPoints)

		notifs := notificationsFor(fx.st, fx.alice.ID)
		require.Len(t, notifs, 1)
		assert.Equal(t, model.NotificationTypeVote, notifs[0].Type)
		assert.Contains(t, notifs[0].Message, "bob")
	})

	t.Run("RemoveKeepsAuthorPoints", func(t *testing.T) {
		fx := newEngagementFixture(t)
		eng := NewEngagement(fx.st, notify.NewStoreNotifier(fx.st))

		_, err := eng.ToggleVote(ctx, fx.submission.ID, fx.bob.ID)
		require.NoError(t, err)
		_, err = eng.ToggleVote(ctx, fx.submission.ID, fx.bob.ID)
		require.NoError(t, err)

		// Le point acquis reste, et pas de seconde notification
		author, err := fx.st.GetUser(ctx, fx.alice.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, author.TotalPoints)
		assert.Len(t, notificationsFor(fx.st, fx.alice.ID), 1)
	})

	t.Run("SelfVoteGivesNoPointNoNotification", func(t *testing.T) {
		fx := newEngagementFixture(t)
		eng := NewEngagement(fx.st, notify.NewStoreNotifier(fx.st))

		voted, err := eng.ToggleVote(ctx, fx.submission.ID, fx.alice.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{fx.alice.ID}, voted.Votes)

		author, err := fx.st.GetUser(ctx, fx.alice.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, author.TotalPoints)
		assert.Empty(t, notificationsFor(fx.st, fx.alice.ID))
	})

	t.Run("RejectsNonMember", func(t *testing.T) {
		fx := newEngagementFixture(t)
		mallory := seedUser(fx.st, "mallory")
		eng := NewEngagement(fx.st, notify.Discard{})

		_, err := eng.ToggleVote(ctx, fx.submission.ID, mallory.ID)
		require.Error(t, err)
		assert.Equal(t, KindForbidden, KindOf(err))
	})

	t.Run("RejectsUnknownSubmission", func(t *testing.T) {
		fx := newEngagementFixture(t)
		eng := NewEngagement(fx.st, notify.Discard{})

		_, err := eng.ToggleVote(ctx, "nope", fx.bob.ID)
		require.Error(t, err)
		assert.Equal(t, KindNotFound, KindOf(err))
	})
}

func TestEngagement_ToggleReaction(t *testing.T) {
	ctx := context.Background()

	t.Run("AddThenRemovePrunesEmptyKey", func(t *testing.T) {
		fx := newEngagementFixture(t)
		eng := NewEngagement(fx.st, notify.Discard{})

		reacted, err := eng.ToggleReaction(ctx, fx.submission.ID, fx.bob.ID, "🔥")
		require.NoError(t, err)
		assert.Equal(t, []string{fx.bob.ID}, reacted.Reactions["🔥"])

		cleared, err := eng.ToggleReaction(ctx, fx.submission.ID, fx.bob.ID, "🔥")
		require.NoError(t, err)
		// Clé emoji supprimée quand plus personne ne réagit
		_, remains := cleared.Reactions["🔥"]
		assert.False(t, remains)
	})

	t.Run("SeveralUsersUnderSameEmoji", func(t *testing.T) {
		fx := newEngagementFixture(t)
		eng := NewEngagement(fx.st, notify.Discard{})

		_, err := eng.ToggleReaction(ctx, fx.submission.ID, fx.alice.ID, "💪")
		require.NoError(t, err)
		reacted, err := eng.ToggleReaction(ctx, fx.submission.ID, fx.bob.ID, "💪")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{fx.alice.ID, fx.bob.ID}, reacted.Reactions["💪"])

		// alice se retire, la clé garde bob
		remaining, err := eng.ToggleReaction(ctx, fx.submission.ID, fx.alice.ID, "💪")
		require.NoError(t, err)
		assert.Equal(t, []string{fx.bob.ID}, remaining.Reactions["💪"])
	})

	t.Run("IndependentEmojiKeys", func(t *testing.T) {
		fx := newEngagementFixture(t)
		eng := NewEngagement(fx.st, notify.Discard{})

		_, err := eng.ToggleReaction(ctx, fx.submission.ID, fx.bob.ID, "🔥")
		require.NoError(t, err)
		reacted, err := eng.ToggleReaction(ctx, fx.submission.ID, fx.bob.ID, "👏")
		require.NoError(t, err)
		assert.Len(t, reacted.Reactions, 2)
	})

	t.Run("NoPointsNoNotification", func(t *testing.T) {
		fx := newEngagementFixture(t)
		eng := NewEngagement(fx.st, notify.NewStoreNotifier(fx.st))

		_, err := eng.ToggleReaction(ctx, fx.submission.ID, fx.bob.ID, "🔥")
		require.NoError(t, err)

		author, err := fx.st.GetUser(ctx, fx.alice.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, author.TotalPoints)
		assert.Empty(t, notificationsFor(fx.st, fx.alice.ID))
	})

	t.Run("RejectsNonMember", func(t *testing.T) {
		fx := newEngagementFixture(t)
		mallory := seedUser(fx.st, "mallory")
		eng := NewEngagement(fx.st, notify.Discard{})

		_, err := eng.ToggleReaction(ctx, fx.submission.ID, mallory.ID, "🔥")
		require.Error(t, err)
		assert.Equal(t, KindForbidden, KindOf(err))
	})
}
