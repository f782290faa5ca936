package challenge

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/MilesT98/Actify/internal/models"
	"github.com/MilesT98/Actify/internal/store"
)

func seedSubmission(st *store.MemoryStore, activityID, userID string, votes []string, reactions map[string][]string, at time.Time) *model.Submission {
	s := &model.Submission{
		ID:          uuid.NewString(),
		ActivityID:  activityID,
		UserID:      userID,
		PhotoURL:    "https://photos.example.com/seed.jpg",
		SubmittedAt: at,
		Votes:       append([]string(nil), votes...),
		Reactions:   reactions,
	}
	_ = st.InsertSubmission(context.Background(), s)
	return s
}

func TestEngine_Compute(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 12, 20, 0, 0, 0, time.UTC)
	day := time.Date(2025, 6, 12, 8, 0, 0, 0, time.UTC)

	t.Run("RanksByScoreDescending", func(t *testing.T) {
		st := store.NewMemoryStore()
		alice := seedUser(st, "alice")
		bob := seedUser(st, "bob")
		group := seedGroup(st, "Crew", []string{alice.ID}, alice.ID, bob.ID)
		activity := seedSelectedActivity(st, group.ID, alice.ID, "Cold shower", day)

		// alice : une soumission (1 pt). bob : une soumission plus un vote
		// d'alice (2 pts)
		seedSubmission(st, activity.ID, alice.ID, nil, nil, day.Add(time.Hour))
		seedSubmission(st, activity.ID, bob.ID, []string{alice.ID}, nil, day.Add(2*time.Hour))

		engine := NewEngine(st)
		entries, err := engine.Compute(ctx, group.ID, alice.ID, now)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, bob.ID, entries[0].UserID)
		assert.Equal(t, 1, entries[0].Rank)
		assert.InDelta(t, 2.0, entries[0].Score, 0.001)

		assert.Equal(t, alice.ID, entries[1].UserID)
		assert.Equal(t, 2, entries[1].Rank)
		assert.InDelta(t, 1.0, entries[1].Score, 0.001)
	})

	t.Run("ReactionsCountHalfAPoint", func(t *testing.T) {
		st := store.NewMemoryStore()
		alice := seedUser(st, "alice")
		bob := seedUser(st, "bob")
		carol := seedUser(st, "carol")
		group := seedGroup(st, "Crew", []string{alice.ID}, alice.ID, bob.ID, carol.ID)
		activity := seedSelectedActivity(st, group.ID, alice.ID, "Cold shower", day)

		// 1 soumission + 2 votes + 1 réaction = 3.5
		seedSubmission(st, activity.ID, alice.ID,
			[]string{bob.ID, carol.ID},
			map[string][]string{"🔥": {bob.ID}},
			day.Add(time.Hour))

		engine := NewEngine(st)
		entries, err := engine.Compute(ctx, group.ID, alice.ID, now)
		require.NoError(t, err)
		assert.InDelta(t, 3.5, entries[0].Score, 0.001)
		assert.Equal(t, alice.ID, entries[0].UserID)
	})

	t.Run("TiesKeepMemberOrder", func(t *testing.T) {
		st := store.NewMemoryStore()
		alice := seedUser(st, "alice")
		bob := seedUser(st, "bob")
		group := seedGroup(st, "Crew", []string{alice.ID}, alice.ID, bob.ID)
		activity := seedSelectedActivity(st, group.ID, alice.ID, "Cold shower", day)

		seedSubmission(st, activity.ID, alice.ID, nil, nil, day.Add(time.Hour))
		seedSubmission(st, activity.ID, bob.ID, nil, nil, day.Add(2*time.Hour))

		engine := NewEngine(st)
		entries, err := engine.Compute(ctx, group.ID, alice.ID, now)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		// Tri stable : à score égal, l'ordre de la liste des membres prime
		assert.Equal(t, alice.ID, entries[0].UserID)
		assert.Equal(t, 1, entries[0].Rank)
		assert.Equal(t, bob.ID, entries[1].UserID)
		assert.Equal(t, 2, entries[1].Rank)
	})

	t.Run("MembersWithoutSubmissionScoreZero", func(t *testing.T) {
		st := store.NewMemoryStore()
		alice := seedUser(st, "alice")
		bob := seedUser(st, "bob")
		group := seedGroup(st, "Crew", []string{alice.ID}, alice.ID, bob.ID)
		activity := seedSelectedActivity(st, group.ID, alice.ID, "Cold shower", day)
		seedSubmission(st, activity.ID, alice.ID, nil, nil, day.Add(time.Hour))

		engine := NewEngine(st)
		entries, err := engine.Compute(ctx, group.ID, bob.ID, now)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, bob.ID, entries[1].UserID)
		assert.Zero(t, entries[1].Score)
		assert.Zero(t, entries[1].SubmissionsCount)
		assert.Nil(t, entries[1].LastActive)
		assert.Empty(t, entries[1].Badges)
	})

	t.Run("PreviousRankComesFromLastSnapshot", func(t *testing.T) {
		st := store.NewMemoryStore()
		alice := seedUser(st, "alice")
		bob := seedUser(st, "bob")
		group := seedGroup(st, "Crew", []string{alice.ID}, alice.ID, bob.ID)
		activity := seedSelectedActivity(st, group.ID, alice.ID, "Cold shower", day)

		engine := NewEngine(st)

		// Premier calcul : personne n'a de rang précédent
		seedSubmission(st, activity.ID, alice.ID, nil, nil, day.Add(time.Hour))
		first, err := engine.Compute(ctx, group.ID, alice.ID, now)
		require.NoError(t, err)
		assert.Zero(t, first[0].PreviousRank)
		assert.Zero(t, first[1].PreviousRank)

		// bob dépasse alice, le classement bascule
		seedSubmission(st, activity.ID, bob.ID, []string{alice.ID}, nil, day.Add(2*time.Hour))

		second, err := engine.Compute(ctx, group.ID, alice.ID, now.Add(time.Hour))
		require.NoError(t, err)
		require.Len(t, second, 2)

		assert.Equal(t, bob.ID, second[0].UserID)
		assert.Equal(t, 1, second[0].Rank)
		assert.Equal(t, 2, second[0].PreviousRank)

		assert.Equal(t, alice.ID, second[1].UserID)
		assert.Equal(t, 2, second[1].Rank)
		assert.Equal(t, 1, second[1].PreviousRank)
	})

	t.Run("SnapshotsAreAppendOnly", func(t *testing.T) {
		st := store.NewMemoryStore()
		alice := seedUser(st, "alice")
		group := seedGroup(st, "Solo", []string{alice.ID}, alice.ID)

		engine := NewEngine(st)
		for i := 0; i < 3; i++ {
			_, err := engine.Compute(ctx, group.ID, alice.ID, now.Add(time.Duration(i)*time.Hour))
			require.NoError(t, err)
		}
		assert.Equal(t, 3, st.SnapshotCount(group.ID))
	})

	t.Run("BadgesAreCumulativeAtThresholds", func(t *testing.T) {
		st := store.NewMemoryStore()
		alice := seedUser(st, "alice")
		group := seedGroup(st, "Grind", []string{alice.ID}, alice.ID)

		// Une activité par soumission pour respecter l'unicité
		// (activité, utilisateur)
		submit := func(n int) {
			for i := 0; i < n; i++ {
				activity := seedSelectedActivity(st, group.ID, alice.ID, "Rep", day)
				seedSubmission(st, activity.ID, alice.ID, nil, nil, day.Add(time.Hour))
			}
		}
		engine := NewEngine(st)

		submit(9)
		entries, err := engine.Compute(ctx, group.ID, alice.ID, now)
		require.NoError(t, err)
		assert.Empty(t, entries[0].Badges)

		submit(1) // 10
		entries, err = engine.Compute(ctx, group.ID, alice.ID, now)
		require.NoError(t, err)
		assert.Equal(t, []string{"regular"}, entries[0].Badges)

		submit(20) // 30
		entries, err = engine.Compute(ctx, group.ID, alice.ID, now)
		require.NoError(t, err)
		assert.Equal(t, []string{"regular", "committed"}, entries[0].Badges)

		submit(20) // 50
		entries, err = engine.Compute(ctx, group.ID, alice.ID, now)
		require.NoError(t, err)
		assert.Equal(t, []string{"regular", "committed", "champion"}, entries[0].Badges)
	})

	t.Run("IgnoresOtherGroupsSubmissions", func(t *testing.T) {
		st := store.NewMemoryStore()
		alice := seedUser(st, "alice")
		group := seedGroup(st, "Crew", []string{alice.ID}, alice.ID)
		other := seedGroup(st, "Other", []string{alice.ID}, alice.ID)

		otherActivity := seedSelectedActivity(st, other.ID, alice.ID, "Elsewhere", day)
		seedSubmission(st, otherActivity.ID, alice.ID, nil, nil, day.Add(time.Hour))

		engine := NewEngine(st)
		entries, err := engine.Compute(ctx, group.ID, alice.ID, now)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Zero(t, entries[0].Score)
		assert.Zero(t, entries[0].SubmissionsCount)
	})

	t.Run("RejectsNonMember", func(t *testing.T) {
		st := store.NewMemoryStore()
		alice := seedUser(st, "alice")
		mallory := seedUser(st, "mallory")
		group := seedGroup(st, "Private", []string{alice.ID}, alice.ID)

		engine := NewEngine(st)
		_, err := engine.Compute(ctx, group.ID, mallory.ID, now)
		require.Error(t, err)
		assert.Equal(t, KindForbidden, KindOf(err))
	})

	t.Run("RejectsUnknownGroup", func(t *testing.T) {
		st := store.NewMemoryStore()
		alice := seedUser(st, "alice")

		engine := NewEngine(st)
		_, err := engine.Compute(ctx, "nope", alice.ID, now)
		require.Error(t, err)
		assert.Equal(t, KindNotFound, KindOf(err))
	})
}
