package challenge

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/MilesT98/Actify/internal/metrics"
	model "github.com/MilesT98/Actify/internal/models"
	"github.com/MilesT98/Actify/internal/store"
)

// Barème du classement : soumission 1 point, vote 1 point, réaction un
// demi-point (d'où le score fractionnaire)
const (
	pointsPerSubmission = 1.0
	pointsPerVote       = 1.0
	pointsPerReaction   = 0.5
)

// Seuils de badges sur le nombre de soumissions dans le groupe.
// Cumulatifs : 50 soumissions donnent les trois badges.
const (
	badgeRegularThreshold   = 10
	badgeCommittedThreshold = 30
	badgeChampionThreshold  = 50
)

// Engine calcule le classement d'un groupe et archive un snapshot
// immuable à chaque calcul, utilisé uniquement pour fournir le rang
// précédent au calcul suivant.
type Engine struct {
	store store.Store
}

func NewEngine(s store.Store) *Engine {
	return &Engine{store: s}
}

func badgesFor(submissionCount int) []string {
	badges := []string{}
	if submissionCount >= badgeRegularThreshold {
		badges = append(badges, "regular")
	}
	if submissionCount >= badgeCommittedThreshold {
		badges = append(badges, "committed")
	}
	if submissionCount >= badgeChampionThreshold {
		badges = append(badges, "champion")
	}
	return badges
}

// Compute construit le classement du groupe, l'ordonne par score
// décroissant (égalité : ordre de la liste des membres, tri stable sans
// clé secondaire) et assigne des rangs denses 1..N, puis archive le
// résultat.
func (e *Engine) Compute(ctx context.Context, groupID, callerID string, now time.Time) ([]model.LeaderboardEntry, error) {
	group, err := e.store.GetGroup(ctx, groupID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, notFoundf("group not found")
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	if !group.HasMember(callerID) {
		return nil, forbiddenf("not a member of this group")
	}

	previous, err := e.store.LatestLeaderboardSnapshot(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("load previous snapshot: %w", err)
	}

	// Une entrée par membre, dans l'ordre de la liste des membres
	entries := make([]model.LeaderboardEntry, 0, len(group.Members))
	for _, memberID := range group.Members {
		user, err := e.store.GetUser(ctx, memberID)
		if err != nil {
			if err == store.ErrNotFound {
				continue
			}
			return nil, fmt.Errorf("get member %s: %w", memberID, err)
		}

		submissionsCount, err := e.store.CountUserSubmissionsInGroup(ctx, memberID, groupID)
		if err != nil {
			return nil, fmt.Errorf("count submissions: %w", err)
		}

		previousRank := 0
		if previous != nil {
			for _, prev := range previous.Entries {
				if prev.UserID == memberID {
					previousRank = prev.Rank
					break
				}
			}
		}

		// Dernière activité : soumission la plus récente tous groupes
		// confondus
		var lastActive *time.Time
		if latest, err := e.store.LatestUserSubmission(ctx, memberID); err != nil {
			return nil, fmt.Errorf("latest submission: %w", err)
		} else if latest != nil {
			t := latest.SubmittedAt
			lastActive = &t
		}

		entries = append(entries, model.LeaderboardEntry{
			UserID:           user.ID,
			GroupID:          groupID,
			Username:         user.Username,
			ProfilePhotoURL:  user.ProfilePhotoURL,
			Score:            0,
			Streak:           user.Streak,
			Rank:             0, // posé après le tri
			PreviousRank:     previousRank,
			Badges:           badgesFor(submissionsCount),
			SubmissionsCount: submissionsCount,
			LastActive:       lastActive,
		})
	}

	activities, err := e.store.ListGroupActivities(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list group activities: %w", err)
	}
	for _, activity := range activities {
		submissions, err := e.store.ListSubmissionsByActivity(ctx, activity.ID)
		if err != nil {
			return nil, fmt.Errorf("list submissions: %w", err)
		}
		for _, submission := range submissions {
			for i := range entries {
				if entries[i].UserID != submission.UserID {
					continue
				}
				entries[i].Score += pointsPerSubmission
				entries[i].Score += pointsPerVote * float64(len(submission.Votes))
				entries[i].Score += pointsPerReaction * float64(submission.ReactionCount())
				break
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	// Toujours un nouveau snapshot, jamais de réécriture de l'historique
	snapshot := &model.LeaderboardSnapshot{
		ID:        uuid.NewString(),
		GroupID:   groupID,
		CreatedAt: now.UTC(),
		Entries:   append([]model.LeaderboardEntry(nil), entries...),
	}
	if err := e.store.InsertLeaderboardSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("store snapshot: %w", err)
	}

	metrics.LeaderboardComputations.Inc()

	return entries, nil
}
