package challenge

import (
	"context"
	"fmt"

	"github.com/MilesT98/Actify/internal/metrics"
	model "github.com/MilesT98/Actify/internal/models"
	"github.com/MilesT98/Actify/internal/notify"
	"github.com/MilesT98/Actify/internal/store"
)

// Engagement gère votes et réactions sur les soumissions. Les deux
// opérations sont des toggles : appliquer deux fois le même toggle
// ramène à l'état initial.
type Engagement struct {
	store    store.Store
	notifier notify.Notifier
}

func NewEngagement(s store.Store, n notify.Notifier) *Engagement {
	return &Engagement{store: s, notifier: n}
}

// resolveMembership remonte soumission → activité → groupe et vérifie
// l'appartenance de l'appelant
func (e *Engagement) resolveMembership(ctx context.Context, submissionID, userID string) (*model.Submission, *model.Activity, *model.Group, error) {
	submission, err := e.store.GetSubmission(ctx, submissionID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, nil, nil, notFoundf("submission not found")
		}
		return nil, nil, nil, fmt.Errorf("get submission: %w", err)
	}

	activity, err := e.store.GetActivity(ctx, submission.ActivityID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, nil, nil, notFoundf("activity not found")
		}
		return nil, nil, nil, fmt.Errorf("get activity: %w", err)
	}

	group, err := e.store.GetGroup(ctx, activity.GroupID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, nil, nil, notFoundf("group not found")
		}
		return nil, nil, nil, fmt.Errorf("get group: %w", err)
	}
	if !group.HasMember(userID) {
		return nil, nil, nil, forbiddenf("not a member of this group")
	}

	return submission, activity, group, nil
}

// ToggleVote ajoute le vote de l'utilisateur s'il est absent, le retire
// sinon. L'ajout notifie l'auteur (sauf auto-vote) et lui crédite un
// point ; le retrait est silencieux et ne reprend pas le point.
func (e *Engagement) ToggleVote(ctx context.Context, submissionID, userID string) (*model.Submission, error) {
	submission, activity, group, err := e.resolveMembership(ctx, submissionID, userID)
	if err != nil {
		return nil, err
	}

	voteAdded := false
	if submission.HasVote(userID) {
		if err := e.store.RemoveSubmissionVote(ctx, submissionID, userID); err != nil {
			return nil, fmt.Errorf("remove vote: %w", err)
		}
	} else {
		voteAdded = true
		if err := e.store.AddSubmissionVote(ctx, submissionID, userID); err != nil {
			return nil, fmt.Errorf("add vote: %w", err)
		}
	}
	metrics.VotesToggled.Inc()

	updated, err := e.store.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("reload submission: %w", err)
	}

	if voteAdded && submission.UserID != userID {
		voterName := "Someone"
		if voter, err := e.store.GetUser(ctx, userID); err == nil {
			voterName = voter.Username
		}

		e.notifier.Notify(ctx, notify.Message{
			UserID: submission.UserID,
			Title:  "Your submission got a vote!",
			Body:   fmt.Sprintf("%s voted for your submission in %s.", voterName, group.Name),
			Type:   model.NotificationTypeVote,
			Link:   fmt.Sprintf("/groups/%s/activities/%s/submissions", group.ID, activity.ID),
		})

		if err := e.store.AddUserPoints(ctx, submission.UserID, 1); err != nil {
			return nil, fmt.Errorf("add user points: %w", err)
		}
	}

	return updated, nil
}

// ToggleReaction ajoute ou retire l'utilisateur sous la clé emoji.
// Invariant maintenu : une clé emoji n'est jamais persistée avec un
// ensemble vide. Pas de points, pas de notification.
func (e *Engagement) ToggleReaction(ctx context.Context, submissionID, userID, emoji string) (*model.Submission, error) {
	submission, _, _, err := e.resolveMembership(ctx, submissionID, userID)
	if err != nil {
		return nil, err
	}

	reactions := submission.Reactions
	if reactions == nil {
		reactions = map[string][]string{}
	}

	users := reactions[emoji]
	present := false
	for _, id := range users {
		if id == userID {
			present = true
			break
		}
	}

	if present {
		filtered := users[:0]
		for _, id := range users {
			if id != userID {
				filtered = append(filtered, id)
			}
		}
		if len(filtered) == 0 {
			delete(reactions, emoji)
		} else {
			reactions[emoji] = filtered
		}
	} else {
		reactions[emoji] = append(users, userID)
	}

	if err := e.store.SetSubmissionReactions(ctx, submissionID, reactions); err != nil {
		return nil, fmt.Errorf("set reactions: %w", err)
	}
	metrics.ReactionsToggled.Inc()

	updated, err := e.store.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("reload submission: %w", err)
	}
	return updated, nil
}
