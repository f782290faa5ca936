package challenge

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MilesT98/Actify/internal/metrics"
	model "github.com/MilesT98/Actify/internal/models"
	"github.com/MilesT98/Actify/internal/notify"
	"github.com/MilesT98/Actify/internal/store"
)

// Ledger enregistre les preuves photo. Au plus une soumission par couple
// (activité, utilisateur) ; l'activité passe à complétée quand le nombre
// de soumissions atteint le nombre de membres.
type Ledger struct {
	store    store.Store
	notifier notify.Notifier
}

func NewLedger(s store.Store, n notify.Notifier) *Ledger {
	return &Ledger{store: s, notifier: n}
}

// SubmissionInput porte les champs optionnels d'une soumission
type SubmissionInput struct {
	Caption  string
	Location *model.GeoPoint
}

// Submit vérifie les préconditions dans l'ordre (activité existante,
// appartenance au groupe, activité sélectionnée, pas de doublon) puis
// persiste la soumission. Aucune écriture avant la dernière précondition.
func (l *Ledger) Submit(ctx context.Context, activityID, userID, photoURL string, in SubmissionInput, now time.Time) (*model.Submission, error) {
	activity, err := l.store.GetActivity(ctx, activityID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, notFoundf("activity not found")
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}

	group, err := l.store.GetGroup(ctx, activity.GroupID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, notFoundf("group not found")
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	if !group.HasMember(userID) {
		return nil, forbiddenf("not a member of this group")
	}

	if activity.SelectedForDate == nil {
		return nil, invalidStatef("activity has not been selected for a challenge day")
	}

	existing, err := l.store.FindSubmission(ctx, activityID, userID)
	if err != nil {
		return nil, fmt.Errorf("find submission: %w", err)
	}
	if existing != nil {
		return nil, conflictf("already submitted for this activity")
	}

	user, err := l.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	submission := &model.Submission{
		ID:          uuid.NewString(),
		ActivityID:  activityID,
		UserID:      userID,
		PhotoURL:    photoURL,
		Caption:     in.Caption,
		Location:    in.Location,
		SubmittedAt: now.UTC(),
		Votes:       []string{},
		Reactions:   map[string][]string{},
		IsFeatured:  false,
	}

	if err := l.store.InsertSubmission(ctx, submission); err != nil {
		return nil, fmt.Errorf("insert submission: %w", err)
	}
	metrics.SubmissionsCreated.Inc()

	if err := l.store.IncrementCompletedChallenges(ctx, userID); err != nil {
		return nil, fmt.Errorf("increment completed challenges: %w", err)
	}

	// Comparaison avec le nombre de membres ACTUEL, pas un instantané figé
	// au moment de la sélection. Un membre retiré après coup fausse le
	// compte : comportement assumé. Transition à sens unique.
	count, err := l.store.CountSubmissionsByActivity(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("count submissions: %w", err)
	}
	if count >= len(group.Members) {
		if err := l.store.MarkActivityCompleted(ctx, activityID); err != nil {
			return nil, fmt.Errorf("mark activity completed: %w", err)
		}
	}

	// Seuls les admins sont prévenus, jamais le soumetteur
	for _, memberID := range group.Members {
		if memberID == userID || !group.HasAdmin(memberID) {
			continue
		}
		l.notifier.Notify(ctx, notify.Message{
			UserID: memberID,
			Title:  fmt.Sprintf("New Submission in %s", group.Name),
			Body:   fmt.Sprintf("%s has submitted a photo for the challenge '%s'!", user.Username, activity.Title),
			Type:   model.NotificationTypeSubmission,
			Link:   fmt.Sprintf("/groups/%s/activities/%s/submissions", group.ID, activityID),
		})
	}

	return submission, nil
}
