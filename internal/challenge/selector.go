package challenge

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/MilesT98/Actify/internal/metrics"
	model "github.com/MilesT98/Actify/internal/models"
	"github.com/MilesT98/Actify/internal/notify"
	"github.com/MilesT98/Actify/internal/store"
)

// Selector tire au sort l'activité du jour d'un groupe.
// Une seule activité par groupe et par jour calendaire : les appels
// suivants du même jour renvoient la même activité, sans nouveau tirage
// ni nouvelles notifications.
type Selector struct {
	store    store.Store
	notifier notify.Notifier
	pick     func(n int) int
}

func NewSelector(s store.Store, n notify.Notifier) *Selector {
	return &Selector{store: s, notifier: n, pick: rand.Intn}
}

// dayWindow renvoie [minuit(now), minuit(now)+24h) en UTC.
// Fenêtre fixe UTC pour tout le monde : choix assumé, pas de fuseau
// par membre.
func dayWindow(now time.Time) (time.Time, time.Time) {
	utc := now.UTC()
	start := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

// SelectDaily renvoie l'activité sélectionnée pour aujourd'hui, en la
// tirant au sort parmi les propositions en attente si nécessaire.
func (s *Selector) SelectDaily(ctx context.Context, groupID, userID string, now time.Time) (*model.Activity, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, notFoundf("group not found")
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	if !group.HasMember(userID) {
		return nil, forbiddenf("not a member of this group")
	}

	dayStart, dayEnd := dayWindow(now)

	// Déjà une activité pour aujourd'hui : idempotent, on la renvoie telle
	// quelle
	existing, err := s.store.FindActivitySelectedBetween(ctx, groupID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("find today's activity: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	pending, err := s.store.ListPendingActivities(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list pending activities: %w", err)
	}
	if len(pending) == 0 {
		return nil, invalidStatef("no activities available to select")
	}

	stamp := now.UTC()

	// Tirage uniforme puis écriture conditionnelle : le tampon n'est posé
	// que si selected_for_date est encore absent. Si on perd la course, le
	// gagnant du jour est relu et renvoyé sans notifications en double.
	var selected *model.Activity
	for len(pending) > 0 {
		i := s.pick(len(pending))
		candidate := pending[i]

		claimed, err := s.store.ClaimActivityForDate(ctx, candidate.ID, stamp)
		if err != nil {
			return nil, fmt.Errorf("claim activity: %w", err)
		}
		if claimed {
			candidate.SelectedForDate = &stamp
			selected = &candidate
			break
		}

		winner, err := s.store.FindActivitySelectedBetween(ctx, groupID, dayStart, dayEnd)
		if err != nil {
			return nil, fmt.Errorf("find today's activity: %w", err)
		}
		if winner != nil {
			return winner, nil
		}

		// Candidate tamponnée un autre jour entre-temps : on la retire et
		// on retente
		pending = append(pending[:i], pending[i+1:]...)
	}
	if selected == nil {
		return nil, invalidStatef("no activities available to select")
	}

	metrics.DailySelections.Inc()

	creatorName := "Someone"
	if creator, err := s.store.GetUser(ctx, selected.CreatedBy); err == nil {
		creatorName = creator.Username
	}

	// Tout le monde sauf celui qui a lancé le tirage
	for _, memberID := range group.Members {
		if memberID == userID {
			continue
		}
		s.notifier.Notify(ctx, notify.Message{
			UserID: memberID,
			Title:  fmt.Sprintf("New Daily Challenge in %s", group.Name),
			Body:   fmt.Sprintf("%s's activity '%s' has been selected for today's challenge!", creatorName, selected.Title),
			Type:   model.NotificationTypeChallenge,
			Link:   fmt.Sprintf("/groups/%s", groupID),
		})
	}

	return selected, nil
}
