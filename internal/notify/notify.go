package notify

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MilesT98/Actify/internal/logger"
	"github.com/MilesT98/Actify/internal/metrics"
	model "github.com/MilesT98/Actify/internal/models"
	"github.com/MilesT98/Actify/internal/store"
)

// Message est une intention de notification émise par la logique métier.
// Le dispatcher la persiste ; la livraison (push, in-app) est le problème
// d'un autre composant.
type Message struct {
	UserID string
	Title  string
	Body   string
	Type   string // challenge, group, submission, vote, system
	Link   string
}

// Notifier est le puits de notifications fire-and-forget : un envoi ne
// bloque jamais l'opération appelante et son échec n'est jamais remonté.
type Notifier interface {
	Notify(ctx context.Context, msg Message)
}

// StoreNotifier écrit les notifications dans le store. Les erreurs sont
// journalisées puis oubliées, conformément au contrat fire-and-forget.
type StoreNotifier struct {
	store store.Store
}

var _ Notifier = (*StoreNotifier)(nil)

func NewStoreNotifier(s store.Store) *StoreNotifier {
	return &StoreNotifier{store: s}
}

func (n *StoreNotifier) Notify(ctx context.Context, msg Message) {
	notification := &model.Notification{
		ID:        uuid.NewString(),
		UserID:    msg.UserID,
		Title:     msg.Title,
		Message:   msg.Body,
		CreatedAt: time.Now().UTC(),
		Read:      false,
		Type:      msg.Type,
		Link:      msg.Link,
	}

	if err := n.store.InsertNotification(ctx, notification); err != nil {
		// Jamais remonté à l'appelant
		logger.Warning("notification non enregistrée pour %s: %v", msg.UserID, err)
		return
	}

	metrics.NotificationsEnqueued.Inc()
}

// Discard est un Notifier qui ignore tout (utilisé par certains tests)
type Discard struct{}

func (Discard) Notify(context.Context, Message) {}
