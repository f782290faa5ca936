package handler

import (
	"net/http"

	"github.com/MilesT98/Actify/internal/challenge"
	"github.com/MilesT98/Actify/internal/logger"
	"github.com/MilesT98/Actify/internal/notify"
	"github.com/MilesT98/Actify/internal/services"
	"github.com/MilesT98/Actify/internal/store"
	"github.com/MilesT98/Actify/internal/utils"
)

// Handler regroupe les dépendances injectées de tous les endpoints.
// Pas de singleton : le store et les services arrivent par le
// constructeur.
type Handler struct {
	store      store.Store
	photos     services.PhotoStore
	notifier   notify.Notifier
	selector   *challenge.Selector
	ledger     *challenge.Ledger
	engagement *challenge.Engagement
	engine     *challenge.Engine
}

func New(st store.Store, photos services.PhotoStore) *Handler {
	notifier := notify.NewStoreNotifier(st)
	return &Handler{
		store:      st,
		photos:     photos,
		notifier:   notifier,
		selector:   challenge.NewSelector(st, notifier),
		ledger:     challenge.NewLedger(st, notifier),
		engagement: challenge.NewEngagement(st, notifier),
		engine:     challenge.NewEngine(st),
	}
}

// respondError traduit une erreur métier en status HTTP. Les erreurs
// techniques restent opaques côté client.
func respondError(w http.ResponseWriter, err error) {
	switch challenge.KindOf(err) {
	case challenge.KindNotFound:
		utils.Error(w, http.StatusNotFound, err.Error())
	case challenge.KindForbidden:
		utils.Error(w, http.StatusForbidden, err.Error())
	case challenge.KindConflict:
		utils.Error(w, http.StatusConflict, err.Error())
	case challenge.KindInvalidState:
		utils.Error(w, http.StatusBadRequest, err.Error())
	case challenge.KindUnauthorized:
		utils.Error(w, http.StatusUnauthorized, err.Error())
	default:
		logger.Error("internal error: %v", err)
		utils.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
