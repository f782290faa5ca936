package challenge

import (
	"errors"
	"fmt"
)

// Kind classe les échecs métier ; les handlers HTTP s'en servent pour
// choisir le status code.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindInvalidState
	KindUnauthorized
)

// Error est l'erreur typée renvoyée par les services du défi quotidien.
// Toute précondition échouée interrompt l'opération avant la moindre
// écriture.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func notFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func forbiddenf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func invalidStatef(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

// KindOf extrait le Kind d'une erreur, KindUnknown pour les erreurs
// techniques (store, réseau…)
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
