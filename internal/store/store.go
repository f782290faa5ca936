package store

import (
	"context"
	"errors"
	"time"

	model "github.com/MilesT98/Actify/internal/models"
)

// ErrNotFound est renvoyé par les lectures Get* quand le document n'existe pas.
// Les méthodes Find*/Latest* renvoient (nil, nil) : l'absence y est un
// résultat normal, pas une erreur.
var ErrNotFound = errors.New("store: not found")

// ProfileUpdate regroupe les champs modifiables du profil ; un pointeur nil
// signifie "ne pas toucher"
type ProfileUpdate struct {
	Bio             *string
	Interests       []string
	ProfilePhotoURL *string
}

// Store est le collaborateur de persistance injecté dans chaque service.
// Orienté document : les entités sont lues et écrites entières, indexées
// par un id applicatif (string), jamais par une clé générée par la base.
type Store interface {
	// Utilisateurs
	InsertUser(ctx context.Context, u *model.UserProfile, passwordHash string) error
	GetUser(ctx context.Context, id string) (*model.UserProfile, error)
	GetUserByUsername(ctx context.Context, username string) (*model.UserProfile, error)
	GetUserByEmail(ctx context.Context, email string) (*model.UserProfile, error)
	GetCredentials(ctx context.Context, username string) (userID, passwordHash string, err error)
	ListUsers(ctx context.Context, limit int) ([]model.UserProfile, error)
	UpdateUserProfile(ctx context.Context, id string, upd ProfileUpdate) error
	AddUserPoints(ctx context.Context, id string, delta int) error
	IncrementCompletedChallenges(ctx context.Context, id string) error

	// Sessions
	InsertSession(ctx context.Context, s *model.Session) error
	GetUserByToken(ctx context.Context, token string) (*model.UserProfile, error)
	DeactivateSession(ctx context.Context, token string) error

	// Centres d'intérêt
	InsertInterest(ctx context.Context, i *model.Interest) error
	GetInterestByName(ctx context.Context, name string) (*model.Interest, error)
	ListInterests(ctx context.Context) ([]model.Interest, error)

	// Groupes
	InsertGroup(ctx context.Context, g *model.Group) error
	GetGroup(ctx context.Context, id string) (*model.Group, error)
	GetGroupByInviteCode(ctx context.Context, code string) (*model.Group, error)
	ListGroupsByMember(ctx context.Context, userID string) ([]model.Group, error)
	ListPublicGroups(ctx context.Context) ([]model.Group, error)
	AddGroupMember(ctx context.Context, groupID, userID string) error
	RemoveGroupMember(ctx context.Context, groupID, userID string) error
	AddGroupAdmin(ctx context.Context, groupID, userID string) error
	RemoveGroupAdmin(ctx context.Context, groupID, userID string) error

	// Activités
	InsertActivity(ctx context.Context, a *model.Activity) error
	GetActivity(ctx context.Context, id string) (*model.Activity, error)
	FindActivitySelectedBetween(ctx context.Context, groupID string, from, to time.Time) (*model.Activity, error)
	ListPendingActivities(ctx context.Context, groupID string) ([]model.Activity, error)
	ListGroupActivities(ctx context.Context, groupID string) ([]model.Activity, error)
	ListActivitiesSelectedSince(ctx context.Context, groupIDs []string, since time.Time) ([]model.Activity, error)
	ListActivitiesSelectedBefore(ctx context.Context, groupIDs []string, before time.Time, limit int) ([]model.Activity, error)
	ListActivities(ctx context.Context, limit int) ([]model.Activity, error)
	// ClaimActivityForDate pose selected_for_date seulement s'il est encore
	// absent. Renvoie false si un autre appel a gagné la course : premier
	// écrivain gagnant, aucune activité orpheline.
	ClaimActivityForDate(ctx context.Context, id string, date time.Time) (bool, error)
	MarkActivityCompleted(ctx context.Context, id string) error

	// Soumissions
	InsertSubmission(ctx context.Context, s *model.Submission) error
	GetSubmission(ctx context.Context, id string) (*model.Submission, error)
	FindSubmission(ctx context.Context, activityID, userID string) (*model.Submission, error)
	ListSubmissionsByActivity(ctx context.Context, activityID string) ([]model.Submission, error)
	CountSubmissionsByActivity(ctx context.Context, activityID string) (int, error)
	CountSubmissionsByUser(ctx context.Context, userID string) (int, error)
	CountUserSubmissionsInGroup(ctx context.Context, userID, groupID string) (int, error)
	LatestUserSubmission(ctx context.Context, userID string) (*model.Submission, error)
	AddSubmissionVote(ctx context.Context, submissionID, userID string) error
	RemoveSubmissionVote(ctx context.Context, submissionID, userID string) error
	SetSubmissionReactions(ctx context.Context, submissionID string, reactions map[string][]string) error

	// Snapshots de classement (append-only)
	InsertLeaderboardSnapshot(ctx context.Context, snap *model.LeaderboardSnapshot) error
	LatestLeaderboardSnapshot(ctx context.Context, groupID string) (*model.LeaderboardSnapshot, error)

	// Notifications
	InsertNotification(ctx context.Context, n *model.Notification) error
	GetNotification(ctx context.Context, id string) (*model.Notification, error)
	ListNotifications(ctx context.Context, userID string, limit int) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error
}
