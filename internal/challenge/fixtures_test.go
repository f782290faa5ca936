package challenge

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	model "github.com/MilesT98/Actify/internal/models"
	"github.com/MilesT98/Actify/internal/store"
)

// helpers partagés par les tests du paquet

func seedUser(st *store.MemoryStore, username string) *model.UserProfile {
	u := &model.UserProfile{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     fmt.Sprintf("%s@example.com", username),
		Interests: []string{},
		CreatedAt: time.Now().UTC(),
		IsActive:  true,
	}
	_ = st.InsertUser(context.Background(), u, "hash")
	return u
}

func seedGroup(st *store.MemoryStore, name string, admins []string, members ...string) *model.Group {
	g := &model.Group{
		ID:         uuid.NewString(),
		Name:       name,
		CreatedBy:  members[0],
		Members:    append([]string(nil), members...),
		Admins:     append([]string(nil), admins...),
		InviteCode: "ABC123",
		CreatedAt:  time.Now().UTC(),
		IsActive:   true,
		MaxMembers: model.DefaultMaxMembers,
	}
	_ = st.InsertGroup(context.Background(), g)
	return g
}

func seedActivity(st *store.MemoryStore, groupID, createdBy, title string) *model.Activity {
	a := &model.Activity{
		ID:        uuid.NewString(),
		GroupID:   groupID,
		CreatedBy: createdBy,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	_ = st.InsertActivity(context.Background(), a)
	return a
}

func seedSelectedActivity(st *store.MemoryStore, groupID, createdBy, title string, day time.Time) *model.Activity {
	a := seedActivity(st, groupID, createdBy, title)
	_, _ = st.ClaimActivityForDate(context.Background(), a.ID, day)
	sel := day
	a.SelectedForDate = &sel
	return a
}

func notificationsFor(st *store.MemoryStore, userID string) []model.Notification {
	list, _ := st.ListNotifications(context.Background(), userID, 0)
	return list
}
