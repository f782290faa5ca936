package store

import (
	"context"
	"sort"
	"sync"
	"time"

	model "github.com/MilesT98/Actify/internal/models"
)

// MemoryStore est une implémentation en mémoire de Store, utilisée par les
// tests et par le mode STORE_DRIVER=memory. Les documents sont copiés en
// entrée comme en sortie : aucun alias ne s'échappe du store.
type MemoryStore struct {
	mu sync.Mutex

	users       []*model.UserProfile
	credentials map[string]string // username -> hash
	sessions    []*model.Session
	interests   []*model.Interest
	groups      []*model.Group
	activities  []*model.Activity
	submissions []*model.Submission
	snapshots   []*model.LeaderboardSnapshot
	notifs      []*model.Notification
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{credentials: make(map[string]string)}
}

// --- Utilisateurs ---

func (m *MemoryStore) InsertUser(_ context.Context, u *model.UserProfile, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	cp.Interests = append([]string(nil), u.Interests...)
	m.users = append(m.users, &cp)
	m.credentials[u.Username] = passwordHash
	return nil
}

func (m *MemoryStore) findUser(id string) *model.UserProfile {
	for _, u := range m.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func copyUser(u *model.UserProfile) *model.UserProfile {
	cp := *u
	cp.Interests = append([]string(nil), u.Interests...)
	return &cp
}

func (m *MemoryStore) GetUser(_ context.Context, id string) (*model.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u := m.findUser(id); u != nil {
		return copyUser(u), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetUserByUsername(_ context.Context, username string) (*model.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetUserByEmail(_ context.Context, email string) (*model.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetCredentials(_ context.Context, username string) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	hash, ok := m.credentials[username]
	if !ok {
		return "", "", ErrNotFound
	}
	for _, u := range m.users {
		if u.Username == username {
			return u.ID, hash, nil
		}
	}
	return "", "", ErrNotFound
}

func (m *MemoryStore) ListUsers(_ context.Context, limit int) ([]model.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.UserProfile, 0, len(m.users))
	for _, u := range m.users {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, *copyUser(u))
	}
	return out, nil
}

func (m *MemoryStore) UpdateUserProfile(_ context.Context, id string, upd ProfileUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.findUser(id)
	if u == nil {
		return ErrNotFound
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.Interests != nil {
		u.Interests = append([]string(nil), upd.Interests...)
	}
	if upd.ProfilePhotoURL != nil {
		u.ProfilePhotoURL = *upd.ProfilePhotoURL
	}
	return nil
}

func (m *MemoryStore) AddUserPoints(_ context.Context, id string, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.findUser(id)
	if u == nil {
		return ErrNotFound
	}
	u.TotalPoints += delta
	return nil
}

func (m *MemoryStore) IncrementCompletedChallenges(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.findUser(id)
	if u == nil {
		return ErrNotFound
	}
	u.CompletedChallenges++
	return nil
}

// --- Sessions ---

func (m *MemoryStore) InsertSession(_ context.Context, s *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sessions = append(m.sessions, &cp)
	return nil
}

func (m *MemoryStore) GetUserByToken(_ context.Context, token string) (*model.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.Token == token && s.IsActive && s.ExpiresAt.After(time.Now()) {
			if u := m.findUser(s.UserID); u != nil {
				return copyUser(u), nil
			}
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) DeactivateSession(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.Token == token && s.IsActive {
			s.IsActive = false
			return nil
		}
	}
	return ErrNotFound
}

// --- Centres d'intérêt ---

func (m *MemoryStore) InsertInterest(_ context.Context, i *model.Interest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *i
	m.interests = append(m.interests, &cp)
	return nil
}

func (m *MemoryStore) GetInterestByName(_ context.Context, name string) (*model.Interest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, i := range m.interests {
		if i.Name == name {
			cp := *i
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListInterests(_ context.Context) ([]model.Interest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Interest, 0, len(m.interests))
	for _, i := range m.interests {
		out = append(out, *i)
	}
	return out, nil
}

// --- Groupes ---

func copyGroup(g *model.Group) *model.Group {
	cp := *g
	cp.Members = append([]string(nil), g.Members...)
	cp.Admins = append([]string(nil), g.Admins...)
	return &cp
}

func (m *MemoryStore) InsertGroup(_ context.Context, g *model.Group) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groups = append(m.groups, copyGroup(g))
	return nil
}

func (m *MemoryStore) findGroup(id string) *model.Group {
	for _, g := range m.groups {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func (m *MemoryStore) GetGroup(_ context.Context, id string) (*model.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g := m.findGroup(id); g != nil {
		return copyGroup(g), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetGroupByInviteCode(_ context.Context, code string) (*model.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.groups {
		if g.InviteCode == code {
			return copyGroup(g), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListGroupsByMember(_ context.Context, userID string) ([]model.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Group
	for _, g := range m.groups {
		if g.HasMember(userID) {
			out = append(out, *copyGroup(g))
		}
	}
	return out, nil
}

func (m *MemoryStore) ListPublicGroups(_ context.Context) ([]model.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Group
	for _, g := range m.groups {
		if g.IsActive {
			out = append(out, *copyGroup(g))
		}
	}
	return out, nil
}

func (m *MemoryStore) AddGroupMember(_ context.Context, groupID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g := m.findGroup(groupID)
	if g == nil {
		return ErrNotFound
	}
	if !g.HasMember(userID) {
		g.Members = append(g.Members, userID)
	}
	return nil
}

func (m *MemoryStore) RemoveGroupMember(_ context.Context, groupID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g := m.findGroup(groupID)
	if g == nil {
		return ErrNotFound
	}
	g.Members = removeString(g.Members, userID)
	return nil
}

func (m *MemoryStore) AddGroupAdmin(_ context.Context, groupID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g := m.findGroup(groupID)
	if g == nil {
		return ErrNotFound
	}
	if !g.HasAdmin(userID) {
		g.Admins = append(g.Admins, userID)
	}
	return nil
}

func (m *MemoryStore) RemoveGroupAdmin(_ context.Context, groupID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g := m.findGroup(groupID)
	if g == nil {
		return ErrNotFound
	}
	g.Admins = removeString(g.Admins, userID)
	return nil
}

// --- Activités ---

func copyActivity(a *model.Activity) *model.Activity {
	cp := *a
	if a.SelectedForDate != nil {
		t := *a.SelectedForDate
		cp.SelectedForDate = &t
	}
	if a.Deadline != nil {
		t := *a.Deadline
		cp.Deadline = &t
	}
	return &cp
}

func (m *MemoryStore) InsertActivity(_ context.Context, a *model.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activities = append(m.activities, copyActivity(a))
	return nil
}

func (m *MemoryStore) findActivity(id string) *model.Activity {
	for _, a := range m.activities {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (m *MemoryStore) GetActivity(_ context.Context, id string) (*model.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a := m.findActivity(id); a != nil {
		return copyActivity(a), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) FindActivitySelectedBetween(_ context.Context, groupID string, from, to time.Time) (*model.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.activities {
		if a.GroupID != groupID || a.SelectedForDate == nil {
			continue
		}
		d := *a.SelectedForDate
		if !d.Before(from) && d.Before(to) {
			return copyActivity(a), nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) ListPendingActivities(_ context.Context, groupID string) ([]model.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Activity
	for _, a := range m.activities {
		if a.GroupID == groupID && a.SelectedForDate == nil {
			out = append(out, *copyActivity(a))
		}
	}
	return out, nil
}

func (m *MemoryStore) ListGroupActivities(_ context.Context, groupID string) ([]model.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Activity
	for _, a := range m.activities {
		if a.GroupID == groupID {
			out = append(out, *copyActivity(a))
		}
	}
	return out, nil
}

func (m *MemoryStore) ListActivitiesSelectedSince(_ context.Context, groupIDs []string, since time.Time) ([]model.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Activity
	for _, a := range m.activities {
		if a.SelectedForDate == nil || a.IsCompleted || !containsString(groupIDs, a.GroupID) {
			continue
		}
		if !a.SelectedForDate.Before(since) {
			out = append(out, *copyActivity(a))
		}
	}
	return out, nil
}

func (m *MemoryStore) ListActivitiesSelectedBefore(_ context.Context, groupIDs []string, before time.Time, limit int) ([]model.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Activity
	for _, a := range m.activities {
		if a.SelectedForDate == nil || !containsString(groupIDs, a.GroupID) {
			continue
		}
		if a.SelectedForDate.Before(before) {
			out = append(out, *copyActivity(a))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SelectedForDate.After(*out[j].SelectedForDate)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) ListActivities(_ context.Context, limit int) ([]model.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Activity
	for _, a := range m.activities {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, *copyActivity(a))
	}
	return out, nil
}

func (m *MemoryStore) ClaimActivityForDate(_ context.Context, id string, date time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.findActivity(id)
	if a == nil {
		return false, ErrNotFound
	}
	if a.SelectedForDate != nil {
		return false, nil
	}
	d := date
	a.SelectedForDate = &d
	return true, nil
}

func (m *MemoryStore) MarkActivityCompleted(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.findActivity(id)
	if a == nil {
		return ErrNotFound
	}
	a.IsCompleted = true
	return nil
}

// --- Soumissions ---

func copySubmission(s *model.Submission) *model.Submission {
	cp := *s
	cp.Votes = append([]string(nil), s.Votes...)
	if s.Reactions != nil {
		cp.Reactions = make(map[string][]string, len(s.Reactions))
		for emoji, users := range s.Reactions {
			cp.Reactions[emoji] = append([]string(nil), users...)
		}
	}
	if s.Location != nil {
		loc := *s.Location
		cp.Location = &loc
	}
	return &cp
}

func (m *MemoryStore) InsertSubmission(_ context.Context, s *model.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions = append(m.submissions, copySubmission(s))
	return nil
}

func (m *MemoryStore) findSubmission(id string) *model.Submission {
	for _, s := range m.submissions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (m *MemoryStore) GetSubmission(_ context.Context, id string) (*model.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s := m.findSubmission(id); s != nil {
		return copySubmission(s), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) FindSubmission(_ context.Context, activityID, userID string) (*model.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.submissions {
		if s.ActivityID == activityID && s.UserID == userID {
			return copySubmission(s), nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) ListSubmissionsByActivity(_ context.Context, activityID string) ([]model.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Submission
	for _, s := range m.submissions {
		if s.ActivityID == activityID {
			out = append(out, *copySubmission(s))
		}
	}
	return out, nil
}

func (m *MemoryStore) CountSubmissionsByActivity(_ context.Context, activityID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.submissions {
		if s.ActivityID == activityID {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) CountSubmissionsByUser(_ context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.submissions {
		if s.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) CountUserSubmissionsInGroup(_ context.Context, userID, groupID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.submissions {
		if s.UserID != userID {
			continue
		}
		if a := m.findActivity(s.ActivityID); a != nil && a.GroupID == groupID {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) LatestUserSubmission(_ context.Context, userID string) (*model.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *model.Submission
	for _, s := range m.submissions {
		if s.UserID != userID {
			continue
		}
		if latest == nil || s.SubmittedAt.After(latest.SubmittedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil
	}
	return copySubmission(latest), nil
}

func (m *MemoryStore) AddSubmissionVote(_ context.Context, submissionID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.findSubmission(submissionID)
	if s == nil {
		return ErrNotFound
	}
	if !s.HasVote(userID) {
		s.Votes = append(s.Votes, userID)
	}
	return nil
}

func (m *MemoryStore) RemoveSubmissionVote(_ context.Context, submissionID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.findSubmission(submissionID)
	if s == nil {
		return ErrNotFound
	}
	s.Votes = removeString(s.Votes, userID)
	return nil
}

func (m *MemoryStore) SetSubmissionReactions(_ context.Context, submissionID string, reactions map[string][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.findSubmission(submissionID)
	if s == nil {
		return ErrNotFound
	}
	cp := make(map[string][]string, len(reactions))
	for emoji, users := range reactions {
		cp[emoji] = append([]string(nil), users...)
	}
	s.Reactions = cp
	return nil
}

// --- Snapshots ---

func (m *MemoryStore) InsertLeaderboardSnapshot(_ context.Context, snap *model.LeaderboardSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *snap
	cp.Entries = append([]model.LeaderboardEntry(nil), snap.Entries...)
	m.snapshots = append(m.snapshots, &cp)
	return nil
}

func (m *MemoryStore) LatestLeaderboardSnapshot(_ context.Context, groupID string) (*model.LeaderboardSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *model.LeaderboardSnapshot
	for _, snap := range m.snapshots {
		if snap.GroupID != groupID {
			continue
		}
		if latest == nil || snap.CreatedAt.After(latest.CreatedAt) {
			latest = snap
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	cp.Entries = append([]model.LeaderboardEntry(nil), latest.Entries...)
	return &cp, nil
}

// SnapshotCount est un helper de test : nombre de snapshots d'un groupe
func (m *MemoryStore) SnapshotCount(groupID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, snap := range m.snapshots {
		if snap.GroupID == groupID {
			n++
		}
	}
	return n
}

// --- Notifications ---

func (m *MemoryStore) InsertNotification(_ context.Context, n *model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *n
	m.notifs = append(m.notifs, &cp)
	return nil
}

func (m *MemoryStore) GetNotification(_ context.Context, id string) (*model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notifs {
		if n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListNotifications(_ context.Context, userID string, limit int) ([]model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Notification
	for _, n := range m.notifs {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) MarkNotificationRead(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notifs {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) MarkAllNotificationsRead(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notifs {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

// --- helpers ---

func removeString(list []string, v string) []string {
	out := list[:0]
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
