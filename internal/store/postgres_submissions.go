package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	model "github.com/MilesT98/Actify/internal/models"
)

const submissionColumns = `id, activity_id, user_id, photo_url, caption,
	location, submitted_at, votes, reactions, is_featured`

// scanSubmission scanne une ligne SQL vers une Submission : TEXT[] pour
// les votes, JSONB pour la position et la carte des réactions
func scanSubmission(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Submission, error) {
	var sub model.Submission
	var locationRaw, reactionsRaw []byte
	err := scanner.Scan(
		&sub.ID, &sub.ActivityID, &sub.UserID, &sub.PhotoURL, &sub.Caption,
		&locationRaw, &sub.SubmittedAt, pq.Array(&sub.Votes), &reactionsRaw, &sub.IsFeatured,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if len(locationRaw) > 0 {
		var loc model.GeoPoint
		if err := json.Unmarshal(locationRaw, &loc); err != nil {
			return nil, fmt.Errorf("decode location: %w", err)
		}
		sub.Location = &loc
	}
	sub.Reactions = map[string][]string{}
	if len(reactionsRaw) > 0 {
		if err := json.Unmarshal(reactionsRaw, &sub.Reactions); err != nil {
			return nil, fmt.Errorf("decode reactions: %w", err)
		}
	}
	return &sub, nil
}

func (s *PostgresStore) InsertSubmission(ctx context.Context, sub *model.Submission) error {
	var locationRaw []byte
	if sub.Location != nil {
		raw, err := json.Marshal(sub.Location)
		if err != nil {
			return fmt.Errorf("encode location: %w", err)
		}
		locationRaw = raw
	}
	reactionsRaw, err := json.Marshal(sub.Reactions)
	if err != nil {
		return fmt.Errorf("encode reactions: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO submissions (id, activity_id, user_id, photo_url, caption,
			location, submitted_at, votes, reactions, is_featured)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		sub.ID, sub.ActivityID, sub.UserID, sub.PhotoURL, sub.Caption,
		locationRaw, sub.SubmittedAt, pq.Array(sub.Votes), reactionsRaw, sub.IsFeatured,
	)
	return err
}

func (s *PostgresStore) GetSubmission(ctx context.Context, id string) (*model.Submission, error) {
	return scanSubmission(s.db.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE id=$1`, id))
}

func (s *PostgresStore) FindSubmission(ctx context.Context, activityID, userID string) (*model.Submission, error) {
	sub, err := scanSubmission(s.db.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE activity_id=$1 AND user_id=$2`,
		activityID, userID))
	if err == ErrNotFound {
		return nil, nil
	}
	return sub, err
}

func (s *PostgresStore) ListSubmissionsByActivity(ctx context.Context, activityID string) ([]model.Submission, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE activity_id=$1 ORDER BY submitted_at`,
		activityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []model.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, *sub)
	}
	return submissions, rows.Err()
}

func (s *PostgresStore) CountSubmissionsByActivity(ctx context.Context, activityID string) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM submissions WHERE activity_id=$1`, activityID).Scan(&count)
	return count, err
}

func (s *PostgresStore) CountSubmissionsByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM submissions WHERE user_id=$1`, userID).Scan(&count)
	return count, err
}

func (s *PostgresStore) CountUserSubmissionsInGroup(ctx context.Context, userID, groupID string) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM submissions s
		 INNER JOIN activities a ON s.activity_id = a.id
		 WHERE s.user_id=$1 AND a.group_id=$2`,
		userID, groupID).Scan(&count)
	return count, err
}

func (s *PostgresStore) LatestUserSubmission(ctx context.Context, userID string) (*model.Submission, error) {
	sub, err := scanSubmission(s.db.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM submissions
		 WHERE user_id=$1 ORDER BY submitted_at DESC LIMIT 1`,
		userID))
	if err == ErrNotFound {
		return nil, nil
	}
	return sub, err
}

func (s *PostgresStore) AddSubmissionVote(ctx context.Context, submissionID, userID string) error {
	res, err := s.db.Exec(ctx,
		`UPDATE submissions SET votes = array_append(votes, $2)
		 WHERE id=$1 AND NOT ($2 = ANY(votes))`,
		submissionID, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) RemoveSubmissionVote(ctx context.Context, submissionID, userID string) error {
	res, err := s.db.Exec(ctx,
		`UPDATE submissions SET votes = array_remove(votes, $2) WHERE id=$1`,
		submissionID, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) SetSubmissionReactions(ctx context.Context, submissionID string, reactions map[string][]string) error {
	raw, err := json.Marshal(reactions)
	if err != nil {
		return fmt.Errorf("encode reactions: %w", err)
	}
	res, err := s.db.Exec(ctx,
		`UPDATE submissions SET reactions=$2 WHERE id=$1`, submissionID, raw)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Snapshots de classement ---

func (s *PostgresStore) InsertLeaderboardSnapshot(ctx context.Context, snap *model.LeaderboardSnapshot) error {
	raw, err := json.Marshal(snap.Entries)
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO leaderboard_snapshots (id, group_id, created_at, entries)
		 VALUES ($1,$2,$3,$4)`,
		snap.ID, snap.GroupID, snap.CreatedAt, raw,
	)
	return err
}

func (s *PostgresStore) LatestLeaderboardSnapshot(ctx context.Context, groupID string) (*model.LeaderboardSnapshot, error) {
	var snap model.LeaderboardSnapshot
	var entriesRaw []byte
	err := s.db.QueryRow(ctx,
		`SELECT id, group_id, created_at, entries FROM leaderboard_snapshots
		 WHERE group_id=$1 ORDER BY created_at DESC LIMIT 1`,
		groupID,
	).Scan(&snap.ID, &snap.GroupID, &snap.CreatedAt, &entriesRaw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(entriesRaw, &snap.Entries); err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}
	return &snap, nil
}

// --- Notifications ---

func (s *PostgresStore) InsertNotification(ctx context.Context, n *model.Notification) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO notifications (id, user_id, title, message, created_at, read, type, link)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		n.ID, n.UserID, n.Title, n.Message, n.CreatedAt, n.Read, n.Type, n.Link,
	)
	return err
}

func (s *PostgresStore) GetNotification(ctx context.Context, id string) (*model.Notification, error) {
	var n model.Notification
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, title, message, created_at, read, type, link
		 FROM notifications WHERE id=$1`, id,
	).Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.CreatedAt, &n.Read, &n.Type, &n.Link)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (s *PostgresStore) ListNotifications(ctx context.Context, userID string, limit int) ([]model.Notification, error) {
	query := `SELECT id, user_id, title, message, created_at, read, type, link
		 FROM notifications WHERE user_id=$1 ORDER BY created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.CreatedAt, &n.Read, &n.Type, &n.Link); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (s *PostgresStore) MarkNotificationRead(ctx context.Context, id string) error {
	res, err := s.db.Exec(ctx,
		`UPDATE notifications SET read=true WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE notifications SET read=true WHERE user_id=$1 AND read=false`, userID)
	return err
}
