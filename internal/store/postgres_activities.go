package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	model "github.com/MilesT98/Actify/internal/models"
)

const activityColumns = `id, group_id, created_by, title, description, emoji,
	difficulty, created_at, selected_for_date, deadline, is_completed`

func scanActivity(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Activity, error) {
	var a model.Activity
	err := scanner.Scan(
		&a.ID, &a.GroupID, &a.CreatedBy, &a.Title, &a.Description, &a.Emoji,
		&a.Difficulty, &a.CreatedAt, &a.SelectedForDate, &a.Deadline, &a.IsCompleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func collectActivities(rows pgx.Rows) ([]model.Activity, error) {
	var activities []model.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

func (s *PostgresStore) InsertActivity(ctx context.Context, a *model.Activity) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO activities (id, group_id, created_by, title, description, emoji,
			difficulty, created_at, selected_for_date, deadline, is_completed)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		a.ID, a.GroupID, a.CreatedBy, a.Title, a.Description, a.Emoji,
		a.Difficulty, a.CreatedAt, a.SelectedForDate, a.Deadline, a.IsCompleted,
	)
	return err
}

func (s *PostgresStore) GetActivity(ctx context.Context, id string) (*model.Activity, error) {
	return scanActivity(s.db.QueryRow(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE id=$1`, id))
}

func (s *PostgresStore) FindActivitySelectedBetween(ctx context.Context, groupID string, from, to time.Time) (*model.Activity, error) {
	a, err := scanActivity(s.db.QueryRow(ctx,
		`SELECT `+activityColumns+` FROM activities
		 WHERE group_id=$1 AND selected_for_date >= $2 AND selected_for_date < $3
		 LIMIT 1`,
		groupID, from, to))
	if err == ErrNotFound {
		// L'absence est un résultat normal pour les Find*
		return nil, nil
	}
	return a, err
}

func (s *PostgresStore) ListPendingActivities(ctx context.Context, groupID string) ([]model.Activity, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+activityColumns+` FROM activities
		 WHERE group_id=$1 AND selected_for_date IS NULL
		 ORDER BY created_at`,
		groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectActivities(rows)
}

func (s *PostgresStore) ListGroupActivities(ctx context.Context, groupID string) ([]model.Activity, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE group_id=$1 ORDER BY created_at`,
		groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectActivities(rows)
}

func (s *PostgresStore) ListActivitiesSelectedSince(ctx context.Context, groupIDs []string, since time.Time) ([]model.Activity, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+activityColumns+` FROM activities
		 WHERE group_id = ANY($1) AND selected_for_date >= $2 AND is_completed = false
		 ORDER BY selected_for_date`,
		pq.Array(groupIDs), since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectActivities(rows)
}

func (s *PostgresStore) ListActivitiesSelectedBefore(ctx context.Context, groupIDs []string, before time.Time, limit int) ([]model.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities
		 WHERE group_id = ANY($1) AND selected_for_date < $2
		 ORDER BY selected_for_date DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	rows, err := s.db.Query(ctx, query, pq.Array(groupIDs), before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectActivities(rows)
}

func (s *PostgresStore) ListActivities(ctx context.Context, limit int) ([]model.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities ORDER BY created_at`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectActivities(rows)
}

// ClaimActivityForDate pose le tampon seulement s'il est encore absent :
// écriture conditionnelle atomique, premier écrivain gagnant
func (s *PostgresStore) ClaimActivityForDate(ctx context.Context, id string, date time.Time) (bool, error) {
	res, err := s.db.Exec(ctx,
		`UPDATE activities SET selected_for_date=$2
		 WHERE id=$1 AND selected_for_date IS NULL`,
		id, date)
	if err != nil {
		return false, err
	}
	if res.RowsAffected() > 0 {
		return true, nil
	}

	// Course perdue ou activité inconnue : distinguer les deux
	var exists bool
	if err := s.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM activities WHERE id=$1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	if !exists {
		return false, ErrNotFound
	}
	return false, nil
}

func (s *PostgresStore) MarkActivityCompleted(ctx context.Context, id string) error {
	res, err := s.db.Exec(ctx,
		`UPDATE activities SET is_completed=true WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
