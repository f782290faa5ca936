package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	model "github.com/MilesT98/Actify/internal/models"
)

const userColumns = `id, username, email, bio, interests, profile_photo_url,
	created_at, streak, total_points, completed_challenges, is_active`

// scanUser scanne une ligne SQL vers un UserProfile (pq.Array pour le
// TEXT[] des centres d'intérêt)
func scanUser(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.UserProfile, error) {
	var u model.UserProfile
	err := scanner.Scan(
		&u.ID, &u.Username, &u.Email, &u.Bio, pq.Array(&u.Interests), &u.ProfilePhotoURL,
		&u.CreatedAt, &u.Streak, &u.TotalPoints, &u.CompletedChallenges, &u.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStore) InsertUser(ctx context.Context, u *model.UserProfile, passwordHash string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, bio, interests, profile_photo_url,
			created_at, streak, total_points, completed_challenges, is_active)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		u.ID, u.Username, u.Email, passwordHash, u.Bio, pq.Array(u.Interests), u.ProfilePhotoURL,
		u.CreatedAt, u.Streak, u.TotalPoints, u.CompletedChallenges, u.IsActive,
	)
	return err
}

func (s *PostgresStore) GetUser(ctx context.Context, id string) (*model.UserProfile, error) {
	return scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*model.UserProfile, error) {
	return scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username=$1`, username))
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*model.UserProfile, error) {
	return scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email=$1`, email))
}

func (s *PostgresStore) GetCredentials(ctx context.Context, username string) (string, string, error) {
	var userID, passwordHash string
	err := s.db.QueryRow(ctx,
		`SELECT id, password_hash FROM users WHERE username=$1 AND is_active=true`,
		username,
	).Scan(&userID, &passwordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", "", ErrNotFound
		}
		return "", "", err
	}
	return userID, passwordHash, nil
}

func (s *PostgresStore) ListUsers(ctx context.Context, limit int) ([]model.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE is_active=true ORDER BY created_at`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.UserProfile
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (s *PostgresStore) UpdateUserProfile(ctx context.Context, id string, upd ProfileUpdate) error {
	sets := []string{}
	args := []interface{}{id}
	if upd.Bio != nil {
		args = append(args, *upd.Bio)
		sets = append(sets, fmt.Sprintf("bio=$%d", len(args)))
	}
	if upd.Interests != nil {
		args = append(args, pq.Array(upd.Interests))
		sets = append(sets, fmt.Sprintf("interests=$%d", len(args)))
	}
	if upd.ProfilePhotoURL != nil {
		args = append(args, *upd.ProfilePhotoURL)
		sets = append(sets, fmt.Sprintf("profile_photo_url=$%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}

	res, err := s.db.Exec(ctx,
		`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id=$1`, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) AddUserPoints(ctx context.Context, id string, delta int) error {
	res, err := s.db.Exec(ctx,
		`UPDATE users SET total_points = total_points + $2 WHERE id=$1`, id, delta)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) IncrementCompletedChallenges(ctx context.Context, id string) error {
	res, err := s.db.Exec(ctx,
		`UPDATE users SET completed_challenges = completed_challenges + 1 WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Sessions ---

func (s *PostgresStore) InsertSession(ctx context.Context, sess *model.Session) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO sessions (id, user_id, token, expires_at, is_active, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		sess.ID, sess.UserID, sess.Token, sess.ExpiresAt, sess.IsActive, sess.CreatedAt,
	)
	return err
}

func (s *PostgresStore) GetUserByToken(ctx context.Context, token string) (*model.UserProfile, error) {
	return scanUser(s.db.QueryRow(ctx,
		`SELECT u.id, u.username, u.email, u.bio, u.interests, u.profile_photo_url,
			u.created_at, u.streak, u.total_points, u.completed_challenges, u.is_active
		 FROM users u
		 INNER JOIN sessions s ON u.id = s.user_id
		 WHERE s.token=$1 AND s.is_active=true AND s.expires_at > NOW() AND u.is_active=true`,
		token))
}

func (s *PostgresStore) DeactivateSession(ctx context.Context, token string) error {
	res, err := s.db.Exec(ctx,
		`UPDATE sessions SET is_active=false WHERE token=$1 AND is_active=true`, token)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Centres d'intérêt ---

func (s *PostgresStore) InsertInterest(ctx context.Context, i *model.Interest) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO interests (id, name, category, icon) VALUES ($1,$2,$3,$4)`,
		i.ID, i.Name, i.Category, i.Icon,
	)
	return err
}

func (s *PostgresStore) GetInterestByName(ctx context.Context, name string) (*model.Interest, error) {
	var i model.Interest
	err := s.db.QueryRow(ctx,
		`SELECT id, name, category, icon FROM interests WHERE name=$1`, name,
	).Scan(&i.ID, &i.Name, &i.Category, &i.Icon)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &i, nil
}

func (s *PostgresStore) ListInterests(ctx context.Context) ([]model.Interest, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, category, icon FROM interests ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interests []model.Interest
	for rows.Next() {
		var i model.Interest
		if err := rows.Scan(&i.ID, &i.Name, &i.Category, &i.Icon); err != nil {
			return nil, err
		}
		interests = append(interests, i)
	}
	return interests, rows.Err()
}
