package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	model "github.com/MilesT98/Actify/internal/models"
)

const groupColumns = `id, name, description, created_by, members, admins,
	invite_code, group_photo_url, created_at, is_active, max_members`

func scanGroup(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Group, error) {
	var g model.Group
	err := scanner.Scan(
		&g.ID, &g.Name, &g.Description, &g.CreatedBy, pq.Array(&g.Members), pq.Array(&g.Admins),
		&g.InviteCode, &g.GroupPhotoURL, &g.CreatedAt, &g.IsActive, &g.MaxMembers,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (s *PostgresStore) InsertGroup(ctx context.Context, g *model.Group) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO groups (id, name, description, created_by, members, admins,
			invite_code, group_photo_url, created_at, is_active, max_members)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		g.ID, g.Name, g.Description, g.CreatedBy, pq.Array(g.Members), pq.Array(g.Admins),
		g.InviteCode, g.GroupPhotoURL, g.CreatedAt, g.IsActive, g.MaxMembers,
	)
	return err
}

func (s *PostgresStore) GetGroup(ctx context.Context, id string) (*model.Group, error) {
	return scanGroup(s.db.QueryRow(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE id=$1 AND is_active=true`, id))
}

func (s *PostgresStore) GetGroupByInviteCode(ctx context.Context, code string) (*model.Group, error) {
	return scanGroup(s.db.QueryRow(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE invite_code=$1 AND is_active=true`, code))
}

func (s *PostgresStore) ListGroupsByMember(ctx context.Context, userID string) ([]model.Group, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE $1 = ANY(members) AND is_active=true ORDER BY created_at`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectGroups(rows)
}

func (s *PostgresStore) ListPublicGroups(ctx context.Context) ([]model.Group, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE is_active=true ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectGroups(rows)
}

func collectGroups(rows pgx.Rows) ([]model.Group, error) {
	var groups []model.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *g)
	}
	return groups, rows.Err()
}

// array_append/array_remove gardent l'opération atomique côté base :
// pas de lecture-modification-écriture du tableau en Go
func (s *PostgresStore) AddGroupMember(ctx context.Context, groupID, userID string) error {
	res, err := s.db.Exec(ctx,
		`UPDATE groups SET members = array_append(members, $2)
		 WHERE id=$1 AND NOT ($2 = ANY(members))`,
		groupID, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) RemoveGroupMember(ctx context.Context, groupID, userID string) error {
	res, err := s.db.Exec(ctx,
		`UPDATE groups SET members = array_remove(members, $2) WHERE id=$1`,
		groupID, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) AddGroupAdmin(ctx context.Context, groupID, userID string) error {
	res, err := s.db.Exec(ctx,
		`UPDATE groups SET admins = array_append(admins, $2)
		 WHERE id=$1 AND NOT ($2 = ANY(admins))`,
		groupID, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) RemoveGroupAdmin(ctx context.Context, groupID, userID string) error {
	res, err := s.db.Exec(ctx,
		`UPDATE groups SET admins = array_remove(admins, $2) WHERE id=$1`,
		groupID, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
