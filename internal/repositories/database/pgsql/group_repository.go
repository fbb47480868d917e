package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/famledger/family_finance_app/internal/apperrors"
	"github.com/famledger/family_finance_app/internal/core/domain"
	portsrepo "github.com/famledger/family_finance_app/internal/core/ports/repositories"
	"github.com/famledger/family_finance_app/internal/models"
	"github.com/famledger/family_finance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxGroupRepository struct {
	BaseRepository
}

// newPgxGroupRepository creates a new repository for family group data.
func newPgxGroupRepository(pool *pgxpool.Pool) portsrepo.GroupRepositoryWithTx {
	return &PgxGroupRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GroupRepositoryWithTx = (*PgxGroupRepository)(nil)

const groupColumns = `group_id, name, owner_user_id, created_at, created_by, last_updated_at, last_updated_by`

// SaveGroup persists a new group and enrolls the owner as its first member,
// in one database transaction.
func (r *PgxGroupRepository) SaveGroup(ctx context.Context, group domain.FamilyGroup) error {
	m := mapping.ToModelFamilyGroup(group)
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO family_groups (group_id, name, owner_user_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	if _, err := tx.Exec(ctx, query,
		m.GroupID,
		m.Name,
		m.OwnerUserID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	); err != nil {
		return apperrors.NewAppError(500, "failed to save group "+m.GroupID, err)
	}

	memberQuery := `INSERT INTO family_group_members (group_id, user_id, joined_at) VALUES ($1, $2, $3);`
	if _, err := tx.Exec(ctx, memberQuery, m.GroupID, m.OwnerUserID, m.CreatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to enroll owner in group "+m.GroupID, err)
	}

	return r.Commit(ctx, tx)
}

// AddMember enrolls a user into a group.
func (r *PgxGroupRepository) AddMember(ctx context.Context, groupID, userID string) error {
	query := `INSERT INTO family_group_members (group_id, user_id, joined_at) VALUES ($1, $2, now());`
	_, err := r.Pool.Exec(ctx, query, groupID, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: user %s is already a member of group %s", apperrors.ErrDuplicate, userID, groupID)
		}
		return apperrors.NewAppError(500, "failed to add member to group "+groupID, err)
	}
	return nil
}

// FindGroupByID retrieves a group by its ID.
func (r *PgxGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.FamilyGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM family_groups WHERE group_id = $1;`
	var m models.FamilyGroup
	err := r.Pool.QueryRow(ctx, query, groupID).Scan(
		&m.GroupID,
		&m.Name,
		&m.OwnerUserID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find group by ID "+groupID, err)
	}
	g := mapping.ToDomainFamilyGroup(m)
	return &g, nil
}

// ListGroupsByUser retrieves the groups a user belongs to.
func (r *PgxGroupRepository) ListGroupsByUser(ctx context.Context, userID string) ([]domain.FamilyGroup, error) {
	query := `
		SELECT g.group_id, g.name, g.owner_user_id, g.created_at, g.created_by, g.last_updated_at, g.last_updated_by
		FROM family_groups g
		JOIN family_group_members gm ON g.group_id = gm.group_id
		WHERE gm.user_id = $1
		ORDER BY g.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query groups for user "+userID, err)
	}
	defer rows.Close()

	groups := []domain.FamilyGroup{}
	for rows.Next() {
		var m models.FamilyGroup
		if err := rows.Scan(
			&m.GroupID,
			&m.Name,
			&m.OwnerUserID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan group row", err)
		}
		groups = append(groups, mapping.ToDomainFamilyGroup(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating group rows", err)
	}
	return groups, nil
}

// IsMember reports whether the user belongs to the group.
func (r *PgxGroupRepository) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM family_group_members WHERE group_id = $1 AND user_id = $2);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, groupID, userID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check membership for group "+groupID, err)
	}
	return exists, nil
}
