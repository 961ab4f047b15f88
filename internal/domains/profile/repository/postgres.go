package repository

import (
	"context"
	"fmt"
	"strings"

	"portfolio-backend/internal/domains/profile/model"
	"portfolio-backend/internal/infrastructure/database"
	"portfolio-backend/internal/shared/authz"
	"portfolio-backend/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const profileColumns = `id, identity_id, email, display_name, role, avatar_url, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func scanProfile(row pgx.Row) (*model.Profile, error) {
	var p model.Profile
	err := row.Scan(
		&p.ID, &p.IdentityID, &p.Email, &p.DisplayName,
		&p.Role, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// mapError: no rows → not found, unique violation → email/identity đã tồn tại
func mapError(err error, op string) error {
	switch {
	case database.IsNoRows(err):
		return model.ErrProfileNotFound
	case database.IsUniqueViolation(err):
		return model.ErrEmailTaken.Wrap(err)
	default:
		return fmt.Errorf("%s profile: %w", op, err)
	}
}

func (r *postgresRepository) Create(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	query := `
		INSERT INTO profiles (identity_id, email, display_name, role, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + profileColumns

	created, err := scanProfile(r.pool.QueryRow(ctx, query,
		p.IdentityID, p.Email, p.DisplayName, p.Role, p.AvatarURL,
	))
	if err != nil {
		return nil, mapError(err, "create")
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	p, err := scanProfile(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "get")
	}
	return p, nil
}

func (r *postgresRepository) GetByIdentityID(ctx context.Context, identityID string) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE identity_id = $1`

	p, err := scanProfile(r.pool.QueryRow(ctx, query, identityID))
	if err != nil {
		return nil, mapError(err, "get")
	}
	return p, nil
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE LOWER(email) = LOWER($1)`

	p, err := scanProfile(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, mapError(err, "get")
	}
	return p, nil
}

func buildWhereClause(filter model.ProfileFilter) (string, []interface{}) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if filter.Role != "" {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argIndex))
		args = append(args, filter.Role)
		argIndex++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(`(email ILIKE $%d ESCAPE '\' OR display_name ILIKE $%d ESCAPE '\')`, argIndex, argIndex))
		args = append(args, database.ContainsPattern(filter.Search))
	}

	return strings.Join(conditions, " AND "), args
}

func (r *postgresRepository) List(ctx context.Context, filter model.ProfileFilter) ([]*model.Profile, error) {
	where, args := buildWhereClause(filter)
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE ` + where + ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*model.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return profiles, nil
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, req model.UpdateProfileRequest) (*model.Profile, error) {
	b := database.NewUpdateBuilder("profiles").
		SetIf(req.DisplayName != nil, "display_name", req.DisplayName).
		SetIf(req.AvatarURL != nil, "avatar_url", utils.EmptyToNil(req.AvatarURL)).
		SetIf(req.Role != nil, "role", req.Role)

	query, args := b.Build("id", id, profileColumns)

	p, err := scanProfile(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "update")
	}
	return p, nil
}

func (r *postgresRepository) LinkIdentity(ctx context.Context, id uuid.UUID, identityID string) (*model.Profile, error) {
	query, args := database.NewUpdateBuilder("profiles").
		Set("identity_id", identityID).
		Build("id", id, profileColumns)

	p, err := scanProfile(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapError(err, "link")
	}
	return p, nil
}

// SetRoleByEmail upsert theo email: profile chưa đăng nhập lần nào được tạo với identity placeholder
func (r *postgresRepository) SetRoleByEmail(ctx context.Context, email string, role authz.Role) (*model.Profile, error) {
	return database.WithTx(ctx, r.pool, func(tx pgx.Tx) (*model.Profile, error) {
		query := `
			UPDATE profiles SET role = $2, updated_at = NOW()
			WHERE LOWER(email) = LOWER($1)
			RETURNING ` + profileColumns

		p, err := scanProfile(tx.QueryRow(ctx, query, email, role))
		if err == nil {
			return p, nil
		}
		if !database.IsNoRows(err) {
			return nil, mapError(err, "set role")
		}

		insert := `
			INSERT INTO profiles (identity_id, email, display_name, role)
			VALUES ($1, $2, $3, $4)
			RETURNING ` + profileColumns

		p, err = scanProfile(tx.QueryRow(ctx, insert,
			PendingIdentity(email), email, model.DefaultDisplayName(email), role,
		))
		if err != nil {
			return nil, mapError(err, "set role")
		}
		return p, nil
	})
}

// PendingIdentity là identity placeholder cho profile được grant trước lần đăng nhập đầu tiên
func PendingIdentity(email string) string {
	return "pending:" + strings.ToLower(email)
}

// IsPendingIdentity kiểm tra identity placeholder
func IsPendingIdentity(identityID string) bool {
	return strings.HasPrefix(identityID, "pending:")
}
