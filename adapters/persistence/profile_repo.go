package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-directory/internal/domain/profile"
	"github.com/khoahotran/profile-directory/pkg/apperror"
	"github.com/khoahotran/profile-directory/pkg/logger"
)

const profileColumns = "id, name, email, headline, education, skills, projects, links, bio, created_at, updated_at"

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

var psqlProfile = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// scanProfile is the single conversion path from a row to the entity.
// Both structured and builder-generated queries select profileColumns,
// so every result normalizes through here.
func scanProfile(row pgx.Row, l logger.Logger) (*profile.Profile, error) {
	p := &profile.Profile{}
	var educationBytes, skillsBytes, projectsBytes, linksBytes []byte

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.Headline,
		&educationBytes,
		&skillsBytes,
		&projectsBytes,
		&linksBytes,
		&p.Bio,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("profile", "")
		}
		return nil, apperror.NewInternal("failed to scan profile row", err)
	}

	if educationBytes != nil {
		p.Education = json.RawMessage(educationBytes)
	}
	if linksBytes != nil {
		p.Links = json.RawMessage(linksBytes)
	}

	p.Skills = []string{}
	if skillsBytes != nil {
		if err := json.Unmarshal(skillsBytes, &p.Skills); err != nil {
			l.Warn("Failed to unmarshal skills", zap.String("profile_id", p.ID.String()), zap.Error(err))
			p.Skills = []string{}
		}
	}
	p.Projects = []profile.ProjectEntry{}
	if projectsBytes != nil {
		if err := json.Unmarshal(projectsBytes, &p.Projects); err != nil {
			l.Warn("Failed to unmarshal projects", zap.String("profile_id", p.ID.String()), zap.Error(err))
			p.Projects = []profile.ProjectEntry{}
		}
	}

	return p, nil
}

func scanProfiles(rows pgx.Rows, l logger.Logger) ([]*profile.Profile, error) {
	defer rows.Close()
	profiles := make([]*profile.Profile, 0)

	for rows.Next() {
		p, err := scanProfile(rows, l)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profile rows", err)
	}
	return profiles, nil
}

func (r *postgresProfileRepo) Create(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	skillsBytes, err := json.Marshal(p.Skills)
	if err != nil {
		return nil, apperror.NewInternal("failed to marshal skills", err)
	}
	projectsBytes, err := json.Marshal(p.Projects)
	if err != nil {
		return nil, apperror.NewInternal("failed to marshal projects", err)
	}

	query := `
		INSERT INTO profiles (id, name, email, headline, education, skills, projects, links, bio)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + profileColumns

	row := r.db.QueryRow(ctx, query,
		p.ID, p.Name, p.Email, p.Headline,
		rawOrNil(p.Education), skillsBytes, projectsBytes, rawOrNil(p.Links),
		p.Bio,
	)
	created, err := scanProfile(row, r.logger)
	if err != nil {
		if pgErr := constraintError(err); pgErr != nil {
			return nil, apperror.NewConflict(pgErr.Message, pgErr)
		}
		return nil, err
	}
	return created, nil
}

func (r *postgresProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	p, err := scanProfile(row, r.logger)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("profile", id.String())
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresProfileRepo) Update(ctx context.Context, id uuid.UUID, upd profile.Update) (*profile.Profile, error) {
	if upd.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	builder := psqlProfile.Update("profiles")
	if upd.Name != nil {
		builder = builder.Set("name", *upd.Name)
	}
	if upd.Email != nil {
		builder = builder.Set("email", *upd.Email)
	}
	if upd.Headline != nil {
		builder = builder.Set("headline", *upd.Headline)
	}
	if upd.Education != nil {
		builder = builder.Set("education", []byte(upd.Education))
	}
	if upd.Skills != nil {
		skillsBytes, err := json.Marshal(*upd.Skills)
		if err != nil {
			return nil, apperror.NewInternal("failed to marshal skills", err)
		}
		builder = builder.Set("skills", skillsBytes)
	}
	if upd.Projects != nil {
		projectsBytes, err := json.Marshal(*upd.Projects)
		if err != nil {
			return nil, apperror.NewInternal("failed to marshal projects", err)
		}
		builder = builder.Set("projects", projectsBytes)
	}
	if upd.Links != nil {
		builder = builder.Set("links", []byte(upd.Links))
	}
	if upd.Bio != nil {
		builder = builder.Set("bio", *upd.Bio)
	}

	builder = builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + profileColumns)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build update query", err)
	}

	row := r.db.QueryRow(ctx, sql, args...)
	p, err := scanProfile(row, r.logger)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewNotFound("profile", id.String())
		}
		if pgErr := constraintError(err); pgErr != nil {
			return nil, apperror.NewConflict(pgErr.Message, pgErr)
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresProfileRepo) List(ctx context.Context, limit int) ([]*profile.Profile, error) {
	builder := psqlProfile.Select(profileColumns).
		From("profiles").
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query profiles", err)
	}

	return scanProfiles(rows, r.logger)
}

func (r *postgresProfileRepo) SearchText(ctx context.Context, query string, limit int) ([]*profile.Profile, error) {
	pattern := "%" + query + "%"
	builder := psqlProfile.Select(profileColumns).
		From("profiles").
		Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"headline": pattern},
			sq.ILike{"bio": pattern},
		}).
		Limit(uint64(limit))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build search query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to execute search query", err)
	}

	return scanProfiles(rows, r.logger)
}

func (r *postgresProfileRepo) FilterBySkill(ctx context.Context, skill string, limit int) ([]*profile.Profile, error) {
	// Containment against a parameterized JSON array. Never build the
	// array literal by string interpolation; the skill token is
	// caller-controlled.
	arr, err := json.Marshal([]string{skill})
	if err != nil {
		return nil, apperror.NewInternal("failed to marshal skill filter", err)
	}

	builder := psqlProfile.Select(profileColumns).
		From("profiles").
		Where(sq.Expr("skills @> ?::jsonb", arr)).
		Limit(uint64(limit))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build skill filter query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to execute skill filter query", err)
	}

	return scanProfiles(rows, r.logger)
}

func rawOrNil(raw json.RawMessage) any {
	if raw == nil {
		return nil
	}
	return []byte(raw)
}

// constraintError unwraps a Postgres integrity violation (class 23:
// unique, not-null, check) so it can surface as a client error.
func constraintError(err error) *pgconn.PgError {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Err != nil {
		err = appErr.Err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return pgErr
	}
	return nil
}
