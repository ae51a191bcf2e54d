package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/football-api/models"
)

var (
	ErrLeagueNotFound     = errors.New("league not found")
	ErrLeagueNameConflict = errors.New("league name conflict")
	ErrLeagueInUse        = errors.New("league cannot be deleted as it is in use")
)

type LeagueRepository interface {
	Create(ctx context.Context, league *models.League) error
	GetByID(ctx context.Context, id int) (*models.League, error)
	GetAll(ctx context.Context) ([]models.League, error)
	Update(ctx context.Context, league *models.League) error
	Delete(ctx context.Context, id int) error
	ExistsByName(ctx context.Context, name string, excludeID int) (bool, error)
}

type postgresLeagueRepository struct {
	db *sql.DB
}

func NewPostgresLeagueRepository(db *sql.DB) LeagueRepository {
	return &postgresLeagueRepository{db: db}
}

const leagueColumns = `id, nama_liga, negara, created_at, updated_at`

func scanLeague(row rowScanner, league *models.League) error {
	return row.Scan(&league.ID, &league.Name, &league.Country, &league.CreatedAt, &league.UpdatedAt)
}

func (r *postgresLeagueRepository) Create(ctx context.Context, league *models.League) error {
	query := `INSERT INTO ligas (nama_liga, negara) VALUES ($1, $2) RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, league.Name, league.Country).
		Scan(&league.ID, &league.CreatedAt, &league.UpdatedAt)
	if err != nil {
		if constraint, ok := pqConstraintError(err, pqUniqueViolation); ok && constraint == "ligas_nama_liga_key" {
			return ErrLeagueNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresLeagueRepository) GetByID(ctx context.Context, id int) (*models.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM ligas WHERE id = $1`

	var league models.League
	err := scanLeague(r.db.QueryRowContext(ctx, query, id), &league)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, err
	}
	return &league, nil
}

func (r *postgresLeagueRepository) GetAll(ctx context.Context) ([]models.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM ligas ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leagues := make([]models.League, 0)
	for rows.Next() {
		var league models.League
		if err := scanLeague(rows, &league); err != nil {
			return nil, err
		}
		leagues = append(leagues, league)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return leagues, nil
}

func (r *postgresLeagueRepository) Update(ctx context.Context, league *models.League) error {
	query := `
		UPDATE ligas SET nama_liga = $1, negara = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, league.Name, league.Country, league.ID).
		Scan(&league.CreatedAt, &league.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrLeagueNotFound
		}
		if constraint, ok := pqConstraintError(err, pqUniqueViolation); ok && constraint == "ligas_nama_liga_key" {
			return ErrLeagueNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresLeagueRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM ligas WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		// klubs.id_liga is ON DELETE RESTRICT
		if _, ok := pqConstraintError(err, pqForeignKeyViolation); ok {
			return ErrLeagueInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrLeagueNotFound)
}

func (r *postgresLeagueRepository) ExistsByName(ctx context.Context, name string, excludeID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM ligas WHERE nama_liga = $1 AND id <> $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
