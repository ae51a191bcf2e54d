package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/football-api/models"
	"github.com/lib/pq"
)

var (
	ErrClubNotFound      = errors.New("club not found")
	ErrClubNameConflict  = errors.New("club name conflict")
	ErrClubLeagueInvalid = errors.New("club league conflict or invalid")
)

type ClubRepository interface {
	Create(ctx context.Context, club *models.Club) error
	GetByID(ctx context.Context, id int) (*models.Club, error)
	GetAll(ctx context.Context) ([]models.Club, error)
	Update(ctx context.Context, club *models.Club) error
	Delete(ctx context.Context, id int) error
	ExistsByName(ctx context.Context, name string, excludeID int) (bool, error)
	// ExistingIDs returns the subset of ids that exist, in ascending order.
	ExistingIDs(ctx context.Context, ids []int) ([]int, error)
}

type postgresClubRepository struct {
	db *sql.DB
}

func NewPostgresClubRepository(db *sql.DB) ClubRepository {
	return &postgresClubRepository{db: db}
}

const clubWithLeagueSelect = `
		SELECT
			k.id, k.nama_klub, k.tgl_berdiri, k.kota, k.id_liga, k.created_at, k.updated_at,
			l.id, l.nama_liga, l.negara, l.created_at, l.updated_at
		FROM klubs k
		JOIN ligas l ON l.id = k.id_liga`

func scanClubWithLeague(row rowScanner, club *models.Club) error {
	var league models.League
	err := row.Scan(
		&club.ID,
		&club.Name,
		&club.FoundedOn,
		&club.City,
		&club.LeagueID,
		&club.CreatedAt,
		&club.UpdatedAt,
		&league.ID,
		&league.Name,
		&league.Country,
		&league.CreatedAt,
		&league.UpdatedAt,
	)
	if err != nil {
		return err
	}
	club.League = &league
	return nil
}

func mapClubWriteError(err error) error {
	if constraint, ok := pqConstraintError(err, pqUniqueViolation); ok && constraint == "klubs_nama_klub_key" {
		return ErrClubNameConflict
	}
	if constraint, ok := pqConstraintError(err, pqForeignKeyViolation); ok && constraint == "klubs_id_liga_fkey" {
		return ErrClubLeagueInvalid
	}
	return err
}

func (r *postgresClubRepository) Create(ctx context.Context, club *models.Club) error {
	query := `
		INSERT INTO klubs (nama_klub, tgl_berdiri, kota, id_liga)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, club.Name, club.FoundedOn, club.City, club.LeagueID).
		Scan(&club.ID, &club.CreatedAt, &club.UpdatedAt)
	if err != nil {
		return mapClubWriteError(err)
	}
	return nil
}

func (r *postgresClubRepository) GetByID(ctx context.Context, id int) (*models.Club, error) {
	query := clubWithLeagueSelect + ` WHERE k.id = $1`

	var club models.Club
	if err := scanClubWithLeague(r.db.QueryRowContext(ctx, query, id), &club); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClubNotFound
		}
		return nil, err
	}
	return &club, nil
}

func (r *postgresClubRepository) GetAll(ctx context.Context) ([]models.Club, error) {
	query := clubWithLeagueSelect + ` ORDER BY k.created_at DESC, k.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clubs := make([]models.Club, 0)
	for rows.Next() {
		var club models.Club
		if err := scanClubWithLeague(rows, &club); err != nil {
			return nil, err
		}
		clubs = append(clubs, club)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return clubs, nil
}

func (r *postgresClubRepository) Update(ctx context.Context, club *models.Club) error {
	query := `
		UPDATE klubs
		SET nama_klub = $1, tgl_berdiri = $2, kota = $3, id_liga = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, club.Name, club.FoundedOn, club.City, club.LeagueID, club.ID).
		Scan(&club.CreatedAt, &club.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrClubNotFound
		}
		return mapClubWriteError(err)
	}
	return nil
}

func (r *postgresClubRepository) Delete(ctx context.Context, id int) error {
	// fan_klub rows go with the club (ON DELETE CASCADE).
	result, err := r.db.ExecContext(ctx, `DELETE FROM klubs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrClubNotFound)
}

func (r *postgresClubRepository) ExistsByName(ctx context.Context, name string, excludeID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM klubs WHERE nama_klub = $1 AND id <> $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresClubRepository) ExistingIDs(ctx context.Context, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return []int{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `SELECT id FROM klubs WHERE id = ANY($1) ORDER BY id`, pq.Array(toInt64s(ids)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make([]int, 0, len(ids))
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found = append(found, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return found, nil
}
