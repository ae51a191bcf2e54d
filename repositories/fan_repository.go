package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/football-api/models"
	"github.com/lib/pq"
)

var (
	ErrFanNotFound    = errors.New("fan not found")
	ErrFanClubInvalid = errors.New("fan club conflict or invalid")
)

// FanRepository methods taking an SQLExecutor run on it when non-nil so they
// can join a transaction; with nil they fall back to the pool.
type FanRepository interface {
	Create(ctx context.Context, exec SQLExecutor, fan *models.Fan) error
	GetByID(ctx context.Context, id int) (*models.Fan, error)
	GetAll(ctx context.Context) ([]models.Fan, error)
	Update(ctx context.Context, exec SQLExecutor, fan *models.Fan) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error

	ListClubIDs(ctx context.Context, exec SQLExecutor, fanID int) ([]int, error)
	AttachClubs(ctx context.Context, exec SQLExecutor, fanID int, clubIDs []int) error
	DetachClubs(ctx context.Context, exec SQLExecutor, fanID int, clubIDs []int) error
	DetachAllClubs(ctx context.Context, exec SQLExecutor, fanID int) error
	// ListClubsByFan returns the clubs of the given fans keyed by fan id.
	// A nil fanIDs slice loads the associations of every fan.
	ListClubsByFan(ctx context.Context, fanIDs []int) (map[int][]models.Club, error)
}

type postgresFanRepository struct {
	db *sql.DB
}

func NewPostgresFanRepository(db *sql.DB) FanRepository {
	return &postgresFanRepository{db: db}
}

func (r *postgresFanRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresFanRepository) Create(ctx context.Context, exec SQLExecutor, fan *models.Fan) error {
	query := `INSERT INTO fans (nama_fan) VALUES ($1) RETURNING id, created_at, updated_at`
	return r.getExecutor(exec).QueryRowContext(ctx, query, fan.Name).
		Scan(&fan.ID, &fan.CreatedAt, &fan.UpdatedAt)
}

func (r *postgresFanRepository) GetByID(ctx context.Context, id int) (*models.Fan, error) {
	query := `SELECT id, nama_fan, created_at, updated_at FROM fans WHERE id = $1`

	var fan models.Fan
	err := r.db.QueryRowContext(ctx, query, id).Scan(&fan.ID, &fan.Name, &fan.CreatedAt, &fan.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFanNotFound
		}
		return nil, err
	}
	return &fan, nil
}

func (r *postgresFanRepository) GetAll(ctx context.Context) ([]models.Fan, error) {
	query := `SELECT id, nama_fan, created_at, updated_at FROM fans ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fans := make([]models.Fan, 0)
	for rows.Next() {
		var fan models.Fan
		if err := rows.Scan(&fan.ID, &fan.Name, &fan.CreatedAt, &fan.UpdatedAt); err != nil {
			return nil, err
		}
		fans = append(fans, fan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return fans, nil
}

func (r *postgresFanRepository) Update(ctx context.Context, exec SQLExecutor, fan *models.Fan) error {
	query := `
		UPDATE fans SET nama_fan = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING created_at, updated_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query, fan.Name, fan.ID).Scan(&fan.CreatedAt, &fan.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrFanNotFound
		}
		return err
	}
	return nil
}

func (r *postgresFanRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM fans WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrFanNotFound)
}

func (r *postgresFanRepository) ListClubIDs(ctx context.Context, exec SQLExecutor, fanID int) ([]int, error) {
	rows, err := r.getExecutor(exec).QueryContext(ctx,
		`SELECT id_klub FROM fan_klub WHERE id_fan = $1 ORDER BY id_klub`, fanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *postgresFanRepository) AttachClubs(ctx context.Context, exec SQLExecutor, fanID int, clubIDs []int) error {
	if len(clubIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO fan_klub (id_fan, id_klub)
		SELECT $1, unnest($2::int[])
		ON CONFLICT (id_fan, id_klub) DO NOTHING`

	_, err := r.getExecutor(exec).ExecContext(ctx, query, fanID, pq.Array(toInt64s(clubIDs)))
	if err != nil {
		if _, ok := pqConstraintError(err, pqForeignKeyViolation); ok {
			return ErrFanClubInvalid
		}
		return err
	}
	return nil
}

func (r *postgresFanRepository) DetachClubs(ctx context.Context, exec SQLExecutor, fanID int, clubIDs []int) error {
	if len(clubIDs) == 0 {
		return nil
	}
	_, err := r.getExecutor(exec).ExecContext(ctx,
		`DELETE FROM fan_klub WHERE id_fan = $1 AND id_klub = ANY($2)`, fanID, pq.Array(toInt64s(clubIDs)))
	return err
}

func (r *postgresFanRepository) DetachAllClubs(ctx context.Context, exec SQLExecutor, fanID int) error {
	_, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM fan_klub WHERE id_fan = $1`, fanID)
	return err
}

func (r *postgresFanRepository) ListClubsByFan(ctx context.Context, fanIDs []int) (map[int][]models.Club, error) {
	query := `
		SELECT
			fk.id_fan,
			k.id, k.nama_klub, k.tgl_berdiri, k.kota, k.id_liga, k.created_at, k.updated_at,
			l.id, l.nama_liga, l.negara, l.created_at, l.updated_at
		FROM fan_klub fk
		JOIN klubs k ON k.id = fk.id_klub
		JOIN ligas l ON l.id = k.id_liga`

	var (
		rows *sql.Rows
		err  error
	)
	if fanIDs == nil {
		rows, err = r.db.QueryContext(ctx, query+` ORDER BY fk.id_fan, k.id`)
	} else {
		if len(fanIDs) == 0 {
			return map[int][]models.Club{}, nil
		}
		rows, err = r.db.QueryContext(ctx, query+` WHERE fk.id_fan = ANY($1) ORDER BY fk.id_fan, k.id`, pq.Array(toInt64s(fanIDs)))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byFan := make(map[int][]models.Club)
	for rows.Next() {
		var (
			fanID  int
			club   models.Club
			league models.League
		)
		err := rows.Scan(
			&fanID,
			&club.ID, &club.Name, &club.FoundedOn, &club.City, &club.LeagueID, &club.CreatedAt, &club.UpdatedAt,
			&league.ID, &league.Name, &league.Country, &league.CreatedAt, &league.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		club.League = &league
		byFan[fanID] = append(byFan[fanID], club)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return byFan, nil
}
