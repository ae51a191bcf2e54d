package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/football-api/models"
)

var (
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerNameConflict = errors.New("player name conflict")
	ErrPlayerPriceRange   = errors.New("player market price out of range")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	GetAll(ctx context.Context) ([]models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	Delete(ctx context.Context, id int) error
	ExistsByName(ctx context.Context, name string, excludeID int) (bool, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `id, nama_pemain, foto, tgl_lahir, harga_pasar, posisi, negara, created_at, updated_at`

func scanPlayer(row rowScanner, p *models.Player) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.PhotoKey,
		&p.BirthDate,
		&p.MarketPrice,
		&p.Position,
		&p.Country,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

func mapPlayerWriteError(err error) error {
	if constraint, ok := pqConstraintError(err, pqUniqueViolation); ok && constraint == "pemains_nama_pemain_key" {
		return ErrPlayerNameConflict
	}
	if _, ok := pqConstraintError(err, pqNumericOutOfRange); ok {
		return ErrPlayerPriceRange
	}
	return err
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO pemains (nama_pemain, foto, tgl_lahir, harga_pasar, posisi, negara)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		player.Name,
		player.PhotoKey,
		player.BirthDate,
		player.MarketPrice,
		player.Position,
		player.Country,
	).Scan(&player.ID, &player.CreatedAt, &player.UpdatedAt)
	if err != nil {
		return mapPlayerWriteError(err)
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM pemains WHERE id = $1`

	var player models.Player
	if err := scanPlayer(r.db.QueryRowContext(ctx, query, id), &player); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &player, nil
}

func (r *postgresPlayerRepository) GetAll(ctx context.Context) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM pemains ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var player models.Player
		if err := scanPlayer(rows, &player); err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	query := `
		UPDATE pemains
		SET nama_pemain = $1, foto = $2, tgl_lahir = $3, harga_pasar = $4, posisi = $5, negara = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		player.Name,
		player.PhotoKey,
		player.BirthDate,
		player.MarketPrice,
		player.Position,
		player.Country,
		player.ID,
	).Scan(&player.CreatedAt, &player.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPlayerNotFound
		}
		return mapPlayerWriteError(err)
	}
	return nil
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pemains WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) ExistsByName(ctx context.Context, name string, excludeID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM pemains WHERE nama_pemain = $1 AND id <> $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
