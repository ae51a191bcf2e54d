package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Dosada05/football-api/models"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var playerColumnNames = []string{
	"id", "nama_pemain", "foto", "tgl_lahir", "harga_pasar", "posisi", "negara", "created_at", "updated_at",
}

func TestPlayerRepository_CreateAndConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresPlayerRepository(db)
	now := time.Now()
	born, err := models.ParseDate("1987-06-24")
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO pemains`)).
		WithArgs("Lionel Messi", "fotos/a.png", "1987-06-24", 35000000.0, "fw", "Argentina").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(10, now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO pemains`)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "pemains_nama_pemain_key"})

	player := &models.Player{
		Name:        "Lionel Messi",
		PhotoKey:    "fotos/a.png",
		BirthDate:   born,
		MarketPrice: 35000000,
		Position:    models.PositionForward,
		Country:     "Argentina",
	}
	require.NoError(t, repo.Create(context.Background(), player))
	assert.Equal(t, 10, player.ID)

	err = repo.Create(context.Background(), player)
	assert.ErrorIs(t, err, ErrPlayerNameConflict)
}

func TestPlayerRepository_GetByIDScansNumericAndPosition(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresPlayerRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM pemains WHERE id = $1`)).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(playerColumnNames).
			AddRow(10, "Lionel Messi", "fotos/a.png", []byte("1987-06-24"), []byte("35000000.00"), "fw", "Argentina", now, now))

	player, err := repo.GetByID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 35000000.0, player.MarketPrice)
	assert.Equal(t, models.PositionForward, player.Position)
	assert.Equal(t, "1987-06-24", player.BirthDate.String())
	assert.Equal(t, "fotos/a.png", player.PhotoKey)
}

func TestPlayerRepository_UpdateAndDeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresPlayerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE pemains`)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM pemains WHERE id = $1`)).
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Player{ID: 10, Position: models.PositionForward})
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	err = repo.Delete(context.Background(), 10)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestPlayerRepository_UpdateMapsNumericOverflow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresPlayerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE pemains`)).
		WillReturnError(&pq.Error{Code: "22003", Message: "numeric field overflow"})

	err := repo.Update(context.Background(), &models.Player{ID: 1, Name: "X", MarketPrice: 1e20})
	assert.ErrorIs(t, err, ErrPlayerPriceRange)
	require.NoError(t, mock.ExpectationsWereMet())
}
