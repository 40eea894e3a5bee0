package repository

import (
	"context"
	"testing"

	"roa-marketplace-backend/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalificacionRepository_Exists(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM calificaciones`).
		WithArgs("rater", "rated", "orden-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewCalificacionRepository(mock)
	exists, err := repo.Exists(context.Background(), "rater", "rated", "orden-1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalificacionRepository_Create_UniqueViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO calificaciones`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "calificaciones_calificador_id_calificado_id_orden_id_key"})

	repo := NewCalificacionRepository(mock)
	err = repo.Create(context.Background(), &models.Calificacion{
		ID:            "c1",
		CalificadorID: "rater",
		CalificadoID:  "rated",
		OrdenID:       "orden-1",
		Puntuacion:    5,
	})
	assert.ErrorIs(t, err, ErrDuplicateCalificacion)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalificacionRepository_AverageForUser_NoRatings(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT COALESCE\(AVG\(puntuacion\), 0\) FROM calificaciones`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"avg"}).AddRow(0.0))

	repo := NewCalificacionRepository(mock)
	avg, err := repo.AverageForUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, avg)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalificacionRepository_CountForUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM calificaciones`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	repo := NewCalificacionRepository(mock)
	count, err := repo.CountForUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCalificacionRepository_Delete_ScopedToAuthor(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM calificaciones WHERE id = \$1 AND calificador_id = \$2`).
		WithArgs("c1", "someone-else").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewCalificacionRepository(mock)
	err = repo.Delete(context.Background(), "c1", "someone-else")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
