package repository

import (
	"context"
	"testing"
	"time"

	"roa-marketplace-backend/internal/models"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var loteColumnNames = []string{
	"id", "user_id", "tipo_residuo", "peso_estimado", "ubicacion_lat", "ubicacion_lng",
	"direccion", "fecha_disponible", "descripcion", "estado", "status", "created_at", "updated_at",
}

func TestLoteRepository_ListAvailable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	rows := pgxmock.NewRows(loteColumnNames).
		AddRow("l1", "u1", models.ROACascaraFruta, 5.0, 10.0, 10.0,
			nil, nil, nil, models.BatchDisponible, models.ModerationAprobado, now, now).
		AddRow("l2", "u2", models.ROAPososCafe, 2.5, 10.2, 10.2,
			nil, nil, nil, models.BatchDisponible, models.ModerationPendiente, now, now)

	mock.ExpectQuery(`SELECT (.+) FROM lotes WHERE estado = \$1 AND status <> \$2 ORDER BY created_at DESC`).
		WithArgs(models.BatchDisponible, models.ModerationRechazado).
		WillReturnRows(rows)

	repo := NewLoteRepository(mock)
	lotes, err := repo.ListAvailable(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, lotes, 2)
	assert.Equal(t, "l1", lotes[0].ID)
	assert.Equal(t, models.ROAPososCafe, lotes[1].TipoResiduo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoteRepository_ListAvailable_TypeFilter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	tipo := models.ROACascaraHuevo
	rows := pgxmock.NewRows(loteColumnNames).
		AddRow("l3", "u3", tipo, 1.0, 4.6, -74.0,
			nil, nil, nil, models.BatchDisponible, models.ModerationAprobado, now, now)

	mock.ExpectQuery(`SELECT (.+) FROM lotes WHERE estado = \$1 AND status <> \$2 AND tipo_residuo = \$3`).
		WithArgs(models.BatchDisponible, models.ModerationRechazado, tipo).
		WillReturnRows(rows)

	repo := NewLoteRepository(mock)
	lotes, err := repo.ListAvailable(context.Background(), &tipo)
	require.NoError(t, err)
	require.Len(t, lotes, 1)
	assert.Equal(t, tipo, lotes[0].TipoResiduo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoteRepository_UpdateEstado_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE lotes SET estado = \$1`).
		WithArgs(models.BatchReservado, "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewLoteRepository(mock)
	err = repo.UpdateEstado(context.Background(), "missing", models.BatchReservado)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
