package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"
	"unsafe"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekspresi/itm-sub002/internal/domain"
	"github.com/ekspresi/itm-sub002/internal/domain/entity"
	"github.com/ekspresi/itm-sub002/internal/domain/repository"
	"github.com/ekspresi/itm-sub002/internal/infrastructure/memory"
)

func seedCensus(t *testing.T, s *memory.Store, id string, year int, location string) {
	t.Helper()
	require.NoError(t, s.Censuses().Create(context.Background(), &entity.Census{
		ID: id, Year: year, LocationID: location, Status: entity.CensusStatusInProgress, CreatedAt: time.Now(),
	}))
}

func TestStore_Run_ErrorDescartaCambios(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	seedCensus(t, s, "c1", 2025, "hall")
	boom := errors.New("boom")

	err := s.Run(ctx, func(cr repository.CensusRepository, ir repository.LineItemRepository) error {
		require.NoError(t, ir.Create(ctx, &entity.CensusLineItem{ID: "i1", CensusID: "c1", Name: "Chair"}))
		require.NoError(t, cr.UpdateTotal(ctx, "c1", decimal.NewFromInt(99), time.Now()))
		return boom
	})
	require.ErrorIs(t, err, boom)

	items, err := s.LineItems().ListByCensus(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, items)
	c, err := s.Censuses().GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, c.TotalValue.IsZero())
}

func TestStore_Run_CommitPublicaCambios(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	seedCensus(t, s, "c1", 2025, "hall")

	err := s.Run(ctx, func(cr repository.CensusRepository, ir repository.LineItemRepository) error {
		if err := ir.Create(ctx, &entity.CensusLineItem{ID: "i1", CensusID: "c1", Name: "Chair"}); err != nil {
			return err
		}
		return cr.UpdateTotal(ctx, "c1", decimal.NewFromInt(5), time.Now())
	})
	require.NoError(t, err)

	items, err := s.LineItems().ListByCensus(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, items, 1)
	c, err := s.Censuses().GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "5", c.TotalValue.String())
}

func TestStore_Run_ContextoCancelado(t *testing.T) {
	s := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Run(ctx, func(repository.CensusRepository, repository.LineItemRepository) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestCensusRepo_UnicidadAnioUbicacion(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	seedCensus(t, s, "c1", 2025, "hall")

	err := s.Censuses().Create(ctx, &entity.Census{ID: "c2", Year: 2025, LocationID: "hall"})
	assert.ErrorIs(t, err, domain.ErrLocationAlreadyCensused)

	seedCensus(t, s, "c3", 2025, "store")
	err = s.Censuses().Update(ctx, &entity.Census{ID: "c3", Year: 2025, LocationID: "hall"})
	assert.ErrorIs(t, err, domain.ErrLocationAlreadyCensused)

	n, err := s.Censuses().CountByLocation(ctx, "hall")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCensusRepo_UpdateNoPisaTotal(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	seedCensus(t, s, "c1", 2025, "hall")
	require.NoError(t, s.Censuses().UpdateTotal(ctx, "c1", decimal.NewFromInt(42), time.Now()))

	require.NoError(t, s.Censuses().Update(ctx, &entity.Census{ID: "c1", Year: 2025, LocationID: "hall", Status: "x"}))

	c, err := s.Censuses().GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "42", c.TotalValue.String())
	assert.Equal(t, "x", c.Status)
}

func TestCensusRepo_CopiasAisladas(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Censuses().Create(ctx, &entity.Census{ID: "c1", Year: 2025, LocationID: "hall", Committee: []string{"Ana"}}))

	c, err := s.Censuses().GetByID(ctx, "c1")
	require.NoError(t, err)
	c.Committee[0] = "Mutado"

	again, err := s.Censuses().GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana"}, again.Committee)
}

// volatile devuelve un string que comparte memoria con buf, como los parámetros
// de ruta de fasthttp cuando el buffer de la petición se recicla.
func volatile(s string) (string, []byte) {
	buf := []byte(s)
	return unsafe.String(&buf[0], len(buf)), buf
}

func TestStore_ClavesNoDependenDelBufferDelLlamador(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	seedCensus(t, s, "c1", 2025, "hall")

	id, buf := volatile("c1")
	require.NoError(t, s.Censuses().UpdateTotal(ctx, id, decimal.NewFromInt(42), time.Now()))
	require.NoError(t, s.LineItems().Create(ctx, &entity.CensusLineItem{
		ID: "i1", CensusID: id, Name: "Chair", QuantityFound: 1, PricePerUnit: decimal.NewFromInt(42),
	}))
	copy(buf, "c9")

	c, err := s.Censuses().GetByID(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, c, "el censo debe seguir accesible por su id original")
	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, "42", c.TotalValue.String())

	items, err := s.LineItems().ListByCensus(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "c1", items[0].CensusID)

	none, err := s.LineItems().ListByCensus(ctx, "c9")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUserRepo_EmailUnicoSinMayusculas(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u1", Email: "admin@centro.org"}))

	err := s.Users().Create(ctx, &entity.User{ID: "u2", Email: "ADMIN@centro.org"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	u, err := s.Users().GetByEmail(ctx, "Admin@Centro.org")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
}
