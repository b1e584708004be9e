package docstore_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/store"
	"github.com/drtc-puno/sirret-api/internal/infrastructure/docstore"
)

type doc struct {
	ID        string    `json:"id"`
	RUC       string    `json:"ruc"`
	State     string    `json:"state"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	Tags      []string  `json:"tags,omitempty"`
	Nested    struct {
		Name string `json:"name"`
	} `json:"nested"`
}

func seed(t *testing.T) *docstore.Memory {
	t.Helper()
	m := docstore.NewMemory()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, d := range []doc{
		{ID: "a", RUC: "20100000001", State: "AUTHORIZED", IsActive: true, Tags: []string{"r1", "r2"}},
		{ID: "b", RUC: "20100000002", State: "IN_PROCESS", IsActive: true},
		{ID: "c", RUC: "20500000003", State: "AUTHORIZED", IsActive: false},
	} {
		d.CreatedAt = base.AddDate(0, 0, i)
		d.Nested.Name = "empresa " + d.ID
		require.NoError(t, m.Insert(ctx, "empresas", d.ID, d))
	}
	return m
}

func TestMemory_FindByID(t *testing.T) {
	m := seed(t)
	var got doc
	require.NoError(t, m.FindByID(context.Background(), "empresas", "a", &got))
	assert.Equal(t, "20100000001", got.RUC)

	err := m.FindByID(context.Background(), "empresas", "zz", &got)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemory_InsertDuplicado(t *testing.T) {
	m := seed(t)
	err := m.Insert(context.Background(), "empresas", "a", doc{ID: "a"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestMemory_Operadores(t *testing.T) {
	m := seed(t)
	ctx := context.Background()

	count := func(q store.Query) int64 {
		n, err := m.Count(ctx, "empresas", q)
		require.NoError(t, err)
		return n
	}

	assert.EqualValues(t, 2, count(store.Query{"isActive": true}))
	assert.EqualValues(t, 1, count(store.Query{"state": "AUTHORIZED", "isActive": true}))
	assert.EqualValues(t, 2, count(store.Query{"ruc": store.Prefix("201")}))
	assert.EqualValues(t, 2, count(store.Query{"state": store.In("AUTHORIZED")}))
	assert.EqualValues(t, 1, count(store.Query{"state": store.Ne("AUTHORIZED"), "isActive": store.Exists(true)}))
	assert.EqualValues(t, 1, count(store.Query{"tags": store.AnyEq("r1")}))
	assert.EqualValues(t, 1, count(store.Query{"nested.name": store.Contains("empresa b")}))
	assert.EqualValues(t, 2, count(store.Query{"createdAt": store.Gte(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))}))
}

func TestMemory_FindManyOrdenYPaginacion(t *testing.T) {
	m := seed(t)
	var got []doc
	opts := store.FindOptions{Sort: []store.Sort{{Field: "createdAt", Desc: true}}, Limit: 2}
	require.NoError(t, m.FindMany(context.Background(), "empresas", nil, opts, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "b", got[1].ID)

	opts.Skip = 2
	require.NoError(t, m.FindMany(context.Background(), "empresas", nil, opts, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestMemory_UpdateOne(t *testing.T) {
	m := seed(t)
	ctx := context.Background()
	n, err := m.UpdateOne(ctx, "empresas", store.Query{"id": "b"}, store.Query{"state": "AUTHORIZED"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var got doc
	require.NoError(t, m.FindByID(ctx, "empresas", "b", &got))
	assert.Equal(t, "AUTHORIZED", got.State)
	assert.Equal(t, "20100000002", got.RUC) // el resto del documento queda intacto
}

func TestMemory_Aggregate(t *testing.T) {
	m := seed(t)
	out, err := m.Aggregate(context.Background(), "empresas", store.Pipeline{
		Match:   store.Query{"isActive": true},
		GroupBy: "state",
	})
	require.NoError(t, err)
	assert.Equal(t, []store.GroupCount{
		{Key: "AUTHORIZED", Count: 1},
		{Key: "IN_PROCESS", Count: 1},
	}, out)
}

func TestMemory_Delete(t *testing.T) {
	m := seed(t)
	ctx := context.Background()
	require.NoError(t, m.Delete(ctx, "empresas", "c"))
	var got doc
	assert.ErrorIs(t, m.FindByID(ctx, "empresas", "c", &got), domain.ErrNotFound)
	assert.ErrorIs(t, m.Delete(ctx, "empresas", "c"), domain.ErrNotFound)
}

func TestMemory_LecturasConcurrentesSobreColeccionInexistente(t *testing.T) {
	m := seed(t)
	ctx := context.Background()

	// lecturas sobre colecciones aún no creadas en paralelo con escrituras:
	// las rutas de lectura no deben materializar la colección
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			var got doc
			_ = m.FindByID(ctx, "resoluciones", "x", &got)
			_ = m.FindOne(ctx, "rutas", store.Query{"code": "RT-01"}, &got)
			_, _ = m.Count(ctx, "vehiculos", nil)
			var many []doc
			_ = m.FindMany(ctx, "conductores", nil, store.FindOptions{}, &many)
			_, _ = m.Aggregate(ctx, "expedientes", store.Pipeline{GroupBy: "state"})
			_ = m.Insert(ctx, "resoluciones", fmt.Sprintf("r-%d", n), doc{ID: fmt.Sprintf("r-%d", n)})
		}(i)
	}
	wg.Wait()

	n, err := m.Count(ctx, "resoluciones", nil)
	require.NoError(t, err)
	assert.EqualValues(t, 8, n)
}
