package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nicman16/MiniMarketInnova/internal/store"
)

type fila struct {
	Nombre string `json:"nombre"`
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, store.ColProductos, []fila{{Nombre: "Leche"}, {Nombre: "Pan"}}))

	var out []fila
	require.NoError(t, st.Load(ctx, store.ColProductos, &out))
	require.Len(t, out, 2)
	assert.Equal(t, "Leche", out[0].Nombre)

	// Save reemplaza la colección completa.
	require.NoError(t, st.Save(ctx, store.ColProductos, []fila{{Nombre: "Café"}}))
	out = nil
	require.NoError(t, st.Load(ctx, store.ColProductos, &out))
	require.Len(t, out, 1)
}

func TestMemoryStoreColeccionInexistente(t *testing.T) {
	st := store.NewMemoryStore()

	out := []fila{{Nombre: "previo"}}
	require.NoError(t, st.Load(context.Background(), "nada", &out))
	// Una colección nunca guardada deja dest intacto.
	assert.Equal(t, "previo", out[0].Nombre)
}
