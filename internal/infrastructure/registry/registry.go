// Package registry implementa los puertos de repository sobre el
// DocumentStore. Cada repositorio traduce entidad ↔ documento, mantiene el
// campo de búsqueda plegado y hace cumplir la unicidad por clave natural.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/store"
)

// createdDesc orden por defecto de todos los listados.
var createdDesc = []store.Sort{{Field: "createdAt", Desc: true}}

func getByID[T any](ctx context.Context, st store.DocumentStore, col, id string) (*T, error) {
	var v T
	if err := st.FindByID(ctx, col, id, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func findOne[T any](ctx context.Context, st store.DocumentStore, col string, q store.Query) (*T, error) {
	var v T
	if err := st.FindOne(ctx, col, q, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func findMany[T any](ctx context.Context, st store.DocumentStore, col string, q store.Query, opts store.FindOptions) ([]*T, error) {
	var vs []*T
	if err := st.FindMany(ctx, col, q, opts, &vs); err != nil {
		return nil, err
	}
	return vs, nil
}

// ensureUnique falla con ErrConflict si ya existe un documento activo que
// cumple el filtro de clave natural.
func ensureUnique(ctx context.Context, st store.DocumentStore, col string, q store.Query, key string) error {
	q["isActive"] = true
	n, err := st.Count(ctx, col, q)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%s ya registrado: %w", key, domain.ErrConflict)
	}
	return nil
}

// notFoundAsNil convierte ErrNotFound en (nil, nil) para los chequeos de
// existencia donde la ausencia no es un error.
func notFoundAsNil[T any](v *T, err error) (*T, error) {
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return v, err
}
