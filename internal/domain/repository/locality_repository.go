package repository

import (
	"context"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// LocalityFilter filtros del listado de localidades.
type LocalityFilter struct {
	Level           string
	UbigeoPrefix    string
	Text            string
	IncludeInactive bool
}

// LocalityRepository puerto de persistencia para localidades (ubigeo).
// La eliminación física la guarda el caso de uso con el conteo de rutas que
// referencian la localidad.
type LocalityRepository interface {
	Create(ctx context.Context, l *entity.Locality) error
	GetByID(ctx context.Context, id string) (*entity.Locality, error)
	GetByUbigeo(ctx context.Context, ubigeo string) (*entity.Locality, error)
	Update(ctx context.Context, l *entity.Locality) error
	List(ctx context.Context, f LocalityFilter, p Page) ([]*entity.Locality, int64, error)
	// HardDelete elimina físicamente; solo debe invocarse tras pasar la guarda.
	HardDelete(ctx context.Context, id string) error
}
