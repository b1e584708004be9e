package validate

import (
	"sync"

	"github.com/drtc-puno/sirret-api/internal/domain/entity"
)

// Catalogs snapshot en memoria de las enumeraciones configurables. Los
// validadores consultan el snapshot en cada escritura; el caso de uso de
// catálogos lo recarga desde el almacén al arrancar y bajo demanda.
//
// Si una clave no tiene catálogo cargado se usan los valores por defecto
// compilados en entity, de modo que el sistema valida igual con la base vacía.
type Catalogs struct {
	mu    sync.RWMutex
	codes map[string][]string
}

// NewCatalogs crea el snapshot con las listas por defecto.
func NewCatalogs() *Catalogs {
	return &Catalogs{codes: map[string][]string{
		entity.CatalogCompanyStates:     entity.CompanyStates,
		entity.CatalogServiceKinds:      entity.ServiceKinds,
		entity.CatalogVehicleCategories: entity.VehicleCategories,
		entity.CatalogFuelKinds:         entity.FuelKinds,
	}}
}

// Replace sustituye los códigos admitidos de la clave.
func (c *Catalogs) Replace(key string, codes []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.codes[key] = append([]string(nil), codes...)
}

// Codes devuelve los códigos admitidos de la clave (copia).
func (c *Catalogs) Codes(key string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.codes[key]...)
}

// Allowed informa si el código pertenece al catálogo de la clave. Una clave
// sin catálogo admite cualquier valor.
func (c *Catalogs) Allowed(key, code string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	list, ok := c.codes[key]
	if !ok || len(list) == 0 {
		return true
	}
	for _, v := range list {
		if v == code {
			return true
		}
	}
	return false
}
