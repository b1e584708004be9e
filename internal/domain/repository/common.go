// Package repository define los puertos de persistencia por agregado (DIP).
// Las implementaciones viven en infrastructure/registry sobre el
// DocumentStore; los casos de uso solo conocen estas interfaces.
package repository

// Page paginación de listados. El orden por defecto es createdAt descendente.
type Page struct {
	Skip  int
	Limit int
}

// Normalize aplica los valores por defecto de paginación.
func (p *Page) Normalize() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Skip < 0 {
		p.Skip = 0
	}
}
