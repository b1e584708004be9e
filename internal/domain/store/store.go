// Package store define el puerto de persistencia orientado a colecciones de
// documentos JSON. Cualquier backend que cumpla estas firmas sirve: la
// implementación principal es PostgreSQL con columna JSONB y existe una
// en memoria para pruebas y demos.
//
// El almacén garantiza atomicidad por documento; no hay transacciones entre
// documentos. Donde importa la consistencia entre una referencia directa y un
// arreglo desnormalizado, el servicio escribe en orden (hijo primero, luego el
// arreglo del padre) y la rutina de reconciliación repara la deriva.
package store

import "context"

// Colecciones del registro.
const (
	ColEmpresas      = "empresas"
	ColResoluciones  = "resoluciones"
	ColRutas         = "rutas"
	ColVehiculos     = "vehiculos"
	ColVehiculoDatos = "vehiculo_datos"
	ColConductores   = "conductores"
	ColExpedientes   = "expedientes"
	ColLocalidades   = "localidades"
	ColDocumentos    = "documentos"
	ColTerminales    = "terminales"
	ColOficinas      = "oficinas"
	ColCatalogos     = "catalogos"
	ColUsuarios      = "usuarios"
)

// Query filtro por campos del documento. La clave es la ruta del campo con
// puntos ("legalName.canonical"); el valor es un literal (igualdad) o un Cond.
type Query map[string]any

// Sort orden de un listado.
type Sort struct {
	Field string
	Desc  bool
}

// FindOptions paginación y orden para FindMany.
type FindOptions struct {
	Skip  int
	Limit int
	Sort  []Sort
}

// GroupCount resultado de una agregación de conteo agrupado.
type GroupCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// Pipeline agregación mínima que ambos backends soportan: filtrar y contar
// agrupando por un campo.
type Pipeline struct {
	Match   Query
	GroupBy string
}

// DocumentStore capacidad mínima de persistencia que consumen los
// repositorios. out recibe un puntero a struct (FindByID/FindOne) o un
// puntero a slice (FindMany); la decodificación es vía JSON.
type DocumentStore interface {
	FindByID(ctx context.Context, collection, id string, out any) error
	FindOne(ctx context.Context, collection string, q Query, out any) error
	FindMany(ctx context.Context, collection string, q Query, opts FindOptions, out any) error
	Count(ctx context.Context, collection string, q Query) (int64, error)
	Insert(ctx context.Context, collection, id string, doc any) error
	// Replace sobrescribe el documento completo (updateOne con patch total).
	Replace(ctx context.Context, collection, id string, doc any) error
	// UpdateOne aplica un patch de campos de primer nivel al primer documento
	// que cumpla el filtro. Devuelve la cantidad de documentos modificados.
	UpdateOne(ctx context.Context, collection string, q Query, patch Query) (int64, error)
	UpdateMany(ctx context.Context, collection string, q Query, patch Query) (int64, error)
	Aggregate(ctx context.Context, collection string, p Pipeline) ([]GroupCount, error)
}

// Deleter capacidad opcional de eliminación física. No forma parte del puerto
// mínimo: solo la consume la ruta administrativa guardada (p. ej. eliminar una
// localidad sin rutas activas).
type Deleter interface {
	Delete(ctx context.Context, collection, id string) error
}
