package store

// Operadores de consulta. Un valor plano en Query significa igualdad; un Cond
// expresa el resto de los operadores que ambos backends implementan.
const (
	OpEq       = "eq"
	OpNe       = "ne"
	OpIn       = "in"
	OpPrefix   = "prefix"   // prefijo literal sobre el valor textual
	OpContains = "contains" // substring sobre el valor textual
	OpGte      = "gte"
	OpLte      = "lte"
	OpRange    = "range" // gte y lte a la vez sobre el mismo campo
	OpAnyEq    = "anyEq" // membresía en un arreglo del documento
	OpExists   = "exists"
)

// Cond condición con operador explícito.
type Cond struct {
	Op     string
	Value  any
	Values []any
}

// Ne distinto de.
func Ne(v any) Cond { return Cond{Op: OpNe, Value: v} }

// In pertenencia a un conjunto de literales.
func In(vs ...any) Cond { return Cond{Op: OpIn, Values: vs} }

// Prefix prefijo textual (búsqueda por RUC o placa parcial).
func Prefix(s string) Cond { return Cond{Op: OpPrefix, Value: s} }

// Contains substring textual (búsqueda libre sobre searchText plegado).
func Contains(s string) Cond { return Cond{Op: OpContains, Value: s} }

// Gte mayor o igual. Las fechas se comparan en su forma RFC 3339, que ordena
// lexicográficamente en UTC.
func Gte(v any) Cond { return Cond{Op: OpGte, Value: v} }

// Lte menor o igual.
func Lte(v any) Cond { return Cond{Op: OpLte, Value: v} }

// Range ambos extremos inclusive sobre el mismo campo (rangos de fechas).
func Range(from, to any) Cond { return Cond{Op: OpRange, Values: []any{from, to}} }

// AnyEq algún elemento del arreglo igual al literal.
func AnyEq(v any) Cond { return Cond{Op: OpAnyEq, Value: v} }

// Exists presencia (o ausencia) del campo.
func Exists(present bool) Cond { return Cond{Op: OpExists, Value: present} }
