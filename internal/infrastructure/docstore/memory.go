// Package docstore contiene las implementaciones del puerto
// store.DocumentStore: PostgreSQL (columna JSONB vía pgx) y una variante en
// memoria para pruebas y demostraciones.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/store"
)

// Memory implementación en memoria del DocumentStore. Serializa cada
// documento vía JSON igual que el backend real para que las pruebas ejerzan
// la misma forma de datos.
type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string]map[string]any // colección -> id -> documento
}

var _ store.DocumentStore = (*Memory)(nil)

// NewMemory crea un almacén vacío.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]map[string]any)}
}

// collection crea la colección si no existe. Solo para rutas de escritura,
// siempre bajo el lock exclusivo.
func (m *Memory) collection(name string) map[string]map[string]any {
	col, ok := m.data[name]
	if !ok {
		col = make(map[string]map[string]any)
		m.data[name] = col
	}
	return col
}

// lookup devuelve la colección sin crearla; nil se comporta como colección
// vacía en las rutas de lectura, que corren bajo el lock compartido.
func (m *Memory) lookup(name string) map[string]map[string]any {
	return m.data[name]
}

// FindByID busca por id; domain.ErrNotFound si no existe.
func (m *Memory) FindByID(_ context.Context, collection, id string, out any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.lookup(collection)[id]
	if !ok {
		return domain.ErrNotFound
	}
	return decode(doc, out)
}

// FindOne devuelve el primer documento que cumple el filtro (orden por id
// para que sea determinista); domain.ErrNotFound si ninguno.
func (m *Memory) FindOne(_ context.Context, collection string, q store.Query, out any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.sortedIDs(collection) {
		doc := m.lookup(collection)[id]
		if matches(doc, q) {
			return decode(doc, out)
		}
	}
	return domain.ErrNotFound
}

// FindMany lista los documentos que cumplen el filtro con orden y paginación.
func (m *Memory) FindMany(_ context.Context, collection string, q store.Query, opts store.FindOptions, out any) error {
	m.mu.RLock()
	docs := make([]map[string]any, 0)
	for _, id := range m.sortedIDs(collection) {
		doc := m.lookup(collection)[id]
		if matches(doc, q) {
			docs = append(docs, doc)
		}
	}
	m.mu.RUnlock()

	sortDocs(docs, opts.Sort)
	if opts.Skip > 0 {
		if opts.Skip >= len(docs) {
			docs = nil
		} else {
			docs = docs[opts.Skip:]
		}
	}
	if opts.Limit > 0 && opts.Limit < len(docs) {
		docs = docs[:opts.Limit]
	}
	return decode(docs, out)
}

// Count cuenta los documentos que cumplen el filtro.
func (m *Memory) Count(_ context.Context, collection string, q store.Query) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, doc := range m.lookup(collection) {
		if matches(doc, q) {
			n++
		}
	}
	return n, nil
}

// Insert inserta; domain.ErrConflict si el id ya existe.
func (m *Memory) Insert(_ context.Context, collection, id string, doc any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	col := m.collection(collection)
	if _, exists := col[id]; exists {
		return fmt.Errorf("insert %s/%s: %w", collection, id, domain.ErrConflict)
	}
	d, err := toDoc(doc)
	if err != nil {
		return err
	}
	col[id] = d
	return nil
}

// Replace sobrescribe el documento completo; domain.ErrNotFound si no existe.
func (m *Memory) Replace(_ context.Context, collection, id string, doc any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	col := m.collection(collection)
	if _, exists := col[id]; !exists {
		return fmt.Errorf("replace %s/%s: %w", collection, id, domain.ErrNotFound)
	}
	d, err := toDoc(doc)
	if err != nil {
		return err
	}
	col[id] = d
	return nil
}

// UpdateOne aplica el patch de primer nivel al primer documento que cumple.
func (m *Memory) UpdateOne(_ context.Context, collection string, q store.Query, patch store.Query) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.sortedIDs(collection) {
		doc := m.lookup(collection)[id]
		if matches(doc, q) {
			if err := applyPatch(doc, patch); err != nil {
				return 0, err
			}
			return 1, nil
		}
	}
	return 0, nil
}

// UpdateMany aplica el patch a todos los documentos que cumplen.
func (m *Memory) UpdateMany(_ context.Context, collection string, q store.Query, patch store.Query) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, id := range m.sortedIDs(collection) {
		doc := m.lookup(collection)[id]
		if matches(doc, q) {
			if err := applyPatch(doc, patch); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

// Aggregate cuenta agrupando por el campo indicado.
func (m *Memory) Aggregate(_ context.Context, collection string, p store.Pipeline) ([]store.GroupCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := make(map[string]int64)
	for _, doc := range m.lookup(collection) {
		if !matches(doc, p.Match) {
			continue
		}
		v, _ := fieldValue(doc, p.GroupBy)
		counts[asString(v)]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]store.GroupCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, store.GroupCount{Key: k, Count: counts[k]})
	}
	return out, nil
}

// Delete elimina físicamente un documento. No forma parte del puerto: solo la
// ruta administrativa guardada (localidad sin rutas) lo invoca vía aserción
// de tipo, igual que hace el backend PostgreSQL.
func (m *Memory) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	col := m.collection(collection)
	if _, ok := col[id]; !ok {
		return fmt.Errorf("delete %s/%s: %w", collection, id, domain.ErrNotFound)
	}
	delete(col, id)
	return nil
}

func (m *Memory) sortedIDs(collection string) []string {
	col := m.lookup(collection)
	ids := make([]string, 0, len(col))
	for id := range col {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ── serialización ────────────────────────────────────────────────────────────

func toDoc(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codificar documento: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decodificar documento: %w", err)
	}
	return doc, nil
}

func decode(doc any, out any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("codificar resultado: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decodificar resultado: %w", err)
	}
	return nil
}

// normalize lleva un valor de consulta a su forma JSON (float64, string,
// bool...) para compararlo contra los documentos ya serializados.
func normalize(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}

func applyPatch(doc map[string]any, patch store.Query) error {
	for k, v := range patch {
		doc[k] = normalize(v)
	}
	return nil
}

// ── evaluación de filtros ────────────────────────────────────────────────────

func fieldValue(doc map[string]any, path string) (any, bool) {
	cur := any(doc)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func matches(doc map[string]any, q store.Query) bool {
	for path, cond := range q {
		got, present := fieldValue(doc, path)
		if !matchCond(got, present, cond) {
			return false
		}
	}
	return true
}

func matchCond(got any, present bool, cond any) bool {
	c, ok := cond.(store.Cond)
	if !ok {
		return present && equalJSON(got, cond)
	}
	switch c.Op {
	case store.OpEq:
		return present && equalJSON(got, c.Value)
	case store.OpNe:
		return !present || !equalJSON(got, c.Value)
	case store.OpIn:
		if !present {
			return false
		}
		for _, v := range c.Values {
			if equalJSON(got, v) {
				return true
			}
		}
		return false
	case store.OpPrefix:
		return present && strings.HasPrefix(asString(got), asString(normalize(c.Value)))
	case store.OpContains:
		return present && strings.Contains(asString(got), asString(normalize(c.Value)))
	case store.OpGte:
		return present && compare(got, normalize(c.Value)) >= 0
	case store.OpLte:
		return present && compare(got, normalize(c.Value)) <= 0
	case store.OpRange:
		if !present || len(c.Values) != 2 {
			return false
		}
		return compare(got, normalize(c.Values[0])) >= 0 && compare(got, normalize(c.Values[1])) <= 0
	case store.OpAnyEq:
		arr, ok := got.([]any)
		if !present || !ok {
			return false
		}
		for _, item := range arr {
			if equalJSON(item, c.Value) {
				return true
			}
		}
		return false
	case store.OpExists:
		want, _ := c.Value.(bool)
		return present == want
	default:
		return false
	}
}

func equalJSON(got, want any) bool {
	w := normalize(want)
	if gf, ok := got.(float64); ok {
		if wf, ok := w.(float64); ok {
			return gf == wf
		}
	}
	return asString(got) == asString(w) && fmt.Sprintf("%T", got) == fmt.Sprintf("%T", w)
}

func compare(a, b any) int {
	if af, ok := a.(float64); ok {
		if bf, ok := b.(float64); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(asString(a), asString(b))
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// enteros sin ".000000" para claves de agrupación legibles
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		raw, _ := json.Marshal(t)
		return string(raw)
	}
}

func sortDocs(docs []map[string]any, sorts []store.Sort) {
	if len(sorts) == 0 {
		return
	}
	sort.SliceStable(docs, func(i, j int) bool {
		for _, s := range sorts {
			a, _ := fieldValue(docs[i], s.Field)
			b, _ := fieldValue(docs[j], s.Field)
			c := compare(a, b)
			if c == 0 {
				continue
			}
			if s.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}
