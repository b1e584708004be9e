package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drtc-puno/sirret-api/internal/domain"
	"github.com/drtc-puno/sirret-api/internal/domain/store"
)

// Postgres implementación del DocumentStore sobre una tabla única con columna
// JSONB. El par (collection, id) es la clave primaria; toda actualización de
// un documento es atómica a nivel de fila.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ store.DocumentStore = (*Postgres)(nil)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS sirret_documents (
	collection text NOT NULL,
	id         text NOT NULL,
	data       jsonb NOT NULL,
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS sirret_documents_data_gin
	ON sirret_documents USING gin (data jsonb_path_ops);`

// NewPostgres crea el almacén y asegura el esquema.
func NewPostgres(ctx context.Context, pool *pgxpool.Pool) (*Postgres, error) {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return nil, storeErr("crear esquema", err)
	}
	return &Postgres{pool: pool}, nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStore, op, err)
}

// FindByID busca por id; domain.ErrNotFound si no existe.
func (p *Postgres) FindByID(ctx context.Context, collection, id string, out any) error {
	var raw []byte
	err := p.pool.QueryRow(ctx,
		`SELECT data FROM sirret_documents WHERE collection = $1 AND id = $2`,
		collection, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return storeErr("find by id "+collection, err)
	}
	return json.Unmarshal(raw, out)
}

// FindOne devuelve el primer documento que cumple el filtro (orden por id).
func (p *Postgres) FindOne(ctx context.Context, collection string, q store.Query, out any) error {
	where, args := compileQuery(q, 2)
	sql := `SELECT data FROM sirret_documents WHERE collection = $1` + where + ` ORDER BY id LIMIT 1`
	var raw []byte
	err := p.pool.QueryRow(ctx, sql, append([]any{collection}, args...)...).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return storeErr("find one "+collection, err)
	}
	return json.Unmarshal(raw, out)
}

// FindMany lista documentos con filtro, orden y paginación.
func (p *Postgres) FindMany(ctx context.Context, collection string, q store.Query, opts store.FindOptions, out any) error {
	where, args := compileQuery(q, 2)
	sql := `SELECT data FROM sirret_documents WHERE collection = $1` + where + orderBy(opts.Sort)
	if opts.Limit > 0 {
		sql += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}
	if opts.Skip > 0 {
		sql += fmt.Sprintf(" OFFSET %d", opts.Skip)
	}
	rows, err := p.pool.Query(ctx, sql, append([]any{collection}, args...)...)
	if err != nil {
		return storeErr("find many "+collection, err)
	}
	defer rows.Close()

	var docs []json.RawMessage
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return storeErr("scan "+collection, err)
		}
		docs = append(docs, json.RawMessage(raw))
	}
	if err := rows.Err(); err != nil {
		return storeErr("iterar "+collection, err)
	}
	combined, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return json.Unmarshal(combined, out)
}

// Count cuenta documentos que cumplen el filtro.
func (p *Postgres) Count(ctx context.Context, collection string, q store.Query) (int64, error) {
	where, args := compileQuery(q, 2)
	var n int64
	err := p.pool.QueryRow(ctx,
		`SELECT count(*) FROM sirret_documents WHERE collection = $1`+where,
		append([]any{collection}, args...)...).Scan(&n)
	if err != nil {
		return 0, storeErr("count "+collection, err)
	}
	return n, nil
}

// Insert inserta; domain.ErrConflict si el id ya existe.
func (p *Postgres) Insert(ctx context.Context, collection, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	tag, err := p.pool.Exec(ctx,
		`INSERT INTO sirret_documents (collection, id, data) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		collection, id, raw)
	if err != nil {
		return storeErr("insert "+collection, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("insert %s/%s: %w", collection, id, domain.ErrConflict)
	}
	return nil
}

// Replace sobrescribe el documento completo; domain.ErrNotFound si no existe.
func (p *Postgres) Replace(ctx context.Context, collection, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	tag, err := p.pool.Exec(ctx,
		`UPDATE sirret_documents SET data = $3 WHERE collection = $1 AND id = $2`,
		collection, id, raw)
	if err != nil {
		return storeErr("replace "+collection, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("replace %s/%s: %w", collection, id, domain.ErrNotFound)
	}
	return nil
}

// UpdateOne fusiona el patch de primer nivel en el primer documento que cumple.
func (p *Postgres) UpdateOne(ctx context.Context, collection string, q store.Query, patch store.Query) (int64, error) {
	raw, err := json.Marshal(normalizePatch(patch))
	if err != nil {
		return 0, err
	}
	where, args := compileQuery(q, 3)
	sql := `UPDATE sirret_documents SET data = data || $2::jsonb
		WHERE collection = $1 AND id = (
			SELECT id FROM sirret_documents WHERE collection = $1` + where + ` ORDER BY id LIMIT 1)`
	tag, err := p.pool.Exec(ctx, sql, append([]any{collection, raw}, args...)...)
	if err != nil {
		return 0, storeErr("update one "+collection, err)
	}
	return tag.RowsAffected(), nil
}

// UpdateMany fusiona el patch en todos los documentos que cumplen.
func (p *Postgres) UpdateMany(ctx context.Context, collection string, q store.Query, patch store.Query) (int64, error) {
	raw, err := json.Marshal(normalizePatch(patch))
	if err != nil {
		return 0, err
	}
	where, args := compileQuery(q, 3)
	sql := `UPDATE sirret_documents SET data = data || $2::jsonb WHERE collection = $1` + where
	tag, err := p.pool.Exec(ctx, sql, append([]any{collection, raw}, args...)...)
	if err != nil {
		return 0, storeErr("update many "+collection, err)
	}
	return tag.RowsAffected(), nil
}

// Aggregate cuenta agrupando por el campo indicado.
func (p *Postgres) Aggregate(ctx context.Context, collection string, pl store.Pipeline) ([]store.GroupCount, error) {
	where, args := compileQuery(pl.Match, 2)
	sql := fmt.Sprintf(
		`SELECT COALESCE(data #>> '%s', ''), count(*) FROM sirret_documents WHERE collection = $1%s GROUP BY 1 ORDER BY 1`,
		jsonPath(pl.GroupBy), where)
	rows, err := p.pool.Query(ctx, sql, append([]any{collection}, args...)...)
	if err != nil {
		return nil, storeErr("aggregate "+collection, err)
	}
	defer rows.Close()

	var out []store.GroupCount
	for rows.Next() {
		var gc store.GroupCount
		if err := rows.Scan(&gc.Key, &gc.Count); err != nil {
			return nil, storeErr("scan aggregate "+collection, err)
		}
		out = append(out, gc)
	}
	return out, rows.Err()
}

// Delete elimina físicamente un documento (ruta administrativa guardada).
func (p *Postgres) Delete(ctx context.Context, collection, id string) error {
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM sirret_documents WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		return storeErr("delete "+collection, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete %s/%s: %w", collection, id, domain.ErrNotFound)
	}
	return nil
}

// ── compilación de filtros ───────────────────────────────────────────────────

var fieldPathRx = regexp.MustCompile(`^[a-zA-Z0-9_.]+$`)

// jsonPath convierte "a.b" en la ruta jsonb '{a,b}'. Las rutas vienen del
// código, no del usuario; aún así se restringe el alfabeto.
func jsonPath(field string) string {
	if !fieldPathRx.MatchString(field) {
		panic(fmt.Sprintf("docstore: ruta de campo inválida %q", field))
	}
	return "{" + strings.ReplaceAll(field, ".", ",") + "}"
}

func jsonLiteral(v any) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		raw = []byte("null")
	}
	return raw
}

// textLiteral forma textual de un escalar, como la devuelve el operador #>>.
func textLiteral(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	raw := jsonLiteral(v)
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return string(raw)
	}
	return s
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func normalizePatch(patch store.Query) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(patch))
	for k, v := range patch {
		out[k] = json.RawMessage(jsonLiteral(v))
	}
	return out
}

// compileQuery produce la cláusula WHERE adicional y sus argumentos,
// comenzando la numeración de placeholders en firstArg.
func compileQuery(q store.Query, firstArg int) (string, []any) {
	if len(q) == 0 {
		return "", nil
	}
	// orden determinista de condiciones
	fields := make([]string, 0, len(q))
	for f := range q {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var sb strings.Builder
	var args []any
	n := firstArg
	for _, field := range fields {
		cond := q[field]
		path := jsonPath(field)
		c, isCond := cond.(store.Cond)
		if !isCond {
			c = store.Cond{Op: store.OpEq, Value: cond}
		}
		switch c.Op {
		case store.OpEq:
			fmt.Fprintf(&sb, " AND data #> '%s' = $%d::jsonb", path, n)
			args = append(args, jsonLiteral(c.Value))
			n++
		case store.OpNe:
			fmt.Fprintf(&sb, " AND data #> '%s' IS DISTINCT FROM $%d::jsonb", path, n)
			args = append(args, jsonLiteral(c.Value))
			n++
		case store.OpIn:
			vals := make([]string, 0, len(c.Values))
			for _, v := range c.Values {
				vals = append(vals, string(jsonLiteral(v)))
			}
			fmt.Fprintf(&sb, " AND data #> '%s' = ANY($%d::jsonb[])", path, n)
			args = append(args, vals)
			n++
		case store.OpPrefix:
			fmt.Fprintf(&sb, " AND data #>> '%s' LIKE $%d", path, n)
			args = append(args, escapeLike(textLiteral(c.Value))+"%")
			n++
		case store.OpContains:
			fmt.Fprintf(&sb, " AND data #>> '%s' LIKE $%d", path, n)
			args = append(args, "%"+escapeLike(textLiteral(c.Value))+"%")
			n++
		case store.OpGte:
			fmt.Fprintf(&sb, " AND data #>> '%s' >= $%d", path, n)
			args = append(args, textLiteral(normalize(c.Value)))
			n++
		case store.OpLte:
			fmt.Fprintf(&sb, " AND data #>> '%s' <= $%d", path, n)
			args = append(args, textLiteral(normalize(c.Value)))
			n++
		case store.OpRange:
			fmt.Fprintf(&sb, " AND data #>> '%s' >= $%d AND data #>> '%s' <= $%d", path, n, path, n+1)
			args = append(args, textLiteral(normalize(c.Values[0])), textLiteral(normalize(c.Values[1])))
			n += 2
		case store.OpAnyEq:
			fmt.Fprintf(&sb, " AND data #> '%s' @> $%d::jsonb", path, n)
			args = append(args, jsonLiteral([]any{c.Value}))
			n++
		case store.OpExists:
			if want, _ := c.Value.(bool); want {
				fmt.Fprintf(&sb, " AND data #> '%s' IS NOT NULL", path)
			} else {
				fmt.Fprintf(&sb, " AND data #> '%s' IS NULL", path)
			}
		default:
			panic(fmt.Sprintf("docstore: operador desconocido %q", c.Op))
		}
	}
	return sb.String(), args
}

func orderBy(sorts []store.Sort) string {
	if len(sorts) == 0 {
		return " ORDER BY id"
	}
	parts := make([]string, 0, len(sorts))
	for _, s := range sorts {
		dir := "ASC"
		if s.Desc {
			dir = "DESC"
		}
		parts = append(parts, fmt.Sprintf("data #>> '%s' %s", jsonPath(s.Field), dir))
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}
