package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jwalitptl/carelink-api/internal/model"
	"github.com/jwalitptl/carelink-api/internal/repository"
)

const uniqueViolation = "23505"

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db *sqlx.DB
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db *sqlx.DB) BaseRepository {
	return BaseRepository{db: db}
}

// exists reports whether table holds a row with the given id.
func (r *BaseRepository) exists(ctx context.Context, table string, id uuid.UUID) (bool, error) {
	var found bool
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)", table)
	if err := r.db.GetContext(ctx, &found, query, id); err != nil {
		return false, fmt.Errorf("failed to check %s: %w", table, err)
	}
	return found, nil
}

func (r *BaseRepository) exec(ctx context.Context, action, query string, args ...interface{}) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, translate(err, action)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to %s: %w", action, err)
	}
	return n, nil
}

// project selects the whitelisted columns behind fields for every id in one
// round trip. Ids with no row are left out of the result.
func (r *BaseRepository) project(ctx context.Context, table string, columns map[string]string, ids []uuid.UUID, fields []string) (map[uuid.UUID]map[string]interface{}, error) {
	out := make(map[uuid.UUID]map[string]interface{}, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	selects := make([]string, 0, len(fields)+1)
	selects = append(selects, "id")
	for _, field := range fields {
		col, ok := columns[field]
		if !ok {
			return nil, fmt.Errorf("field %q cannot be projected from %s", field, table)
		}
		selects = append(selects, fmt.Sprintf(`%s AS "%s"`, col, field))
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ANY($1)", strings.Join(selects, ", "), table)
	rows, err := r.db.QueryxContext(ctx, query, model.UUIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to project %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		row := make(map[string]interface{}, len(fields)+1)
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("failed to scan %s projection: %w", table, err)
		}
		id, err := scanID(row["id"])
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s projection: %w", table, err)
		}
		delete(row, "id")
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		out[id] = row
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to project %s: %w", table, err)
	}
	return out, nil
}

func scanID(v interface{}) (uuid.UUID, error) {
	switch id := v.(type) {
	case []byte:
		return uuid.ParseBytes(id)
	case string:
		return uuid.Parse(id)
	case uuid.UUID:
		return id, nil
	}
	return uuid.Nil, fmt.Errorf("unexpected id type %T", v)
}

// translate maps driver errors onto the repository sentinels.
func translate(err error, action string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return repository.ErrConflict
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// orderBy renders an ORDER BY clause for a whitelisted sort field, falling back to def.
func orderBy(sort model.Sort, columns map[string]string, def string) string {
	col, ok := columns[sort.Field]
	if !ok {
		return " ORDER BY " + def
	}
	if sort.Desc {
		return " ORDER BY " + col + " DESC"
	}
	return " ORDER BY " + col + " ASC"
}

// args numbers positional parameters as they are added.
type args struct {
	values []interface{}
}

func (a *args) add(v interface{}) string {
	a.values = append(a.values, v)
	return fmt.Sprintf("$%d", len(a.values))
}

// conditions collects AND-ed WHERE clauses. Each clause holds one %s for its parameter.
type conditions struct {
	args
	clauses []string
}

func (c *conditions) and(clause string, v interface{}) {
	c.clauses = append(c.clauses, fmt.Sprintf(clause, c.add(v)))
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// update builds a single-row UPDATE that always bumps updated_at.
type update struct {
	conditions
	table string
	sets  []string
}

func newUpdate(table string) *update {
	return &update{table: table}
}

func (u *update) set(col string, v interface{}) {
	u.sets = append(u.sets, fmt.Sprintf("%s = %s", col, u.add(v)))
}

func (u *update) build(id uuid.UUID) (string, []interface{}) {
	sets := append(append([]string{}, u.sets...), "updated_at = NOW()")
	clauses := append([]string{"id = " + u.add(id)}, u.clauses...)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s", u.table, strings.Join(sets, ", "), strings.Join(clauses, " AND "))
	return query, u.values
}

func statusArray[S ~string](statuses []S) pq.StringArray {
	out := make(pq.StringArray, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
