package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"

	"qlcc/internal/repository"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var recordColumns = []string{"kind", "id", "payload", "updated_at"}

// RecordPostgres is a PostgreSQL implementation of repository.RecordRepository.
// Entities live as JSONB documents in one records table keyed by (kind, id);
// record_counters keeps the id high-water mark of every kind.
type RecordPostgres struct {
	db *sql.DB
}

// NewRecordPostgres creates a new RecordPostgres repository.
func NewRecordPostgres(db *sql.DB) *RecordPostgres {
	return &RecordPostgres{db: db}
}

var _ repository.RecordRepository = (*RecordPostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (repository.Record, error) {
	var (
		rec     repository.Record
		payload []byte
	)
	if err := row.Scan(&rec.Kind, &rec.ID, &payload, &rec.UpdatedAt); err != nil {
		return repository.Record{}, err
	}
	rec.Payload = payload
	return rec, nil
}

func (r *RecordPostgres) queryRecords(ctx context.Context, q squirrel.SelectBuilder) ([]repository.Record, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]repository.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// All returns every record of a kind ordered by id.
func (r *RecordPostgres) All(ctx context.Context, kind string) ([]repository.Record, error) {
	return r.queryRecords(ctx, psql.Select(recordColumns...).
		From("records").
		Where(squirrel.Eq{"kind": kind}).
		OrderBy("id ASC"))
}

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func recordFilter(q repository.RecordQuery) squirrel.And {
	where := squirrel.And{squirrel.Eq{"kind": q.Kind}}
	for _, field := range sortedKeys(q.Contains) {
		where = append(where, squirrel.Expr("payload->>CAST(? AS text) ILIKE ?", field, "%"+escapeLike(q.Contains[field])+"%"))
	}
	for _, field := range sortedKeys(q.Equals) {
		where = append(where, squirrel.Expr("payload->>CAST(? AS text) = ?", field, q.Equals[field]))
	}
	return where
}

// List returns records using LIMIT/OFFSET pagination and the total number of matches.
func (r *RecordPostgres) List(ctx context.Context, q repository.RecordQuery) (*repository.PageResult[repository.Record], error) {
	where := recordFilter(q)

	countSQL, countArgs, err := psql.Select("COUNT(*)").From("records").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, err
	}

	sel := psql.Select(recordColumns...).From("records").Where(where).OrderBy("id ASC")
	if q.Limit > 0 {
		sel = sel.Limit(uint64(q.Limit))
	}
	if q.Offset > 0 {
		sel = sel.Offset(uint64(q.Offset))
	}
	items, err := r.queryRecords(ctx, sel)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[repository.Record]{Items: items, Total: total}, nil
}

// FindByID fetches a single record; sql.ErrNoRows when missing.
func (r *RecordPostgres) FindByID(ctx context.Context, kind string, id int64) (*repository.Record, error) {
	query, args, err := psql.Select(recordColumns...).
		From("records").
		Where(squirrel.Eq{"kind": kind, "id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// HighWater returns 0 for a kind that never had a record.
func (r *RecordPostgres) HighWater(ctx context.Context, kind string) (int64, error) {
	query, args, err := psql.Select("high_water").From("record_counters").Where(squirrel.Eq{"kind": kind}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build select: %w", err)
	}
	var hw int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&hw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return hw, nil
}

// Reserve advances the counter of kind by n and returns the first reserved id.
func (r *RecordPostgres) Reserve(ctx context.Context, kind string, n int) (int64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("reserve %d ids: count must be positive", n)
	}
	query, args, err := psql.Insert("record_counters").
		Columns("kind", "high_water").
		Values(kind, n).
		Suffix("ON CONFLICT (kind) DO UPDATE SET high_water = record_counters.high_water + EXCLUDED.high_water RETURNING high_water").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build reserve: %w", err)
	}
	var hw int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&hw); err != nil {
		return 0, err
	}
	return hw - int64(n) + 1, nil
}

// Insert writes all records and raises the counters in one transaction.
func (r *RecordPostgres) Insert(ctx context.Context, recs []repository.Record) (err error) {
	if len(recs) == 0 {
		return nil
	}
	ins := psql.Insert("records").Columns(recordColumns...)
	highest := map[string]int64{}
	for _, rec := range recs {
		ins = ins.Values(rec.Kind, rec.ID, string(rec.Payload), squirrel.Expr("now()"))
		highest[rec.Kind] = max(highest[rec.Kind], rec.ID)
	}
	insertSQL, insertArgs, err := ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
		return err
	}
	kinds := make([]string, 0, len(highest))
	for k := range highest {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		var q string
		var args []any
		q, args, err = psql.Insert("record_counters").
			Columns("kind", "high_water").
			Values(kind, highest[kind]).
			Suffix("ON CONFLICT (kind) DO UPDATE SET high_water = GREATEST(record_counters.high_water, EXCLUDED.high_water)").
			ToSql()
		if err != nil {
			return fmt.Errorf("build counter: %w", err)
		}
		if _, err = tx.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func affectedOrNoRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Update replaces the payload of an existing record.
func (r *RecordPostgres) Update(ctx context.Context, rec repository.Record) error {
	query, args, err := psql.Update("records").
		Set("payload", string(rec.Payload)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"kind": rec.Kind, "id": rec.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return affectedOrNoRows(res)
}

// Delete removes a record. Its id stays reserved.
func (r *RecordPostgres) Delete(ctx context.Context, kind string, id int64) error {
	query, args, err := psql.Delete("records").Where(squirrel.Eq{"kind": kind, "id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return affectedOrNoRows(res)
}
