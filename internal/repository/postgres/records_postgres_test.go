package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qlcc/internal/repository"
)

func newMock(t *testing.T) (*RecordPostgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRecordPostgres(db), mock
}

func recordRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"kind", "id", "payload", "updated_at"})
}

func TestRecordPostgres_All(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(`SELECT kind, id, payload, updated_at FROM records WHERE kind = \$1 ORDER BY id ASC`).
		WithArgs("residents").
		WillReturnRows(recordRows().
			AddRow("residents", int64(1), []byte(`{"fullName":"A"}`), now).
			AddRow("residents", int64(3), []byte(`{"fullName":"C"}`), now))

	recs, err := repo.All(context.Background(), "residents")

	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, int64(3), recs[1].ID)
	assert.JSONEq(t, `{"fullName":"C"}`, string(recs[1].Payload))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPostgres_List(t *testing.T) {
	repo, mock := newMock(t)
	q := repository.RecordQuery{
		Kind:      "hotlines",
		Contains:  map[string]string{"name": "50%"},
		Equals:    map[string]string{"status": "active"},
		PageQuery: repository.PageQuery{Limit: 20, Offset: 40},
	}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM records WHERE \(kind = \$1 AND payload->>CAST\(\$2 AS text\) ILIKE \$3 AND payload->>CAST\(\$4 AS text\) = \$5\)`).
		WithArgs("hotlines", "name", `%50\%%`, "status", "active").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))
	mock.ExpectQuery(`SELECT kind, id, payload, updated_at FROM records WHERE (.+) ORDER BY id ASC LIMIT 20 OFFSET 40`).
		WithArgs("hotlines", "name", `%50\%%`, "status", "active").
		WillReturnRows(recordRows().AddRow("hotlines", int64(41), []byte(`{}`), time.Now()))

	res, err := repo.List(context.Background(), q)

	require.NoError(t, err)
	assert.Equal(t, 41, res.Total)
	assert.Len(t, res.Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPostgres_FindByID(t *testing.T) {
	repo, mock := newMock(t)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM records WHERE id = \$1 AND kind = \$2`).
			WithArgs(int64(5), "documents").
			WillReturnRows(recordRows().AddRow("documents", int64(5), []byte(`{"title":"Nội quy"}`), time.Now()))

		rec, err := repo.FindByID(ctx, "documents", 5)

		require.NoError(t, err)
		assert.Equal(t, int64(5), rec.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM records WHERE id = \$1 AND kind = \$2`).
			WithArgs(int64(9), "documents").
			WillReturnError(sql.ErrNoRows)

		rec, err := repo.FindByID(ctx, "documents", 9)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, rec)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPostgres_HighWater(t *testing.T) {
	repo, mock := newMock(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT high_water FROM record_counters WHERE kind = \$1`).
		WithArgs("news").
		WillReturnRows(sqlmock.NewRows([]string{"high_water"}).AddRow(int64(12)))
	mock.ExpectQuery(`SELECT high_water FROM record_counters WHERE kind = \$1`).
		WithArgs("reports").
		WillReturnError(sql.ErrNoRows)

	hw, err := repo.HighWater(ctx, "news")
	require.NoError(t, err)
	assert.Equal(t, int64(12), hw)

	hw, err = repo.HighWater(ctx, "reports")
	require.NoError(t, err)
	assert.Zero(t, hw)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordPostgres_Reserve(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO record_counters \(kind,high_water\) VALUES \(\$1,\$2\) ON CONFLICT \(kind\) DO UPDATE SET high_water = record_counters.high_water \+ EXCLUDED.high_water RETURNING high_water`).
		WithArgs("news", 3).
		WillReturnRows(sqlmock.NewRows([]string{"high_water"}).AddRow(int64(15)))

	first, err := repo.Reserve(context.Background(), "news", 3)

	require.NoError(t, err)
	assert.Equal(t, int64(13), first)
	assert.NoError(t, mock.ExpectationsWereMet())

	_, err = repo.Reserve(context.Background(), "news", 0)
	assert.Error(t, err)
}

func TestRecordPostgres_Insert(t *testing.T) {
	recs := []repository.Record{
		{Kind: "residents", ID: 5, Payload: []byte(`{"fullName":"E"}`)},
		{Kind: "residents", ID: 6, Payload: []byte(`{"fullName":"F"}`)},
	}

	t.Run("commits", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO records \(kind,id,payload,updated_at\) VALUES \(\$1,\$2,\$3,now\(\)\),\(\$4,\$5,\$6,now\(\)\)`).
			WithArgs("residents", int64(5), `{"fullName":"E"}`, "residents", int64(6), `{"fullName":"F"}`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`INSERT INTO record_counters (.+) GREATEST`).
			WithArgs("residents", int64(6)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Insert(context.Background(), recs))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back", func(t *testing.T) {
		repo, mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO records`).WillReturnError(errors.New("duplicate key"))
		mock.ExpectRollback()

		err := repo.Insert(context.Background(), recs)

		assert.EqualError(t, err, "duplicate key")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRecordPostgres_UpdateAndDelete(t *testing.T) {
	repo, mock := newMock(t)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE records SET payload = \$1, updated_at = now\(\) WHERE id = \$2 AND kind = \$3`).
		WithArgs(`{"title":"x"}`, int64(2), "news").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE records`).
		WithArgs(`{}`, int64(3), "news").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM records WHERE id = \$1 AND kind = \$2`).
		WithArgs(int64(2), "news").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM records`).
		WithArgs(int64(2), "news").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Update(ctx, repository.Record{Kind: "news", ID: 2, Payload: []byte(`{"title":"x"}`)}))
	assert.ErrorIs(t, repo.Update(ctx, repository.Record{Kind: "news", ID: 3, Payload: []byte(`{}`)}), sql.ErrNoRows)
	require.NoError(t, repo.Delete(ctx, "news", 2))
	assert.ErrorIs(t, repo.Delete(ctx, "news", 2), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\%b\_c\\d`, escapeLike(`a%b_c\d`))
}
