package repository_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"qlcc/internal/model"
	"qlcc/internal/repository"
	"qlcc/internal/repository/mocks"
	"qlcc/internal/store"
)

func hotlineSpec() repository.CollectionSpec {
	return repository.CollectionSpec{
		Kind:      "hotlines",
		FirstPage: 0,
		Contains:  map[string]string{"name": "name", "phone": "phone"},
		Equals:    map[string]string{"building": "building", "status": "status"},
	}
}

func payload(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestCollection_ListTranslatesParams(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockRecordRepository)
	repo.On("List", ctx, repository.RecordQuery{
		Kind:      "hotlines",
		Contains:  map[string]string{"name": "bảo vệ"},
		Equals:    map[string]string{"status": "active"},
		PageQuery: repository.PageQuery{Limit: 20, Offset: 40},
	}).Return(&repository.PageResult[repository.Record]{
		Items: []repository.Record{{Kind: "hotlines", ID: 41, Payload: payload(t, map[string]any{"name": "Bảo vệ", "phone": "1"})}},
		Total: 41,
	}, nil)
	c := repository.NewCollection(repo, hotlineSpec(), model.NewHotline)

	page, err := c.List(ctx, url.Values{"name": {"bảo vệ"}, "status": {"active"}, "page": {"2"}, "size": {"20"}, "unknown": {"x"}})

	require.NoError(t, err)
	assert.Equal(t, 41, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(41), page.Items[0].ID)
	assert.Equal(t, "Bảo vệ", page.Items[0].Name)
	repo.AssertExpectations(t)
}

func TestCollection_GetNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockRecordRepository)
	repo.On("FindByID", ctx, "hotlines", int64(9)).Return(nil, sql.ErrNoRows)
	c := repository.NewCollection(repo, hotlineSpec(), model.NewHotline)

	_, err := c.Get(ctx, 9)

	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCollection_ImportReservesConsecutiveIDs(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockRecordRepository)
	repo.On("Reserve", ctx, "hotlines", 2).Return(int64(7), nil)
	repo.On("Insert", ctx, mock.MatchedBy(func(recs []repository.Record) bool {
		return len(recs) == 2 && recs[0].ID == 7 && recs[1].ID == 8 && recs[0].Kind == "hotlines"
	})).Return(nil)
	c := repository.NewCollection(repo, hotlineSpec(), model.NewHotline)

	a, b := model.NewHotline(), model.NewHotline()
	a.Name, b.Name = "A", "B"
	out, err := c.Import(ctx, []*model.Hotline{a, b})

	require.NoError(t, err)
	assert.Equal(t, int64(7), out[0].ID)
	assert.Equal(t, int64(8), out[1].ID)
	assert.Zero(t, a.ID, "input records are not modified")
	repo.AssertExpectations(t)
}

func TestCollection_InsertFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockRecordRepository)
	repo.On("Reserve", ctx, "hotlines", 1).Return(int64(3), nil)
	repo.On("Insert", ctx, mock.Anything).Return(errors.New("conn reset"))
	c := repository.NewCollection(repo, hotlineSpec(), model.NewHotline)

	_, err := c.Create(ctx, model.NewHotline())

	assert.EqualError(t, err, "conn reset")
}

func TestCollection_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockRecordRepository)
	repo.On("Update", ctx, mock.MatchedBy(func(r repository.Record) bool { return r.ID == 4 })).Return(nil)
	repo.On("Update", ctx, mock.MatchedBy(func(r repository.Record) bool { return r.ID == 5 })).Return(sql.ErrNoRows)
	repo.On("Delete", ctx, "hotlines", int64(4)).Return(nil)
	repo.On("Delete", ctx, "hotlines", int64(5)).Return(sql.ErrNoRows)
	c := repository.NewCollection(repo, hotlineSpec(), model.NewHotline)

	h := model.NewHotline()
	h.Name = "x"
	updated, err := c.Update(ctx, 4, h)
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated.ID)

	_, err = c.Update(ctx, 5, h)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.NoError(t, c.Delete(ctx, 4))
	assert.ErrorIs(t, c.Delete(ctx, 5), store.ErrNotFound)
}

func TestCollection_Load(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockRecordRepository)
	repo.On("All", ctx, "hotlines").Return([]repository.Record{
		{Kind: "hotlines", ID: 2, Payload: payload(t, map[string]any{"id": 99, "name": "A"})},
	}, nil)
	repo.On("HighWater", ctx, "hotlines").Return(int64(10), nil)
	c := repository.NewCollection(repo, hotlineSpec(), model.NewHotline)

	items, err := c.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ID, "row id wins over payload id")

	hw, err := c.HighWater(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), hw)
}
