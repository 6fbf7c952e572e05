package workspace

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qlcc/internal/attachment"
	"qlcc/internal/config"
	"qlcc/internal/model"
	"qlcc/internal/repository/memory"
	"qlcc/internal/store"
)

func testDeps() Deps {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return Deps{
		Records:  memory.NewRecordMemory(),
		Previews: attachment.NewPreviewRegistry("http://qlcc.test", 32, time.Minute, logger),
		Settings: config.WorkspaceConfig{PageSize: 10, QueryCacheSize: 16, QueryCacheTTL: time.Minute},
		Logger:   logger,
	}
}

func newResident(name, building, apartment string) *model.Resident {
	r := model.NewResident()
	r.FullName, r.Phone, r.Building, r.Apartment = name, "0900", building, apartment
	return r
}

func TestNew_BuildsEveryKind(t *testing.T) {
	w, err := New(context.Background(), "ws-1", testDeps())
	require.NoError(t, err)

	for _, kind := range model.Kinds {
		r, ok := w.Resource(kind)
		require.True(t, ok, kind)
		assert.Equal(t, string(kind), r.Kind())
	}
	_, ok := w.Resource("invoices")
	assert.False(t, ok)

	assert.Equal(t, store.VariantLocal, w.Residents.Variant())
	assert.Equal(t, store.VariantLocal, w.Documents.Variant())
	assert.Equal(t, store.VariantRemote, w.Hotlines.Variant())
	assert.Equal(t, store.VariantRemote, w.UserApartments.Variant())
}

func TestNew_RequiresRecords(t *testing.T) {
	d := testDeps()
	d.Records = nil
	_, err := New(context.Background(), "ws", d)
	assert.Error(t, err)
}

func TestLocalCollectionsWriteThrough(t *testing.T) {
	ctx := context.Background()
	d := testDeps()
	first, err := New(ctx, "a", d)
	require.NoError(t, err)
	second, err := New(ctx, "b", d)
	require.NoError(t, err)

	a, err := first.Residents.Add(ctx, "admin", newResident("Nguyễn Văn A", "A1", "101"))
	require.NoError(t, err)
	b, err := second.Residents.Add(ctx, "admin", newResident("Trần Thị B", "A1", "102"))
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID, "workspaces share the id sequence")

	third, err := New(ctx, "c", d)
	require.NoError(t, err)
	v, err := third.Residents.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, v.TotalItems)
}

func TestRemoteCollectionFromRecords(t *testing.T) {
	ctx := context.Background()
	w, err := New(ctx, "ws", testDeps())
	require.NoError(t, err)

	for _, name := range []string{"Bảo vệ", "Kỹ thuật", "Lễ tân"} {
		h := model.NewHotline()
		h.Name, h.Phone = name, "1900"
		_, err := w.Hotlines.Add(ctx, "admin", h)
		require.NoError(t, err)
	}

	require.NoError(t, w.Hotlines.SetFilterJSON([]byte(`{"name":"kỹ"}`)))
	v, err := w.Hotlines.View(ctx)
	require.NoError(t, err)
	require.Equal(t, store.ListReady, v.State)
	require.Len(t, v.Items, 1)
	assert.Equal(t, "Kỹ thuật", v.Items[0].Name)
	assert.Equal(t, 1, v.CurrentPage)
}

func TestLinkStatusFilterChangeResetsPage(t *testing.T) {
	ctx := context.Background()
	w, err := New(ctx, "ws", testDeps())
	require.NoError(t, err)

	for i := 0; i < 25; i++ {
		u := model.NewUserApartment()
		u.UserName, u.Phone, u.Building, u.Apartment = "Cư dân", "0900", "A1", "101"
		_, err := w.UserApartments.Add(ctx, "admin", u)
		require.NoError(t, err)
	}

	require.NoError(t, w.UserApartments.SetFilterJSON([]byte(`{"status":2}`)))
	require.NoError(t, w.UserApartments.SetCurrentPage(ctx, 3))
	v, err := w.UserApartments.View(ctx)
	require.NoError(t, err)
	require.Equal(t, 25, v.TotalItems)
	require.Equal(t, 3, v.CurrentPage)

	require.NoError(t, w.UserApartments.SetFilter(func(f *model.UserApartmentFilter) error {
		*f.Status = model.LinkLinked
		return nil
	}))
	v, err = w.UserApartments.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.LinkLinked, *v.Filter.Status)
	assert.Equal(t, 1, v.CurrentPage)
	assert.Zero(t, v.TotalItems)
	assert.Empty(t, v.Items)
}

func TestApartmentFilterFollowsBuilding(t *testing.T) {
	w, err := New(context.Background(), "ws", testDeps())
	require.NoError(t, err)

	require.NoError(t, w.Residents.SetFilterJSON([]byte(`{"building":"A1","apartment":"101"}`)))
	require.NoError(t, w.Residents.SetFilterJSON([]byte(`{"building":"B2"}`)))

	v, err := w.Residents.View(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "B2", v.Filter.Building)
	assert.Empty(t, v.Filter.Apartment)
}

func TestDisposeRevokesPreviews(t *testing.T) {
	d := testDeps()
	w, err := New(context.Background(), "ws", d)
	require.NoError(t, err)

	_, err = w.Files.StageFile(attachment.File{Name: "a.png", Data: []byte{1}})
	require.NoError(t, err)
	assert.Equal(t, 1, d.Previews.Len())

	w.Dispose()
	assert.Zero(t, d.Previews.Len())
	_, err = w.Files.StageFile(attachment.File{Name: "b.png"})
	assert.ErrorIs(t, err, store.ErrDisposed)
	_, err = w.Hotlines.View(context.Background())
	assert.ErrorIs(t, err, store.ErrDisposed)
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	d := testDeps()

	t.Run("create get dispose", func(t *testing.T) {
		reg := NewRegistry(FactoryFor(d), 4, time.Minute, d.Logger)
		w, err := reg.Create(ctx)
		require.NoError(t, err)

		got, err := reg.Get(w.ID)
		require.NoError(t, err)
		assert.Same(t, w, got)

		require.NoError(t, reg.Dispose(w.ID))
		_, err = reg.Get(w.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, reg.Dispose(w.ID), ErrNotFound)
		_, err = w.Residents.View(ctx)
		assert.ErrorIs(t, err, store.ErrDisposed)
	})

	t.Run("capacity evicts the oldest", func(t *testing.T) {
		reg := NewRegistry(FactoryFor(d), 1, time.Minute, d.Logger)
		old, err := reg.Create(ctx)
		require.NoError(t, err)
		_, err = reg.Create(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, reg.Len())
		_, err = reg.Get(old.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = old.Residents.View(ctx)
		assert.ErrorIs(t, err, store.ErrDisposed)
	})

	t.Run("idle workspaces expire", func(t *testing.T) {
		reg := NewRegistry(FactoryFor(d), 4, 50*time.Millisecond, d.Logger)
		w, err := reg.Create(ctx)
		require.NoError(t, err)

		assert.Eventually(t, func() bool { return reg.Len() == 0 }, 2*time.Second, 20*time.Millisecond)
		_, err = reg.Get(w.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = w.Residents.View(ctx)
		assert.True(t, errors.Is(err, store.ErrDisposed))
	})

	t.Run("disposed workspace is not brought back by a lookup", func(t *testing.T) {
		reg := NewRegistry(FactoryFor(d), 4, time.Minute, d.Logger)
		w, err := reg.Create(ctx)
		require.NoError(t, err)
		require.NoError(t, reg.Dispose(w.ID))
		after := testutil.ToFloat64(activeWorkspaces)

		// a lookup that found w just before it was evicted puts it back
		reg.items.Add(w.ID, w)
		_, err = reg.Get(w.ID)

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Zero(t, reg.Len())
		assert.Equal(t, after, testutil.ToFloat64(activeWorkspaces), "the gauge drops once per workspace")
		assert.False(t, w.Dispose())
	})

	t.Run("factory error", func(t *testing.T) {
		reg := NewRegistry(func(context.Context, string) (*Workspace, error) {
			return nil, assert.AnError
		}, 4, time.Minute, d.Logger)
		_, err := reg.Create(ctx)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Zero(t, reg.Len())
	})

	t.Run("close disposes all", func(t *testing.T) {
		reg := NewRegistry(FactoryFor(d), 4, time.Minute, d.Logger)
		w, err := reg.Create(ctx)
		require.NoError(t, err)
		reg.Close()
		assert.Zero(t, reg.Len())
		_, err = w.News.View(ctx)
		assert.ErrorIs(t, err, store.ErrDisposed)
	})
}
