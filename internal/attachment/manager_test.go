package attachment

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qlcc/internal/model"
	"qlcc/internal/store"
)

func newManager(t *testing.T) (*Manager, *PreviewRegistry) {
	t.Helper()
	previews := NewPreviewRegistry("http://qlcc.local", 100, time.Minute, discardLogger())
	return NewManager(previews), previews
}

func persistedFiles(ids ...int64) []model.Attachment {
	out := make([]model.Attachment, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Attachment{ID: id, Name: "f.pdf", StorageKey: "attachments/1/f.pdf"})
	}
	return out
}

func attachmentIDs(as []model.Attachment) []int64 {
	out := make([]int64, len(as))
	for i, a := range as {
		out[i] = a.ID
	}
	return out
}

func TestManager_StageAndUnstage(t *testing.T) {
	m, previews := newManager(t)

	a, err := m.StageFile(File{Name: "a.png", MimeType: "image/png", Data: []byte("aa")})
	require.NoError(t, err)
	b, err := m.StageFile(File{Name: "b.png", MimeType: "image/png", Data: []byte("bbb")})
	require.NoError(t, err)
	assert.Equal(t, int64(3), b.SizeBytes)
	assert.Equal(t, 2, previews.Len())

	require.NoError(t, m.UnstageFile(0))

	staged := m.Staged()
	require.Len(t, staged, 1)
	assert.Equal(t, "b.png", staged[0].Name)
	_, ok := previews.Open(a.previewToken)
	assert.False(t, ok, "unstaged preview must be revoked")
	assert.Equal(t, 1, previews.Len())

	assert.ErrorIs(t, m.UnstageFile(5), store.ErrNotFound)
}

func TestManager_StageRequiresName(t *testing.T) {
	m, _ := newManager(t)

	_, err := m.StageFile(File{Data: []byte("x")})

	assert.ErrorIs(t, err, store.ErrValidation)
}

func TestManager_CommitFiltersRemovedAndContinuesIDs(t *testing.T) {
	m, _ := newManager(t)
	m.MarkPersistedForRemoval(3)
	m.MarkPersistedForRemoval(3)
	_, _ = m.StageFile(File{Name: "new1.pdf", Data: []byte("1")})
	_, _ = m.StageFile(File{Name: "new2.pdf", Data: []byte("22")})

	plan := m.Commit(persistedFiles(1, 2, 3))

	assert.Equal(t, []int64{1, 2}, attachmentIDs(plan.Retained))
	assert.Equal(t, []int64{3}, attachmentIDs(plan.Removed))
	require.Len(t, plan.Uploads, 2)
	assert.Equal(t, int64(4), plan.Uploads[0].Attachment.ID)
	assert.Equal(t, int64(5), plan.Uploads[1].Attachment.ID)
	assert.Equal(t, []byte("22"), plan.Uploads[1].Data)
	assert.Equal(t, []int64{1, 2, 4, 5}, attachmentIDs(plan.Attachments()))
	assert.True(t, m.Pending(), "commit does not reset the manager")
}

func TestManager_ItemsOrderPersistedThenStaged(t *testing.T) {
	m, _ := newManager(t)
	s, _ := m.StageFile(File{Name: "photo.jpg", Data: []byte("x")})
	m.MarkPersistedForRemoval(1)

	items := m.Items(persistedFiles(1, 7))

	require.Len(t, items, 2)
	assert.Equal(t, int64(7), items[0].ID)
	assert.Equal(t, int64(8), items[1].ID)
	assert.Equal(t, s.PreviewURL, items[1].URL)
}

func TestManager_StagedIDsNeverCollideWithPersisted(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		m, _ := newManager(t)
		persisted := persistedFiles(int64(rng.Intn(5) + 1))
		for step := 0; step < 12; step++ {
			switch rng.Intn(4) {
			case 0:
				_, _ = m.StageFile(File{Name: "s", Data: []byte{1}})
			case 1:
				_ = m.UnstageFile(rng.Intn(3))
			case 2:
				if len(persisted) > 0 {
					m.MarkPersistedForRemoval(persisted[rng.Intn(len(persisted))].ID)
				}
			case 3:
				plan := m.Commit(persisted)
				persisted = plan.Attachments()
				m.Reset()
			}

			plan := m.Commit(persisted)
			retained := map[int64]bool{}
			for _, a := range plan.Retained {
				retained[a.ID] = true
			}
			seen := map[int64]bool{}
			for _, u := range plan.Uploads {
				assert.False(t, retained[u.Attachment.ID], "round %d: staged id %d collides", round, u.Attachment.ID)
				assert.False(t, seen[u.Attachment.ID])
				seen[u.Attachment.ID] = true
			}
		}
	}
}

func TestManager_ImmediateDeleteNeedsConfirmation(t *testing.T) {
	m, _ := newManager(t)
	ref := FileRef{DocumentID: 4, FileID: 2}

	assert.ErrorIs(t, m.ConfirmFileDelete(ref), store.ErrPreconditionNotMet)

	m.RequestFileDelete(ref)
	assert.ErrorIs(t, m.ConfirmFileDelete(FileRef{DocumentID: 4, FileID: 3}), store.ErrPreconditionNotMet)
	require.NoError(t, m.ConfirmFileDelete(ref))
	assert.ErrorIs(t, m.ConfirmFileDelete(ref), store.ErrPreconditionNotMet)
}

func TestManager_DisposeRevokesPreviews(t *testing.T) {
	m, previews := newManager(t)
	_, _ = m.StageFile(File{Name: "a", Data: []byte("a")})
	_, _ = m.StageFile(File{Name: "b", Data: []byte("b")})
	m.MarkPersistedForRemoval(9)

	m.Dispose()

	assert.Equal(t, 0, previews.Len())
	assert.False(t, m.Pending())
	_, err := m.StageFile(File{Name: "c"})
	assert.ErrorIs(t, err, store.ErrDisposed)
}
