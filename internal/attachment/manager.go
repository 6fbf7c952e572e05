// Package attachment tracks the files of a document while it is being edited:
// new local files waiting for upload, persisted files marked for removal and
// the temporary preview URLs of staged files.
package attachment

import (
	"fmt"
	"slices"
	"sync"

	"qlcc/internal/model"
	"qlcc/internal/store"
)

// File is a client upload that has not been persisted yet.
type File struct {
	Name     string
	MimeType string
	Data     []byte
}

// Staged is a File plus its preview.
type Staged struct {
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	SizeBytes    int64  `json:"sizeBytes"`
	PreviewURL   string `json:"url"`
	previewToken string
	data         []byte
}

func (s Staged) Data() []byte { return s.data }

// FileRef names one attachment of one document.
type FileRef struct {
	DocumentID int64
	FileID     int64
}

// Upload is a staged file with the attachment id it will be stored under.
type Upload struct {
	Attachment model.Attachment
	Data       []byte
}

// Plan is the outcome of merging the staged changes into a persisted
// attachment list.
type Plan struct {
	Retained []model.Attachment
	Uploads  []Upload
	Removed  []model.Attachment
}

// Attachments is the merged list: retained files first, then new ones.
func (p Plan) Attachments() []model.Attachment {
	out := make([]model.Attachment, 0, len(p.Retained)+len(p.Uploads))
	out = append(out, p.Retained...)
	for _, u := range p.Uploads {
		out = append(out, u.Attachment)
	}
	return out
}

// Manager holds the pending attachment changes of one edit session.
type Manager struct {
	previews *PreviewRegistry

	mu       sync.Mutex
	staged   []Staged
	removed  []int64
	deletes  store.Confirmation[FileRef]
	disposed bool
}

func NewManager(previews *PreviewRegistry) *Manager {
	return &Manager{previews: previews}
}

// StageFile appends f and materializes its preview URL.
func (m *Manager) StageFile(f File) (Staged, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return Staged{}, store.ErrDisposed
	}
	if f.Name == "" {
		return Staged{}, fmt.Errorf("%w: file name is required", store.ErrValidation)
	}
	token, url := m.previews.Materialize(Preview{Name: f.Name, MimeType: f.MimeType, Data: f.Data})
	s := Staged{
		Name:         f.Name,
		MimeType:     f.MimeType,
		SizeBytes:    int64(len(f.Data)),
		PreviewURL:   url,
		previewToken: token,
		data:         f.Data,
	}
	m.staged = append(m.staged, s)
	return s, nil
}

// UnstageFile removes the staged file at index and revokes its preview.
func (m *Manager) UnstageFile(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index < 0 || index >= len(m.staged) {
		return fmt.Errorf("%w: staged file %d", store.ErrNotFound, index)
	}
	m.previews.Revoke(m.staged[index].previewToken)
	m.staged = slices.Delete(m.staged, index, index+1)
	return nil
}

// MarkPersistedForRemoval defers removal of a persisted file to the next
// successful update of the document.
func (m *Manager) MarkPersistedForRemoval(fileID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !slices.Contains(m.removed, fileID) {
		m.removed = append(m.removed, fileID)
	}
}

func (m *Manager) Staged() []Staged {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.staged)
}

func (m *Manager) Removed() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.removed)
}

// Pending reports whether there is anything to commit.
func (m *Manager) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.staged) > 0 || len(m.removed) > 0
}

// Commit merges the staged changes into persisted without changing the
// manager. Staged files get ids above every persisted id, removed ones included.
func (m *Manager) Commit(persisted []model.Attachment) Plan {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.planLocked(persisted)
}

func (m *Manager) planLocked(persisted []model.Attachment) Plan {
	var plan Plan
	var maxID int64
	for _, a := range persisted {
		maxID = max(maxID, a.ID)
		if slices.Contains(m.removed, a.ID) {
			plan.Removed = append(plan.Removed, a)
			continue
		}
		plan.Retained = append(plan.Retained, a)
	}
	for _, s := range m.staged {
		maxID++
		plan.Uploads = append(plan.Uploads, Upload{
			Attachment: model.Attachment{ID: maxID, Name: s.Name, SizeBytes: s.SizeBytes, MimeType: s.MimeType},
			Data:       s.data,
		})
	}
	return plan
}

// Items is the display list: persisted files not marked for removal, then
// staged files under their provisional ids and preview URLs.
func (m *Manager) Items(persisted []model.Attachment) []model.Attachment {
	m.mu.Lock()
	defer m.mu.Unlock()
	plan := m.planLocked(persisted)
	out := plan.Attachments()
	for i := range plan.Uploads {
		out[len(plan.Retained)+i].URL = m.staged[i].PreviewURL
	}
	return out
}

// RequestFileDelete opens the confirm dialog for an immediate file removal.
func (m *Manager) RequestFileDelete(ref FileRef) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes.Request(ref)
}

func (m *Manager) CancelFileDelete() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes.Cancel()
}

// ConfirmFileDelete consumes the dialog; see store.Confirmation.
func (m *Manager) ConfirmFileDelete(ref FileRef) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deletes.Confirm(ref)
}

// Reset revokes every preview and forgets all pending changes.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
}

func (m *Manager) resetLocked() {
	for _, s := range m.staged {
		m.previews.Revoke(s.previewToken)
	}
	m.staged = nil
	m.removed = nil
	m.deletes.Cancel()
}

// Dispose resets the manager and rejects further staging.
func (m *Manager) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
	m.disposed = true
}
