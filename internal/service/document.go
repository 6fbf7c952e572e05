// Package service runs the document workflows that span the record store,
// the attachment manager and object storage.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"qlcc/internal/attachment"
	"qlcc/internal/model"
	"qlcc/internal/storage"
	"qlcc/internal/store"
)

// ErrStorageUnavailable is returned when files must be uploaded but no
// object storage is configured.
var ErrStorageUnavailable = errors.New("object storage is not configured")

var tracer = otel.Tracer("qlcc/internal/service")

// DocumentStore is the document collection of a workspace.
type DocumentStore = store.Store[*model.Document, model.DocumentFilter]

// DocumentView is the document list plus the pending attachment changes of
// the open drawer. DrawerAttachments merges those changes into the files of
// the drawer's document and is nil while the drawer is closed.
type DocumentView struct {
	store.View[*model.Document, model.DocumentFilter]
	Staged            []attachment.Staged `json:"stagedFiles"`
	Removed           []int64             `json:"removedFileIds"`
	DrawerAttachments []model.Attachment  `json:"drawerAttachments"`
}

// DocumentService defines the document use cases.
type DocumentService interface {
	// View returns the list with presigned attachment URLs.
	View(ctx context.Context) (*DocumentView, error)

	// Submit completes the open drawer. Staged files are uploaded first and
	// removed again if the record cannot be saved; files marked for removal
	// are deleted from storage once the record is saved.
	Submit(ctx context.Context, actor string, raw []byte) (*model.Document, error)

	// DeleteFileImmediately removes one attachment after RequestFileDelete.
	DeleteFileImmediately(ctx context.Context, actor string, ref attachment.FileRef) (*model.Document, error)

	// Delete removes a confirmed document and its stored files.
	Delete(ctx context.Context, actor string, id int64) error

	// Download opens a stored attachment. The caller closes the reader.
	Download(ctx context.Context, ref attachment.FileRef) (io.ReadCloser, model.Attachment, error)
}

type documentService struct {
	docs       *DocumentStore
	files      *attachment.Manager
	objects    storage.Storage
	presignTTL time.Duration
	logger     *slog.Logger
}

// NewDocumentService wires a workspace's documents to object storage.
// objects may be nil, in which case files can be removed but not added.
// Pending attachment changes belong to one drawer session and are dropped
// when that session ends.
func NewDocumentService(docs *DocumentStore, files *attachment.Manager, objects storage.Storage, presignTTL time.Duration, logger *slog.Logger) DocumentService {
	if presignTTL <= 0 {
		presignTTL = 15 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	docs.OnDrawerReset(files.Reset)
	return &documentService{
		docs:       docs,
		files:      files,
		objects:    objects,
		presignTTL: presignTTL,
		logger:     logger.With(slog.String("component", "documents")),
	}
}

func (s *documentService) View(ctx context.Context) (*DocumentView, error) {
	v, err := s.docs.View(ctx)
	if err != nil {
		return nil, err
	}
	for i, d := range v.Items {
		v.Items[i] = s.present(ctx, d)
	}
	var persisted []model.Attachment
	if v.Drawer.Target != nil {
		v.Drawer.Target = s.present(ctx, v.Drawer.Target)
		persisted = v.Drawer.Target.Attachments
	}
	if v.Drawer.File != nil {
		f := *v.Drawer.File
		f.URL = s.presign(ctx, f)
		v.Drawer.File = &f
	}
	out := &DocumentView{View: v, Staged: s.files.Staged(), Removed: s.files.Removed()}
	if v.Drawer.Open {
		out.DrawerAttachments = s.files.Items(persisted)
	}
	return out, nil
}

func (s *documentService) Submit(ctx context.Context, actor string, raw []byte) (*model.Document, error) {
	ctx, span := tracer.Start(ctx, "documents.submit", trace.WithAttributes(attribute.String("qlcc.actor", actor)))
	defer span.End()

	doc, err := s.submit(ctx, actor, raw)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "document submit failed")
	}
	return doc, err
}

func (s *documentService) submit(ctx context.Context, actor string, raw []byte) (*model.Document, error) {
	sess := s.docs.Drawer()
	if !sess.Open {
		return nil, store.ErrDrawerClosed
	}

	var docID int64
	var persisted []model.Attachment
	switch sess.Mode {
	case store.ModeAdd:
	case store.ModeEdit, store.ModeUpload:
		if sess.Target == nil {
			return nil, fmt.Errorf("%w: %s session has no target entity", store.ErrInvalidDrawerState, sess.Mode)
		}
		docID = sess.Target.ID
		current, err := s.docs.Get(ctx, docID)
		if err != nil {
			return nil, err
		}
		persisted = current.Attachments
	default:
		return nil, fmt.Errorf("%w: cannot submit in %s mode", store.ErrInvalidDrawerState, sess.Mode)
	}

	plan := s.files.Commit(persisted)
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int64("qlcc.document_id", docID),
		attribute.Int("qlcc.uploads", len(plan.Uploads)),
		attribute.Int("qlcc.removals", len(plan.Removed)),
	)
	uploaded, err := s.upload(ctx, docID, plan.Uploads)
	if err != nil {
		return nil, err
	}
	attachments := append(slices.Clone(plan.Retained), uploaded...)
	if attachments == nil {
		attachments = []model.Attachment{}
	}

	doc, err := s.docs.SubmitPrepared(ctx, actor, raw, func(d *model.Document) error {
		d.Attachments = attachments
		return nil
	})
	if err != nil {
		s.rollback(ctx, uploaded)
		return nil, err
	}

	s.deleteObjects(ctx, plan.Removed)
	s.files.Reset()
	return s.present(ctx, doc), nil
}

func (s *documentService) DeleteFileImmediately(ctx context.Context, actor string, ref attachment.FileRef) (*model.Document, error) {
	if err := s.files.ConfirmFileDelete(ref); err != nil {
		return nil, err
	}

	var removed model.Attachment
	doc, err := s.docs.Patch(ctx, actor, ref.DocumentID, func(d *model.Document) error {
		i := slices.IndexFunc(d.Attachments, func(a model.Attachment) bool { return a.ID == ref.FileID })
		if i < 0 {
			return fmt.Errorf("%w: file %d of document %d", store.ErrNotFound, ref.FileID, ref.DocumentID)
		}
		removed = d.Attachments[i]
		d.Attachments = slices.Delete(d.Attachments, i, i+1)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if sess := s.docs.Drawer(); sess.Mode == store.ModePreview && sess.File != nil && sess.File.ID == ref.FileID {
		s.docs.CloseDrawer()
	}
	s.deleteObjects(ctx, []model.Attachment{removed})
	return s.present(ctx, doc), nil
}

func (s *documentService) Delete(ctx context.Context, actor string, id int64) error {
	doc, err := s.docs.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.docs.Delete(ctx, actor, id); err != nil {
		return err
	}
	s.deleteObjects(ctx, doc.Attachments)
	return nil
}

func (s *documentService) Download(ctx context.Context, ref attachment.FileRef) (io.ReadCloser, model.Attachment, error) {
	doc, err := s.docs.Get(ctx, ref.DocumentID)
	if err != nil {
		return nil, model.Attachment{}, err
	}
	i := slices.IndexFunc(doc.Attachments, func(a model.Attachment) bool { return a.ID == ref.FileID })
	if i < 0 || doc.Attachments[i].StorageKey == "" {
		return nil, model.Attachment{}, fmt.Errorf("%w: file %d of document %d", store.ErrNotFound, ref.FileID, ref.DocumentID)
	}
	if s.objects == nil {
		return nil, model.Attachment{}, ErrStorageUnavailable
	}
	a := doc.Attachments[i]
	rc, info, err := s.objects.Get(ctx, a.StorageKey)
	if err != nil {
		return nil, model.Attachment{}, fmt.Errorf("download from storage: %w", err)
	}
	if a.MimeType == "" {
		a.MimeType = info.ContentType
	}
	if info.Size > 0 {
		a.SizeBytes = info.Size
	}
	return rc, a, nil
}

func (s *documentService) upload(ctx context.Context, docID int64, uploads []attachment.Upload) ([]model.Attachment, error) {
	if len(uploads) == 0 {
		return nil, nil
	}
	if s.objects == nil {
		return nil, ErrStorageUnavailable
	}
	out := make([]model.Attachment, 0, len(uploads))
	for _, u := range uploads {
		a := u.Attachment
		key := storage.AttachmentKey(docID, a.Name)
		info, err := s.objects.Put(ctx, key, bytes.NewReader(u.Data), storage.PutObjectOptions{
			Size:        int64(len(u.Data)),
			ContentType: a.MimeType,
			Metadata:    map[string]string{"original-filename": a.Name},
		})
		if err != nil {
			s.rollback(ctx, out)
			return nil, fmt.Errorf("upload to storage: %w", err)
		}
		a.StorageKey = info.Key
		out = append(out, a)
	}
	return out, nil
}

// rollback removes objects uploaded for a submit that did not go through.
func (s *documentService) rollback(ctx context.Context, uploaded []model.Attachment) {
	for _, a := range uploaded {
		if err := s.objects.Delete(ctx, a.StorageKey); err != nil {
			s.logger.Error("rollback delete failed", slog.String("key", a.StorageKey), slog.String("error", err.Error()))
		}
	}
}

// deleteObjects is best effort; the record no longer points at the objects.
func (s *documentService) deleteObjects(ctx context.Context, files []model.Attachment) {
	if s.objects == nil {
		return
	}
	for _, a := range files {
		if a.StorageKey == "" {
			continue
		}
		if err := s.objects.Delete(ctx, a.StorageKey); err != nil {
			s.logger.Warn("orphaned attachment", slog.String("key", a.StorageKey), slog.String("error", err.Error()))
		}
	}
}

func (s *documentService) present(ctx context.Context, d *model.Document) *model.Document {
	c := d.Clone()
	for i := range c.Attachments {
		c.Attachments[i].URL = s.presign(ctx, c.Attachments[i])
	}
	return c
}

func (s *documentService) presign(ctx context.Context, a model.Attachment) string {
	if a.StorageKey == "" || s.objects == nil {
		return a.URL
	}
	u, err := s.objects.PresignGet(ctx, a.StorageKey, s.presignTTL)
	if err != nil {
		s.logger.Warn("presign failed", slog.String("key", a.StorageKey), slog.String("error", err.Error()))
		return a.URL
	}
	return u
}
