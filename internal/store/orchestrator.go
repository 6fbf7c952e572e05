package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"qlcc/internal/model"
)

// OpenDrawer opens the drawer in mode m. id selects the target entity and
// fileID one of its attachments.
func (s *Store[T, F]) OpenDrawer(ctx context.Context, m Mode, id, fileID *int64) error {
	s.mu.Lock()
	supported := s.drawer.Supports(m)
	s.mu.Unlock()
	if m != ModeNone && !supported {
		return fmt.Errorf("%w: %s", ErrModeUnsupported, m)
	}

	var target T
	if id != nil {
		e, err := s.source.Get(ctx, *id)
		if err != nil {
			return err
		}
		target = e
	}
	var file *model.Attachment
	if fileID != nil {
		if isZero(target) {
			return fmt.Errorf("%w: a file needs a target entity", ErrInvalidDrawerState)
		}
		f, ok := model.FindFile(target, *fileID)
		if !ok {
			return fmt.Errorf("%w: file %d", ErrNotFound, *fileID)
		}
		file = f
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return ErrDisposed
	}
	return s.drawer.Open(m, target, file)
}

// SwitchToEdit turns a View session into an Edit session on the same entity.
func (s *Store[T, F]) SwitchToEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawer.SwitchToEdit()
}

func (s *Store[T, F]) CloseDrawer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawer.Close()
}

// OnDrawerReset registers fn to run whenever a drawer session ends. fn runs
// with the store locked and must not call back into the store.
func (s *Store[T, F]) OnDrawerReset(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawer.OnReset(fn)
}

func (s *Store[T, F]) Drawer() DrawerSession[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawer.Session()
}

// RequestDelete opens the delete dialog for id.
func (s *Store[T, F]) RequestDelete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes.Request(id)
}

func (s *Store[T, F]) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes.Cancel()
}

// Submit completes the open Add or Edit session with the submitted fields.
func (s *Store[T, F]) Submit(ctx context.Context, actor string, raw []byte) (T, error) {
	return s.SubmitPrepared(ctx, actor, raw, nil)
}

// SubmitPrepared is Submit with a final patch applied to the record after the
// submitted fields and before validation. An Upload session submits like Edit
// and may carry no fields.
func (s *Store[T, F]) SubmitPrepared(ctx context.Context, actor string, raw []byte, prepare Patch[T]) (T, error) {
	var zero T
	sess := s.Drawer()
	if !sess.Open {
		return zero, ErrDrawerClosed
	}
	switch sess.Mode {
	case ModeAdd:
		e := s.cfg.New()
		if err := json.Unmarshal(raw, e); err != nil {
			return zero, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		if prepare != nil {
			if err := prepare(e); err != nil {
				return zero, err
			}
		}
		return s.Add(ctx, actor, e)
	case ModeEdit, ModeUpload:
		if isZero(sess.Target) {
			return zero, fmt.Errorf("%w: %s session has no target entity", ErrInvalidDrawerState, sess.Mode)
		}
		return s.Update(ctx, actor, sess.Target.EntityID(), func(e T) error {
			if len(raw) > 0 {
				if err := JSONPatch[T](raw)(e); err != nil {
					return err
				}
			}
			if prepare != nil {
				return prepare(e)
			}
			return nil
		})
	default:
		return zero, fmt.Errorf("%w: cannot submit in %s mode", ErrInvalidDrawerState, sess.Mode)
	}
}

// Add validates e, assigns its id, stamps the creator and stores it.
// A successful add closes the drawer.
func (s *Store[T, F]) Add(ctx context.Context, actor string, e T) (T, error) {
	var zero T
	if err := e.Validate(); err != nil {
		return zero, err
	}
	if err := s.beginCreate(); err != nil {
		return zero, err
	}
	defer s.endCreate()

	c := e.Clone()
	c.SetEntityID(0)
	c.AuditInfo().StampCreated(actor, s.cfg.Now())

	created, err := s.source.Create(ctx, c)
	s.record("add", actor, created, err)
	if err != nil {
		return zero, err
	}

	s.mu.Lock()
	s.dataChangedLocked()
	s.drawer.Close()
	s.mu.Unlock()
	return created, nil
}

// Import adds every record or none. Ids are consecutive after the current maximum.
func (s *Store[T, F]) Import(ctx context.Context, actor string, es []T) ([]T, error) {
	for i, e := range es {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	if err := s.beginCreate(); err != nil {
		return nil, err
	}
	defer s.endCreate()

	now := s.cfg.Now()
	batch := make([]T, len(es))
	for i, e := range es {
		c := e.Clone()
		c.SetEntityID(0)
		c.AuditInfo().StampCreated(actor, now)
		batch[i] = c
	}

	created, err := s.source.CreateMany(ctx, batch)
	mutationsTotal.WithLabelValues(s.cfg.Kind, "import", resultLabel(err)).Inc()
	if err != nil {
		s.logger.Warn("import failed", slog.String("actor", actor), slog.Int("count", len(es)), slog.String("error", err.Error()))
		return nil, err
	}
	s.logger.Info("import", slog.String("actor", actor), slog.Int("count", len(created)))

	s.mu.Lock()
	s.dataChangedLocked()
	s.mu.Unlock()
	return created, nil
}

// Update merges patch into the stored record and stamps the editor.
// A successful update closes an Edit or Upload drawer on the record.
func (s *Store[T, F]) Update(ctx context.Context, actor string, id int64, patch Patch[T]) (T, error) {
	return s.update(ctx, "update", actor, id, patch, true)
}

// Patch is Update without closing the drawer; an open session on the record
// follows the new version.
func (s *Store[T, F]) Patch(ctx context.Context, actor string, id int64, patch Patch[T]) (T, error) {
	return s.update(ctx, "patch", actor, id, patch, false)
}

// Get returns a copy of one record.
func (s *Store[T, F]) Get(ctx context.Context, id int64) (T, error) {
	s.mu.Lock()
	disposed := s.disposed
	s.mu.Unlock()
	if disposed {
		var zero T
		return zero, ErrDisposed
	}
	e, err := s.source.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return e.Clone(), nil
}

// ChangeStatus moves the record to the status encoded in to, following the
// collection's transition table.
func (s *Store[T, F]) ChangeStatus(ctx context.Context, actor string, id int64, to json.RawMessage) (T, error) {
	if s.cfg.Status == nil {
		var zero T
		return zero, fmt.Errorf("%w: %s has no status workflow", ErrIllegalTransition, s.cfg.Kind)
	}
	return s.update(ctx, "status", actor, id, func(e T) error {
		return s.cfg.Status.Transition(e, to)
	}, false)
}

func (s *Store[T, F]) update(ctx context.Context, op, actor string, id int64, patch Patch[T], closeDrawer bool) (T, error) {
	var zero T
	if err := s.begin(id); err != nil {
		return zero, err
	}
	defer s.end(id)

	current, err := s.source.Get(ctx, id)
	if err != nil {
		s.record(op, actor, zero, err)
		return zero, err
	}
	next := current.Clone()
	if err := patch(next); err != nil {
		return zero, err
	}
	next.SetEntityID(id)
	audit, orig := next.AuditInfo(), current.AuditInfo()
	audit.CreatedBy, audit.CreatedAt = orig.CreatedBy, orig.CreatedAt
	audit.StampUpdated(actor, s.cfg.Now())
	if err := next.Validate(); err != nil {
		return zero, err
	}

	updated, err := s.source.Replace(ctx, next)
	s.record(op, actor, updated, err)
	if err != nil {
		return zero, err
	}

	s.mu.Lock()
	s.dataChangedLocked()
	sess := s.drawer.Session()
	if sess.Open && !isZero(sess.Target) && sess.Target.EntityID() == id {
		if closeDrawer && (sess.Mode == ModeEdit || sess.Mode == ModeUpload) {
			s.drawer.Close()
		} else {
			s.drawer.retarget(updated.Clone())
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// Delete removes id. It only runs after RequestDelete(id); otherwise it
// returns ErrPreconditionNotMet and nothing changes.
func (s *Store[T, F]) Delete(ctx context.Context, actor string, id int64) error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return ErrDisposed
	}
	// A busy record keeps its dialog open so the delete can be confirmed later.
	if _, busy := s.inflight[id]; busy {
		s.mu.Unlock()
		return ErrMutationInProgress
	}
	if err := s.deletes.Confirm(id); err != nil {
		s.mu.Unlock()
		s.logger.Info("delete not confirmed", slog.String("actor", actor), slog.Int64("id", id))
		return err
	}
	s.inflight[id] = struct{}{}
	s.mu.Unlock()
	defer s.end(id)

	err := s.source.Delete(ctx, id)
	mutationsTotal.WithLabelValues(s.cfg.Kind, "delete", resultLabel(err)).Inc()
	if err != nil {
		s.logger.Warn("delete failed", slog.String("actor", actor), slog.Int64("id", id), slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("delete", slog.String("actor", actor), slog.Int64("id", id))

	s.mu.Lock()
	s.dataChangedLocked()
	if sess := s.drawer.Session(); !isZero(sess.Target) && sess.Target.EntityID() == id {
		s.drawer.Close()
	}
	s.mu.Unlock()
	return nil
}

func (s *Store[T, F]) begin(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return ErrDisposed
	}
	if _, busy := s.inflight[id]; busy {
		return fmt.Errorf("%w: %s %d", ErrMutationInProgress, s.cfg.Kind, id)
	}
	s.inflight[id] = struct{}{}
	return nil
}

func (s *Store[T, F]) end(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, id)
}

func (s *Store[T, F]) beginCreate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return ErrDisposed
	}
	if s.creating {
		return fmt.Errorf("%w: %s create", ErrMutationInProgress, s.cfg.Kind)
	}
	s.creating = true
	return nil
}

func (s *Store[T, F]) endCreate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creating = false
}

// dataChangedLocked marks the projection stale. The local variant starts
// over from the first page, as after any re-filter.
func (s *Store[T, F]) dataChangedLocked() {
	s.dataVersion++
	if s.variant == VariantLocal {
		s.filter.setPage(1)
	}
}

func (s *Store[T, F]) record(op, actor string, e T, err error) {
	mutationsTotal.WithLabelValues(s.cfg.Kind, op, resultLabel(err)).Inc()
	if err != nil {
		s.logger.Warn(op+" failed", slog.String("actor", actor), slog.String("error", err.Error()))
		return
	}
	s.logger.Info(op, slog.String("actor", actor), slog.Int64("id", e.EntityID()))
}
