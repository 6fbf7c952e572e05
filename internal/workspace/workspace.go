// Package workspace bundles the collection stores of one client session.
// Workspaces are created and disposed explicitly through a Registry.
package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"qlcc/internal/attachment"
	"qlcc/internal/config"
	"qlcc/internal/model"
	"qlcc/internal/remote"
	"qlcc/internal/repository"
	"qlcc/internal/service"
	"qlcc/internal/storage"
	"qlcc/internal/store"
)

// Deps are shared by every workspace.
type Deps struct {
	// Records persists local collections and serves remote ones when
	// Upstream is nil. Required.
	Records repository.RecordRepository
	// Upstream serves remote collections when set.
	Upstream *remote.Client
	// Objects holds document files; nil disables uploads.
	Objects    storage.Storage
	Previews   *attachment.PreviewRegistry
	Settings   config.WorkspaceConfig
	PresignTTL time.Duration
	Logger     *slog.Logger
}

// Workspace holds one store per entity kind plus the attachment state of the
// document drawer.
type Workspace struct {
	ID        string
	CreatedAt time.Time

	Residents      *store.Store[*model.Resident, model.ResidentFilter]
	Apartments     *store.Store[*model.Apartment, model.ApartmentFilter]
	Documents      *service.DocumentStore
	Hotlines       *store.Store[*model.Hotline, model.HotlineFilter]
	MovingTickets  *store.Store[*model.MovingTicket, model.MovingTicketFilter]
	Reports        *store.Store[*model.Report, model.ReportFilter]
	Notifications  *store.Store[*model.Notification, model.NotificationFilter]
	News           *store.Store[*model.News, model.NewsFilter]
	UserApartments *store.Store[*model.UserApartment, model.UserApartmentFilter]

	Files *attachment.Manager
	Docs  service.DocumentService

	resources map[model.Kind]store.Resource
	disposed  atomic.Bool
}

// New loads the local collections and builds every store.
func New(ctx context.Context, id string, d Deps) (*Workspace, error) {
	if d.Records == nil {
		return nil, fmt.Errorf("workspace %s: a record repository is required", id)
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Previews == nil {
		d.Previews = attachment.NewPreviewRegistry("", d.Settings.PreviewMax, d.Settings.PreviewTTL, d.Logger)
	}
	d.Logger = d.Logger.With(slog.String("workspace", id))

	w := &Workspace{ID: id, CreatedAt: time.Now().UTC()}
	var err error
	if w.Residents, err = residents.local(ctx, d); err != nil {
		return nil, err
	}
	if w.Apartments, err = apartments.local(ctx, d); err != nil {
		return nil, err
	}
	if w.Documents, err = documents.local(ctx, d); err != nil {
		return nil, err
	}
	w.Hotlines = hotlines.remote(d)
	w.MovingTickets = movingTickets.remote(d)
	w.Reports = reports.remote(d)
	w.Notifications = notifications.remote(d)
	w.News = news.remote(d)
	w.UserApartments = userApartments.remote(d)

	w.Files = attachment.NewManager(d.Previews)
	w.Docs = service.NewDocumentService(w.Documents, w.Files, d.Objects, d.PresignTTL, d.Logger)
	w.Documents.OnDispose(w.Files.Dispose)

	w.resources = map[model.Kind]store.Resource{
		model.KindResident:      w.Residents,
		model.KindApartment:     w.Apartments,
		model.KindDocument:      w.Documents,
		model.KindHotline:       w.Hotlines,
		model.KindMovingTicket:  w.MovingTickets,
		model.KindReport:        w.Reports,
		model.KindNotification:  w.Notifications,
		model.KindNews:          w.News,
		model.KindUserApartment: w.UserApartments,
	}
	return w, nil
}

// Resource returns the store of kind.
func (w *Workspace) Resource(kind model.Kind) (store.Resource, bool) {
	r, ok := w.resources[kind]
	return r, ok
}

// Dispose releases every store. Outstanding preview URLs are revoked.
// Only the first call does anything and reports true.
func (w *Workspace) Dispose() bool {
	if !w.disposed.CompareAndSwap(false, true) {
		return false
	}
	for _, kind := range model.Kinds {
		if r, ok := w.resources[kind]; ok {
			r.Dispose()
		}
	}
	return true
}

func (w *Workspace) Disposed() bool { return w.disposed.Load() }
