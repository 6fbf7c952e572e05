package workspace

import (
	"context"
	"fmt"
	"log/slog"

	"qlcc/internal/model"
	"qlcc/internal/remote"
	"qlcc/internal/repository"
	"qlcc/internal/store"
)

var (
	basicModes = []store.Mode{store.ModeAdd, store.ModeEdit}
	viewModes  = []store.Mode{store.ModeAdd, store.ModeEdit, store.ModeView}
	fileModes  = []store.Mode{store.ModeAdd, store.ModeEdit, store.ModeView, store.ModeUpload, store.ModePreview}
)

// collection describes one entity kind: how its store is configured, how a
// local cache filters it and how list parameters map onto stored fields.
type collection[T store.Entity[T], F any] struct {
	kind       model.Kind
	newT       func() T
	firstPage  int
	modes      []store.Mode
	deps       []store.Dependency[F]
	status     store.StatusPolicy[T]
	predicates []store.Predicate[T, F]
	contains   map[string]string
	equals     map[string]string
}

func (c collection[T, F]) config(d Deps) store.Config[T, F] {
	return store.Config[T, F]{
		Kind:         string(c.kind),
		New:          c.newT,
		PageSize:     d.Settings.PageSize,
		FirstPage:    c.firstPage,
		Dependencies: c.deps,
		Modes:        c.modes,
		Status:       c.status,
		Logger:       d.Logger,
	}
}

func (c collection[T, F]) records(repo repository.RecordRepository) *repository.Collection[T] {
	return repository.NewCollection(repo, repository.CollectionSpec{
		Kind:      string(c.kind),
		FirstPage: c.firstPage,
		Contains:  c.contains,
		Equals:    c.equals,
	}, c.newT)
}

// local loads the whole collection into a per-workspace cache whose writes go
// through to the record repository.
func (c collection[T, F]) local(ctx context.Context, d Deps) (*store.Store[T, F], error) {
	journal := c.records(d.Records)
	seed, err := journal.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.kind, err)
	}
	hw, err := journal.HighWater(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.kind, err)
	}
	src := store.NewLocalSource(seed, c.predicates...).WithJournal(journal)
	src.RaiseHighWater(hw)
	d.Logger.Debug("collection loaded", slog.String("entity", string(c.kind)), slog.Int("records", len(seed)))
	return store.NewLocal(c.config(d), src), nil
}

// remote serves the collection from the upstream API when one is configured,
// else from the record repository.
func (c collection[T, F]) remote(d Deps) *store.Store[T, F] {
	var backend store.Backend[T]
	if d.Upstream != nil {
		backend = remote.NewResource[T](d.Upstream, string(c.kind))
	} else {
		backend = c.records(d.Records)
	}
	src := store.NewRemoteSource[T, F](string(c.kind), backend, store.CacheOptions{
		Size: d.Settings.QueryCacheSize,
		TTL:  d.Settings.QueryCacheTTL,
	})
	return store.NewRemote(c.config(d), src)
}

func statuses[T any, S comparable](get func(T) S, set func(T, S), allowed map[S][]S) store.Statuses[T, S] {
	return store.Statuses[T, S]{Get: get, Set: set, Allowed: allowed}
}

// apartmentFollowsBuilding clears the apartment criterion when another
// building is picked.
func apartmentFollowsBuilding[F any](building func(F) string, apartment func(F) string, clear func(*F)) store.Dependency[F] {
	return store.Dependency[F]{
		Parent: func(f F) any { return building(f) },
		Child:  func(f F) any { return apartment(f) },
		Clear:  clear,
	}
}

var residents = collection[*model.Resident, model.ResidentFilter]{
	kind:  model.KindResident,
	newT:  model.NewResident,
	modes: basicModes,
	deps: []store.Dependency[model.ResidentFilter]{apartmentFollowsBuilding(
		func(f model.ResidentFilter) string { return f.Building },
		func(f model.ResidentFilter) string { return f.Apartment },
		func(f *model.ResidentFilter) { f.Apartment = "" },
	)},
	status: statuses(
		func(r *model.Resident) model.ResidentStatus { return r.Status },
		func(r *model.Resident, s model.ResidentStatus) { r.Status = s },
		model.ResidentTransitions,
	),
	predicates: []store.Predicate[*model.Resident, model.ResidentFilter]{
		store.Contains(func(f model.ResidentFilter) string { return f.Name }, func(r *model.Resident) string { return r.FullName }),
		store.Contains(func(f model.ResidentFilter) string { return f.Phone }, func(r *model.Resident) string { return r.Phone }),
		store.Equals(func(f model.ResidentFilter) string { return f.Building }, func(r *model.Resident) string { return r.Building }),
		store.Equals(func(f model.ResidentFilter) string { return f.Apartment }, func(r *model.Resident) string { return r.Apartment }),
		store.Equals(func(f model.ResidentFilter) model.ResidentStatus { return f.Status }, func(r *model.Resident) model.ResidentStatus { return r.Status }),
	},
}

var apartments = collection[*model.Apartment, model.ApartmentFilter]{
	kind:  model.KindApartment,
	newT:  model.NewApartment,
	modes: basicModes,
	status: statuses(
		func(a *model.Apartment) model.ApartmentStatus { return a.Status },
		func(a *model.Apartment, s model.ApartmentStatus) { a.Status = s },
		model.ApartmentTransitions,
	),
	predicates: []store.Predicate[*model.Apartment, model.ApartmentFilter]{
		store.Equals(func(f model.ApartmentFilter) string { return f.Building }, func(a *model.Apartment) string { return a.Building }),
		store.Contains(func(f model.ApartmentFilter) string { return f.Code }, func(a *model.Apartment) string { return a.Code }),
		store.Contains(func(f model.ApartmentFilter) string { return f.Owner }, func(a *model.Apartment) string { return a.OwnerName }),
		store.Equals(func(f model.ApartmentFilter) model.ApartmentStatus { return f.Status }, func(a *model.Apartment) model.ApartmentStatus { return a.Status }),
	},
}

var documents = collection[*model.Document, model.DocumentFilter]{
	kind:  model.KindDocument,
	newT:  model.NewDocument,
	modes: fileModes,
	status: statuses(
		func(d *model.Document) model.DocumentStatus { return d.Status },
		func(d *model.Document, s model.DocumentStatus) { d.Status = s },
		model.DocumentTransitions,
	),
	predicates: []store.Predicate[*model.Document, model.DocumentFilter]{
		store.Contains(func(f model.DocumentFilter) string { return f.Title }, func(d *model.Document) string { return d.Title }),
		store.Equals(func(f model.DocumentFilter) string { return f.Category }, func(d *model.Document) string { return d.Category }),
		store.Equals(func(f model.DocumentFilter) string { return f.Building }, func(d *model.Document) string { return d.Building }),
		store.Equals(func(f model.DocumentFilter) model.DocumentStatus { return f.Status }, func(d *model.Document) model.DocumentStatus { return d.Status }),
	},
}

var hotlines = collection[*model.Hotline, model.HotlineFilter]{
	kind:      model.KindHotline,
	newT:      model.NewHotline,
	firstPage: 1,
	modes:     viewModes,
	status: statuses(
		func(h *model.Hotline) model.HotlineStatus { return h.Status },
		func(h *model.Hotline, s model.HotlineStatus) { h.Status = s },
		model.HotlineTransitions,
	),
	contains: map[string]string{"name": "name", "phone": "phone"},
	equals:   map[string]string{"building": "building", "status": "status"},
}

var movingTickets = collection[*model.MovingTicket, model.MovingTicketFilter]{
	kind:  model.KindMovingTicket,
	newT:  model.NewMovingTicket,
	modes: viewModes,
	deps: []store.Dependency[model.MovingTicketFilter]{apartmentFollowsBuilding(
		func(f model.MovingTicketFilter) string { return f.Building },
		func(f model.MovingTicketFilter) string { return f.Apartment },
		func(f *model.MovingTicketFilter) { f.Apartment = "" },
	)},
	status: statuses(
		func(m *model.MovingTicket) model.TicketStatus { return m.Status },
		func(m *model.MovingTicket, s model.TicketStatus) { m.Status = s },
		model.TicketTransitions,
	),
	contains: map[string]string{"residentName": "residentName"},
	equals:   map[string]string{"building": "building", "apartment": "apartment", "direction": "direction", "status": "status"},
}

var reports = collection[*model.Report, model.ReportFilter]{
	kind:  model.KindReport,
	newT:  model.NewReport,
	modes: viewModes,
	status: statuses(
		func(r *model.Report) model.ReportStatus { return r.Status },
		func(r *model.Report, s model.ReportStatus) { r.Status = s },
		model.ReportTransitions,
	),
	contains: map[string]string{"title": "title", "reporter": "reporter"},
	equals:   map[string]string{"category": "category", "building": "building", "status": "status"},
}

var notifications = collection[*model.Notification, model.NotificationFilter]{
	kind:      model.KindNotification,
	newT:      model.NewNotification,
	firstPage: 1,
	modes:     viewModes,
	status: statuses(
		func(n *model.Notification) model.NotificationStatus { return n.Status },
		func(n *model.Notification, s model.NotificationStatus) { n.Status = s },
		model.NotificationTransitions,
	),
	contains: map[string]string{"title": "title"},
	equals:   map[string]string{"building": "building", "audience": "audience", "status": "status"},
}

var news = collection[*model.News, model.NewsFilter]{
	kind:      model.KindNews,
	newT:      model.NewNews,
	firstPage: 1,
	modes:     viewModes,
	status: statuses(
		func(n *model.News) model.NewsStatus { return n.Status },
		func(n *model.News, s model.NewsStatus) { n.Status = s },
		model.NewsTransitions,
	),
	contains: map[string]string{"title": "title"},
	equals:   map[string]string{"building": "building", "status": "status"},
}

var userApartments = collection[*model.UserApartment, model.UserApartmentFilter]{
	kind:  model.KindUserApartment,
	newT:  model.NewUserApartment,
	modes: fileModes,
	deps: []store.Dependency[model.UserApartmentFilter]{apartmentFollowsBuilding(
		func(f model.UserApartmentFilter) string { return f.Building },
		func(f model.UserApartmentFilter) string { return f.Apartment },
		func(f *model.UserApartmentFilter) { f.Apartment = "" },
	)},
	status: statuses(
		func(u *model.UserApartment) model.LinkStatus { return u.Status },
		func(u *model.UserApartment, s model.LinkStatus) { u.Status = s },
		model.LinkTransitions,
	),
	contains: map[string]string{"userName": "userName", "phone": "phone"},
	equals:   map[string]string{"building": "building", "apartment": "apartment", "status": "status"},
}
