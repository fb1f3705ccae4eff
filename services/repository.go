package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/yashrajz/EventHorizon-sub001/models"
	"github.com/yashrajz/EventHorizon-sub001/monitoring"
	"github.com/yashrajz/EventHorizon-sub001/store"
	"github.com/yashrajz/EventHorizon-sub001/utils"
)

// Repository owns the in-store representation of the four collections.
// Callers always receive decoded copies, never a live reference; the only way
// to change persisted state is an explicit Save/Delete/patch operation.
//
// Mutations are read-entire-collection, modify, write-entire-collection, so
// each collection is guarded by its own mutex to serialize concurrent writers.
// Change notifications are dispatched synchronously after the write completes,
// outside the collection lock so subscribers can re-read immediately.
type Repository struct {
	store   store.Store
	monitor *monitoring.Monitor

	muEvents        sync.Mutex
	muUsers         sync.Mutex
	muRegistrations sync.Mutex
	muSettings      sync.Mutex

	subMu   sync.Mutex
	subs    map[int]func(key string)
	nextSub int
}

// NewRepository creates a repository over the given store. monitor may be nil.
func NewRepository(st store.Store, monitor *monitoring.Monitor) *Repository {
	return &Repository{
		store:   st,
		monitor: monitor,
		subs:    make(map[int]func(key string)),
	}
}

// loadList decodes a collection. present reports whether the key has ever
// been written; malformed content counts as present-but-empty so corrupt data
// is recovered silently and never re-seeded over.
func loadList[T any](ctx context.Context, st store.Store, key string) (items []T, present bool, err error) {
	raw, ok, err := st.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.Warn("discarding malformed collection", "key", key, "error", err)
		return []T{}, true, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, true, nil
}

func (r *Repository) persist(ctx context.Context, key string, items any) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, string(data)); err != nil {
		r.trackWriteFailure(key)
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Events

// ListEvents returns the events collection, newest first. An empty store is
// lazily seeded with the sample dataset.
func (r *Repository) ListEvents(ctx context.Context) ([]models.Event, error) {
	r.muEvents.Lock()
	events, seeded, err := r.loadEventsLocked(ctx)
	r.muEvents.Unlock()
	if err != nil {
		return nil, err
	}
	if seeded {
		r.notify(store.KeyEvents)
	}
	return events, nil
}

func (r *Repository) loadEventsLocked(ctx context.Context) ([]models.Event, bool, error) {
	events, present, err := loadList[models.Event](ctx, r.store, store.KeyEvents)
	if err != nil {
		return nil, false, err
	}
	if present {
		return events, false, nil
	}
	seed, err := seedEvents(time.Now())
	if err != nil {
		return nil, false, err
	}
	if err := r.persist(ctx, store.KeyEvents, seed); err != nil {
		return nil, false, err
	}
	r.trackSeed(store.KeyEvents)
	// Read back the persisted form so first and later reads are identical.
	events, _, err = loadList[models.Event](ctx, r.store, store.KeyEvents)
	return events, true, err
}

// SaveEvent inserts the event when it carries no identity, otherwise replaces
// the stored record with the same identity wholesale. Identity and creation
// timestamp survive replacement; everything else is caller-supplied.
func (r *Repository) SaveEvent(ctx context.Context, ev models.Event) (models.Event, error) {
	r.muEvents.Lock()
	saved, err := r.saveEventLocked(ctx, ev)
	r.muEvents.Unlock()
	if err != nil {
		return models.Event{}, err
	}
	r.trackWrite(store.KeyEvents, "save")
	r.notify(store.KeyEvents)
	return saved, nil
}

func (r *Repository) saveEventLocked(ctx context.Context, ev models.Event) (models.Event, error) {
	events, _, err := r.loadEventsLocked(ctx)
	if err != nil {
		return models.Event{}, err
	}

	if ev.TicketTypes == nil {
		ev.TicketTypes = []models.TicketType{}
	}

	if ev.ID == "" {
		id, err := utils.NewID()
		if err != nil {
			return models.Event{}, err
		}
		ev.ID = id
		ev.CreatedAt = time.Now()
		events = append([]models.Event{ev}, events...)
	} else {
		replaced := false
		for i := range events {
			if events[i].ID == ev.ID {
				ev.CreatedAt = events[i].CreatedAt
				events[i] = ev
				replaced = true
				break
			}
		}
		if !replaced {
			// Caller-supplied identity with no stored match: insert, keeping the id.
			if ev.CreatedAt.IsZero() {
				ev.CreatedAt = time.Now()
			}
			events = append([]models.Event{ev}, events...)
		}
	}

	if err := r.persist(ctx, store.KeyEvents, events); err != nil {
		return models.Event{}, err
	}
	return ev, nil
}

// DeleteEvent removes the event with the given identity. Unknown identities
// are a no-op, not an error.
func (r *Repository) DeleteEvent(ctx context.Context, id string) error {
	r.muEvents.Lock()
	err := r.deleteEventLocked(ctx, id)
	r.muEvents.Unlock()
	if err != nil {
		return err
	}
	r.trackWrite(store.KeyEvents, "delete")
	r.notify(store.KeyEvents)
	return nil
}

func (r *Repository) deleteEventLocked(ctx context.Context, id string) error {
	events, _, err := r.loadEventsLocked(ctx)
	if err != nil {
		return err
	}
	kept := events[:0]
	for _, ev := range events {
		if ev.ID != id {
			kept = append(kept, ev)
		}
	}
	return r.persist(ctx, store.KeyEvents, kept)
}

// IncrementEventViews bumps the view counter by one. No-op on unknown id.
func (r *Repository) IncrementEventViews(ctx context.Context, id string) error {
	r.muEvents.Lock()
	found, err := r.patchEventViewsLocked(ctx, id)
	r.muEvents.Unlock()
	if err != nil {
		return err
	}
	if found {
		r.trackWrite(store.KeyEvents, "patch")
		r.notify(store.KeyEvents)
	}
	return nil
}

func (r *Repository) patchEventViewsLocked(ctx context.Context, id string) (bool, error) {
	events, _, err := r.loadEventsLocked(ctx)
	if err != nil {
		return false, err
	}
	for i := range events {
		if events[i].ID == id {
			events[i].Views++
			return true, r.persist(ctx, store.KeyEvents, events)
		}
	}
	return false, nil
}

// Users

func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	r.muUsers.Lock()
	users, seeded, err := r.loadUsersLocked(ctx)
	r.muUsers.Unlock()
	if err != nil {
		return nil, err
	}
	if seeded {
		r.notify(store.KeyUsers)
	}
	return users, nil
}

func (r *Repository) loadUsersLocked(ctx context.Context) ([]models.User, bool, error) {
	users, present, err := loadList[models.User](ctx, r.store, store.KeyUsers)
	if err != nil {
		return nil, false, err
	}
	if present {
		return users, false, nil
	}
	seed, err := seedUsers()
	if err != nil {
		return nil, false, err
	}
	if err := r.persist(ctx, store.KeyUsers, seed); err != nil {
		return nil, false, err
	}
	r.trackSeed(store.KeyUsers)
	users, _, err = loadList[models.User](ctx, r.store, store.KeyUsers)
	return users, true, err
}

func (r *Repository) SaveUser(ctx context.Context, u models.User) (models.User, error) {
	r.muUsers.Lock()
	saved, err := r.saveUserLocked(ctx, u)
	r.muUsers.Unlock()
	if err != nil {
		return models.User{}, err
	}
	r.trackWrite(store.KeyUsers, "save")
	r.notify(store.KeyUsers)
	return saved, nil
}

func (r *Repository) saveUserLocked(ctx context.Context, u models.User) (models.User, error) {
	users, _, err := r.loadUsersLocked(ctx)
	if err != nil {
		return models.User{}, err
	}

	if u.ID == "" {
		id, err := utils.NewID()
		if err != nil {
			return models.User{}, err
		}
		u.ID = id
		users = append([]models.User{u}, users...)
	} else {
		replaced := false
		for i := range users {
			if users[i].ID == u.ID {
				users[i] = u
				replaced = true
				break
			}
		}
		if !replaced {
			users = append([]models.User{u}, users...)
		}
	}

	if err := r.persist(ctx, store.KeyUsers, users); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *Repository) DeleteUser(ctx context.Context, id string) error {
	r.muUsers.Lock()
	err := r.deleteUserLocked(ctx, id)
	r.muUsers.Unlock()
	if err != nil {
		return err
	}
	r.trackWrite(store.KeyUsers, "delete")
	r.notify(store.KeyUsers)
	return nil
}

func (r *Repository) deleteUserLocked(ctx context.Context, id string) error {
	users, _, err := r.loadUsersLocked(ctx)
	if err != nil {
		return err
	}
	kept := users[:0]
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	return r.persist(ctx, store.KeyUsers, kept)
}

// SetUserBanned patches exactly the banned flag. No-op on unknown id.
func (r *Repository) SetUserBanned(ctx context.Context, id string, banned bool) error {
	r.muUsers.Lock()
	found, err := r.patchUserBannedLocked(ctx, id, banned)
	r.muUsers.Unlock()
	if err != nil {
		return err
	}
	if found {
		r.trackWrite(store.KeyUsers, "patch")
		r.notify(store.KeyUsers)
	}
	return nil
}

func (r *Repository) patchUserBannedLocked(ctx context.Context, id string, banned bool) (bool, error) {
	users, _, err := r.loadUsersLocked(ctx)
	if err != nil {
		return false, err
	}
	for i := range users {
		if users[i].ID == id {
			users[i].Banned = banned
			return true, r.persist(ctx, store.KeyUsers, users)
		}
	}
	return false, nil
}

// Registrations

func (r *Repository) ListRegistrations(ctx context.Context) ([]models.Registration, error) {
	r.muRegistrations.Lock()
	regs, seeded, err := r.loadRegistrationsLocked(ctx)
	r.muRegistrations.Unlock()
	if err != nil {
		return nil, err
	}
	if seeded {
		r.notify(store.KeyRegistrations)
	}
	return regs, nil
}

func (r *Repository) loadRegistrationsLocked(ctx context.Context) ([]models.Registration, bool, error) {
	regs, present, err := loadList[models.Registration](ctx, r.store, store.KeyRegistrations)
	if err != nil {
		return nil, false, err
	}
	if present {
		return regs, false, nil
	}
	// The sample dataset ships no registrations; persist the empty collection
	// so the key counts as written.
	seed := []models.Registration{}
	if err := r.persist(ctx, store.KeyRegistrations, seed); err != nil {
		return nil, false, err
	}
	r.trackSeed(store.KeyRegistrations)
	return seed, true, nil
}

func (r *Repository) SaveRegistration(ctx context.Context, reg models.Registration) (models.Registration, error) {
	r.muRegistrations.Lock()
	saved, err := r.saveRegistrationLocked(ctx, reg)
	r.muRegistrations.Unlock()
	if err != nil {
		return models.Registration{}, err
	}
	r.trackWrite(store.KeyRegistrations, "save")
	r.notify(store.KeyRegistrations)
	return saved, nil
}

func (r *Repository) saveRegistrationLocked(ctx context.Context, reg models.Registration) (models.Registration, error) {
	regs, _, err := r.loadRegistrationsLocked(ctx)
	if err != nil {
		return models.Registration{}, err
	}

	if reg.ID == "" {
		id, err := utils.NewID()
		if err != nil {
			return models.Registration{}, err
		}
		reg.ID = id
		reg.CreatedAt = time.Now()
		regs = append([]models.Registration{reg}, regs...)
	} else {
		replaced := false
		for i := range regs {
			if regs[i].ID == reg.ID {
				reg.CreatedAt = regs[i].CreatedAt
				regs[i] = reg
				replaced = true
				break
			}
		}
		if !replaced {
			if reg.CreatedAt.IsZero() {
				reg.CreatedAt = time.Now()
			}
			regs = append([]models.Registration{reg}, regs...)
		}
	}

	if err := r.persist(ctx, store.KeyRegistrations, regs); err != nil {
		return models.Registration{}, err
	}
	return reg, nil
}

func (r *Repository) DeleteRegistration(ctx context.Context, id string) error {
	r.muRegistrations.Lock()
	err := r.deleteRegistrationLocked(ctx, id)
	r.muRegistrations.Unlock()
	if err != nil {
		return err
	}
	r.trackWrite(store.KeyRegistrations, "delete")
	r.notify(store.KeyRegistrations)
	return nil
}

func (r *Repository) deleteRegistrationLocked(ctx context.Context, id string) error {
	regs, _, err := r.loadRegistrationsLocked(ctx)
	if err != nil {
		return err
	}
	kept := regs[:0]
	for _, reg := range regs {
		if reg.ID != id {
			kept = append(kept, reg)
		}
	}
	return r.persist(ctx, store.KeyRegistrations, kept)
}

// RegistrationsByEvent filters registrations by event identity, preserving
// store order.
func (r *Repository) RegistrationsByEvent(ctx context.Context, eventID string) ([]models.Registration, error) {
	regs, err := r.ListRegistrations(ctx)
	if err != nil {
		return nil, err
	}
	matched := []models.Registration{}
	for _, reg := range regs {
		if reg.EventID == eventID {
			matched = append(matched, reg)
		}
	}
	return matched, nil
}

// Settings

// GetSettings returns the single settings record, seeding the default on
// first read.
func (r *Repository) GetSettings(ctx context.Context) (models.Settings, error) {
	r.muSettings.Lock()
	settings, seeded, err := r.loadSettingsLocked(ctx)
	r.muSettings.Unlock()
	if err != nil {
		return models.Settings{}, err
	}
	if seeded {
		r.notify(store.KeySettings)
	}
	return settings, nil
}

func (r *Repository) loadSettingsLocked(ctx context.Context) (models.Settings, bool, error) {
	raw, ok, err := r.store.Get(ctx, store.KeySettings)
	if err != nil {
		return models.Settings{}, false, fmt.Errorf("read %s: %w", store.KeySettings, err)
	}
	if ok {
		var settings models.Settings
		if err := json.Unmarshal([]byte(raw), &settings); err != nil {
			slog.Warn("discarding malformed settings", "error", err)
			return defaultSettings(), false, nil
		}
		return settings, false, nil
	}
	seed := defaultSettings()
	if err := r.persist(ctx, store.KeySettings, seed); err != nil {
		return models.Settings{}, false, err
	}
	r.trackSeed(store.KeySettings)
	return seed, true, nil
}

func (r *Repository) SaveSettings(ctx context.Context, next models.Settings) (models.Settings, error) {
	r.muSettings.Lock()
	err := r.persist(ctx, store.KeySettings, next)
	r.muSettings.Unlock()
	if err != nil {
		return models.Settings{}, err
	}
	r.trackWrite(store.KeySettings, "save")
	r.notify(store.KeySettings)
	return next, nil
}

// Change notification

// Subscribe registers fn for change notifications and returns its disposer.
// fn receives the affected collection key; subscribers are expected to
// re-fetch rather than trust any payload.
func (r *Repository) Subscribe(fn func(key string)) func() {
	r.subMu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	n := len(r.subs)
	r.subMu.Unlock()
	r.setSubscribers(n)

	return func() {
		r.subMu.Lock()
		delete(r.subs, id)
		n := len(r.subs)
		r.subMu.Unlock()
		r.setSubscribers(n)
	}
}

func (r *Repository) notify(key string) {
	r.subMu.Lock()
	fns := make([]func(string), 0, len(r.subs))
	for _, fn := range r.subs {
		fns = append(fns, fn)
	}
	r.subMu.Unlock()

	for _, fn := range fns {
		r.dispatch(fn, key)
	}
	r.trackNotification(key)
}

// dispatch isolates each subscriber: one panicking listener must not prevent
// the write from completing or starve the others.
func (r *Repository) dispatch(fn func(string), key string) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("change subscriber panicked", "key", key, "panic", rec)
		}
	}()
	fn(key)
}

func (r *Repository) trackWrite(collection, op string) {
	if r.monitor != nil {
		r.monitor.TrackWrite(collection, op)
	}
}

func (r *Repository) trackWriteFailure(collection string) {
	if r.monitor != nil {
		r.monitor.TrackWriteFailure(collection)
	}
}

func (r *Repository) trackSeed(collection string) {
	if r.monitor != nil {
		r.monitor.TrackSeed(collection)
	}
}

func (r *Repository) trackNotification(key string) {
	if r.monitor != nil {
		r.monitor.TrackNotification(key)
	}
}

func (r *Repository) setSubscribers(n int) {
	if r.monitor != nil {
		r.monitor.SetSubscribers(n)
	}
}
