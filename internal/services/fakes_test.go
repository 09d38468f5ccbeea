package services

import (
	"context"
	"sort"

	"github.com/boxboard/apiserver/internal/store"
	"github.com/boxboard/apiserver/types"
)

// In-memory repositories backing the service tests.

type fakeAuditRepo struct {
	entries []types.AuditLogEntry
}

func (f *fakeAuditRepo) Append(_ context.Context, entry types.AuditLogEntry) (types.AuditLogEntry, error) {
	entry.ID = len(f.entries) + 1
	f.entries = append(f.entries, entry)
	return entry, nil
}

func (f *fakeAuditRepo) List(_ context.Context, limit int) ([]types.AuditLogEntry, error) {
	out := make([]types.AuditLogEntry, len(f.entries))
	copy(out, f.entries)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newTestAudit() (*AuditService, *fakeAuditRepo) {
	repo := &fakeAuditRepo{}
	return NewAuditService(repo), repo
}

type fakeUserRepo struct {
	users  map[int]types.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]types.User{}, nextID: 1}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int) (types.User, error) {
	user, ok := f.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]types.User, error) {
	out := make([]types.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrConflict
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user types.User) (types.User, error) {
	if _, ok := f.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeItemRepo struct {
	items  map[int]types.Item
	nextID int
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[int]types.Item{}, nextID: 1}
}

func (f *fakeItemRepo) Get(_ context.Context, id int) (types.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return types.Item{}, store.ErrNotFound
	}
	return item, nil
}

func (f *fakeItemRepo) List(_ context.Context, filter types.ItemFilter) ([]types.Item, error) {
	out := make([]types.Item, 0, len(f.items))
	for _, item := range f.items {
		if filter.LocationID != 0 && (item.LocationID == nil || *item.LocationID != filter.LocationID) {
			continue
		}
		if filter.ContainerID != 0 && (item.ContainerID == nil || *item.ContainerID != filter.ContainerID) {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.Kind != "" && item.Kind != filter.Kind {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeItemRepo) Create(_ context.Context, item types.Item) (types.Item, error) {
	item.ID = f.nextID
	f.nextID++
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeItemRepo) Update(_ context.Context, item types.Item) (types.Item, error) {
	if _, ok := f.items[item.ID]; !ok {
		return types.Item{}, store.ErrNotFound
	}
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeItemRepo) SetPhoto(_ context.Context, id int, key, mime string) error {
	item, ok := f.items[id]
	if !ok {
		return store.ErrNotFound
	}
	item.PhotoKey = key
	item.PhotoMime = mime
	f.items[id] = item
	return nil
}

func (f *fakeItemRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeAssignmentRepo struct {
	assignments map[int]types.Assignment
	nextID      int
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: map[int]types.Assignment{}, nextID: 1}
}

func (f *fakeAssignmentRepo) Get(_ context.Context, id int) (types.Assignment, error) {
	assignment, ok := f.assignments[id]
	if !ok {
		return types.Assignment{}, store.ErrNotFound
	}
	return assignment, nil
}

func (f *fakeAssignmentRepo) List(_ context.Context) ([]types.Assignment, error) {
	out := make([]types.Assignment, 0, len(f.assignments))
	for _, assignment := range f.assignments {
		out = append(out, assignment)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAssignmentRepo) Create(_ context.Context, assignment types.Assignment) (types.Assignment, error) {
	assignment.ID = f.nextID
	f.nextID++
	f.assignments[assignment.ID] = assignment
	return assignment, nil
}

func (f *fakeAssignmentRepo) Update(_ context.Context, assignment types.Assignment) (types.Assignment, error) {
	if _, ok := f.assignments[assignment.ID]; !ok {
		return types.Assignment{}, store.ErrNotFound
	}
	f.assignments[assignment.ID] = assignment
	return assignment, nil
}

func (f *fakeAssignmentRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.assignments[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.assignments, id)
	return nil
}

type fakeNoteRepo struct {
	notes  map[int]types.Note
	nextID int
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: map[int]types.Note{}, nextID: 1}
}

func (f *fakeNoteRepo) Get(_ context.Context, id int) (types.Note, error) {
	note, ok := f.notes[id]
	if !ok {
		return types.Note{}, store.ErrNotFound
	}
	return note, nil
}

func (f *fakeNoteRepo) List(_ context.Context, filter types.NoteFilter) ([]types.Note, error) {
	out := make([]types.Note, 0, len(f.notes))
	for _, note := range f.notes {
		if filter.ItemID != 0 && (note.ItemID == nil || *note.ItemID != filter.ItemID) {
			continue
		}
		if filter.ActivityID != 0 && (note.ActivityID == nil || *note.ActivityID != filter.ActivityID) {
			continue
		}
		if filter.LocationID != 0 && (note.LocationID == nil || *note.LocationID != filter.LocationID) {
			continue
		}
		out = append(out, note)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeNoteRepo) Create(_ context.Context, note types.Note) (types.Note, error) {
	note.ID = f.nextID
	f.nextID++
	f.notes[note.ID] = note
	return note, nil
}

func (f *fakeNoteRepo) Update(_ context.Context, note types.Note) (types.Note, error) {
	if _, ok := f.notes[note.ID]; !ok {
		return types.Note{}, store.ErrNotFound
	}
	f.notes[note.ID] = note
	return note, nil
}

func (f *fakeNoteRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.notes[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.notes, id)
	return nil
}

type fakeLocationRepo struct {
	locations map[int]types.Location
	nextID    int
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: map[int]types.Location{}, nextID: 1}
}

func (f *fakeLocationRepo) Get(_ context.Context, id int) (types.Location, error) {
	location, ok := f.locations[id]
	if !ok {
		return types.Location{}, store.ErrNotFound
	}
	return location, nil
}

func (f *fakeLocationRepo) List(_ context.Context) ([]types.Location, error) {
	out := make([]types.Location, 0, len(f.locations))
	for _, location := range f.locations {
		out = append(out, location)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeLocationRepo) Create(_ context.Context, location types.Location) (types.Location, error) {
	location.ID = f.nextID
	f.nextID++
	f.locations[location.ID] = location
	return location, nil
}

func (f *fakeLocationRepo) Update(_ context.Context, location types.Location) (types.Location, error) {
	if _, ok := f.locations[location.ID]; !ok {
		return types.Location{}, store.ErrNotFound
	}
	f.locations[location.ID] = location
	return location, nil
}

func (f *fakeLocationRepo) Delete(_ context.Context, id int) error {
	if _, ok := f.locations[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.locations, id)
	return nil
}
