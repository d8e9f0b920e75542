package services

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/joshua-takyi/togethernow/internal/helpers"
	"github.com/joshua-takyi/togethernow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeEventRepo mirrors the store's conditional-update semantics in memory:
// join matches only non-members, leave matches only members, and each match
// applies the membership change and the counter delta together.
type fakeEventRepo struct {
	mu     sync.Mutex
	events map[primitive.ObjectID]*models.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[primitive.ObjectID]*models.Event)}
}

func (f *fakeEventRepo) CreateEvent(ctx context.Context, event *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	cp := *event
	cp.Members = append([]string(nil), event.Members...)
	f.events[event.ID] = &cp
	return nil
}

func (f *fakeEventRepo) GetEventByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *event
	cp.Members = append([]string(nil), event.Members...)
	return &cp, nil
}

func (f *fakeEventRepo) ListEvents(ctx context.Context) ([]*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	events := []*models.Event{}
	for _, event := range f.events {
		cp := *event
		cp.Members = append([]string(nil), event.Members...)
		events = append(events, &cp)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events, nil
}

func (f *fakeEventRepo) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) JoinEvent(ctx context.Context, id primitive.ObjectID, uid string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[id]
	if !ok || event.IsMember(uid) {
		return false, nil
	}
	event.Members = append(event.Members, uid)
	event.CurrentPeople++
	return true, nil
}

func (f *fakeEventRepo) LeaveEvent(ctx context.Context, id primitive.ObjectID, uid string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.events[id]
	if !ok || !event.IsMember(uid) {
		return false, nil
	}
	members := event.Members[:0]
	for _, m := range event.Members {
		if m != uid {
			members = append(members, m)
		}
	}
	event.Members = members
	event.CurrentPeople--
	return true, nil
}

func identityU1() *helpers.Identity {
	return &helpers.Identity{ID: "u1", Name: "Alice"}
}

func TestCreateEventInitialState(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, nil)

	event, err := svc.CreateEvent(context.Background(), &CreateEventInput{
		Title:     "Run",
		Category:  "sports",
		Location:  "park",
		MaxPeople: 5,
	}, identityU1())
	require.NoError(t, err)

	assert.Equal(t, "u1", event.CreatorUID)
	assert.Equal(t, "Alice", event.CreatorName)
	assert.Equal(t, []string{"u1"}, event.Members)
	assert.Equal(t, 1, event.CurrentPeople)
	assert.Equal(t, 5, event.MaxPeople)
	assert.False(t, event.CreatedAt.IsZero())
	assert.False(t, event.ID.IsZero())
}

func TestCreateEventRejectsInvalidCapacity(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), nil)

	_, err := svc.CreateEvent(context.Background(), &CreateEventInput{
		Title:     "Run",
		MaxPeople: 0,
	}, identityU1())
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = svc.CreateEvent(context.Background(), &CreateEventInput{
		MaxPeople: 5,
	}, identityU1())
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestToggleMembershipIsItsOwnInverse(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, nil)

	event, err := svc.CreateEvent(context.Background(), &CreateEventInput{
		Title:     "Run",
		MaxPeople: 5,
	}, identityU1())
	require.NoError(t, err)

	u2 := &helpers.Identity{ID: "u2", Name: "Bob"}

	status, err := svc.ToggleMembership(context.Background(), event.ID.Hex(), u2)
	require.NoError(t, err)
	assert.Equal(t, StatusJoined, status)

	got, err := repo.GetEventByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, got.Members)
	assert.Equal(t, 2, got.CurrentPeople)

	status, err = svc.ToggleMembership(context.Background(), event.ID.Hex(), u2)
	require.NoError(t, err)
	assert.Equal(t, StatusUnjoined, status)

	got, err = repo.GetEventByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, got.Members)
	assert.Equal(t, 1, got.CurrentPeople)
}

func TestToggleMembershipUnknownEvent(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), nil)

	_, err := svc.ToggleMembership(context.Background(), primitive.NewObjectID().Hex(), identityU1())
	assert.ErrorIs(t, err, models.ErrNotFound)

	// A malformed id cannot reference any event either.
	_, err = svc.ToggleMembership(context.Background(), "not-an-object-id", identityU1())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteEventAuthorization(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, nil)

	event, err := svc.CreateEvent(context.Background(), &CreateEventInput{
		Title:     "Run",
		MaxPeople: 5,
	}, identityU1())
	require.NoError(t, err)

	u2 := &helpers.Identity{ID: "u2", Name: "Bob"}
	err = svc.DeleteEvent(context.Background(), event.ID.Hex(), u2)
	assert.ErrorIs(t, err, models.ErrForbidden)

	// Still present after the denied attempt.
	_, err = repo.GetEventByID(context.Background(), event.ID)
	require.NoError(t, err)

	err = svc.DeleteEvent(context.Background(), event.ID.Hex(), identityU1())
	require.NoError(t, err)

	_, err = repo.GetEventByID(context.Background(), event.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteEventUnknownEvent(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), nil)

	err := svc.DeleteEvent(context.Background(), primitive.NewObjectID().Hex(), identityU1())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListEventsNewestFirst(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, nil)

	base := time.Now()
	for i, title := range []string{"first", "second", "third"} {
		err := repo.CreateEvent(context.Background(), &models.Event{
			Title:         title,
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
			CreatorUID:    "u1",
			CurrentPeople: 1,
			Members:       []string{"u1"},
		})
		require.NoError(t, err)
	}

	events, err := svc.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "third", events[0].Title)
	assert.Equal(t, "second", events[1].Title)
	assert.Equal(t, "first", events[2].Title)
}
