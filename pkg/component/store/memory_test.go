package store

import (
	"context"
	"testing"

	"github.com/gridsmith/gridview/pkg/component"
	"github.com/gridsmith/gridview/pkg/errors"
)

func solar(id, name string) *component.Component {
	return &component.Component{ID: id, Category: component.CategorySolar, Name: name}
}

func TestMemStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	if err := s.Put(ctx, solar("s1", "Roof PV")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := s.Put(ctx, solar("s2", "Barn PV")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "Roof PV" {
		t.Errorf("Get() name = %q", got.Name)
	}

	if err := s.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "s1"); !errors.Is(err, errors.ErrCodeComponentNotFound) {
		t.Errorf("Get(deleted) error = %v, want COMPONENT_NOT_FOUND", err)
	}
	if err := s.Delete(ctx, "s1"); !errors.Is(err, errors.ErrCodeComponentNotFound) {
		t.Errorf("Delete(absent) error = %v, want COMPONENT_NOT_FOUND", err)
	}
}

func TestMemStoreRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	bad := &component.Component{ID: "x1", Category: "steam", Name: "Boiler"}
	if err := s.Put(ctx, bad); !errors.Is(err, errors.ErrCodeInvalidCategory) {
		t.Errorf("Put(invalid) error = %v, want INVALID_CATEGORY", err)
	}
}

func TestMemStoreListOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	for _, c := range []*component.Component{
		solar("s1", "A"), solar("s2", "B"), solar("s3", "C"),
	} {
		if err := s.Put(ctx, c); err != nil {
			t.Fatal(err)
		}
	}

	// Replacing keeps the original slot.
	if err := s.Put(ctx, solar("s2", "B renamed")); err != nil {
		t.Fatal(err)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"s1", "s2", "s3"}
	for i, id := range want {
		if list[i].ID != id {
			t.Fatalf("List() order = %v, want %v", list, want)
		}
	}
	if list[1].Name != "B renamed" {
		t.Errorf("replacement not applied: %q", list[1].Name)
	}
}

func TestMemStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	c := solar("s1", "Roof PV")
	if err := s.Put(ctx, c); err != nil {
		t.Fatal(err)
	}
	c.Name = "mutated"

	got, _ := s.Get(ctx, "s1")
	if got.Name != "Roof PV" {
		t.Error("store shares memory with the caller")
	}
}

func TestWatchedPublishesSnapshots(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewWatched(NewMemStore())
	sub := w.Subscribe(ctx)

	if err := w.Put(ctx, solar("s1", "Roof PV")); err != nil {
		t.Fatal(err)
	}
	snap := <-sub
	if len(snap) != 1 || snap[0].ID != "s1" {
		t.Fatalf("snapshot after put = %v", snap)
	}

	if err := w.Delete(ctx, "s1"); err != nil {
		t.Fatal(err)
	}
	snap = <-sub
	if len(snap) != 0 {
		t.Fatalf("snapshot after delete = %v", snap)
	}
}

func TestFeedDropsStaleSnapshotsForSlowSubscribers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f := NewFeed()
	sub := f.Subscribe(ctx)

	f.Publish([]component.Component{*solar("s1", "old")})
	f.Publish([]component.Component{*solar("s1", "new")})

	snap := <-sub
	if snap[0].Name != "new" {
		t.Errorf("slow subscriber got stale snapshot %q", snap[0].Name)
	}
}

func TestFeedSubscriptionClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := NewFeed()
	sub := f.Subscribe(ctx)

	cancel()
	for range sub {
	}
	// Publishing after cancellation must not panic on the closed channel.
	f.Publish(nil)
}
