package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/pixil98/go-essentials/internal/game"
	"github.com/pixil98/go-essentials/internal/storage"
	"github.com/pixil98/go-essentials/internal/teleport"
	"github.com/pixil98/go-testutil"
)

type mockPlayer struct {
	id  uuid.UUID
	loc game.Location
}

func (p *mockPlayer) UUID() uuid.UUID         { return p.id }
func (p *mockPlayer) Location() game.Location { return p.loc }

type mockHost struct{}

func (mockHost) ResolveWorld(dimension string) (teleport.World, bool) {
	return dimension, dimension != "the_void"
}

func (mockHost) Relocate(p teleport.Player, _ teleport.World, dest game.Location) error {
	p.(*mockPlayer).loc = dest
	return nil
}

type mockPublisher struct {
	messages []string
}

func (m *mockPublisher) PublishToPlayer(_ uuid.UUID, data []byte) error {
	m.messages = append(m.messages, string(data))
	return nil
}

func (m *mockPublisher) last() string {
	if len(m.messages) == 0 {
		return ""
	}
	return m.messages[len(m.messages)-1]
}

var (
	spawn = game.Location{X: 0, Y: 64, Z: 0, Dimension: "overworld"}
	base  = game.Location{X: 100, Y: 70, Z: -20, Yaw: 90, Dimension: "overworld"}
)

func newTestHandler(t *testing.T) (*Handler, *storage.PlayerStore, *mockPublisher, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := storage.NewPlayerStore(dir, storage.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatalf("unexpected error creating store: %v", err)
	}

	pub := &mockPublisher{}
	h, err := NewHandler(store, teleport.NewTeleporter(mockHost{}, store), pub, DefaultMessages())
	if err != nil {
		t.Fatalf("unexpected error creating handler: %v", err)
	}
	return h, store, pub, dir
}

func assertUserError(t *testing.T, err error, exp string) {
	t.Helper()

	var userErr *UserError
	if !errors.As(err, &userErr) {
		t.Fatalf("expected *UserError, got %v", err)
	}
	testutil.AssertEqual(t, "message", userErr.Message, exp)
}

func TestHandler_SetHome(t *testing.T) {
	h, store, pub, dir := newTestHandler(t)
	ctx := context.Background()
	p := &mockPlayer{id: uuid.New(), loc: base}

	if err := h.SetHome(ctx, p, "Base"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "reply", pub.last(), "Home 'base' set (1/5).")

	loc, ok := store.Get(p.id).Home("base")
	testutil.AssertEqual(t, "stored", ok, true)
	testutil.AssertEqual(t, "location", loc, base)

	_, err := os.Stat(filepath.Join(dir, p.id.String()+".snbt"))
	if err != nil {
		t.Errorf("expected home to be saved: %v", err)
	}
}

func TestHandler_SetHome_DefaultName(t *testing.T) {
	h, store, _, _ := newTestHandler(t)
	p := &mockPlayer{id: uuid.New(), loc: base}

	if err := h.SetHome(context.Background(), p, "  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, ok := store.Get(p.id).Home(DefaultHomeName)
	testutil.AssertEqual(t, "stored", ok, true)
}

func TestHandler_SetHome_Limit(t *testing.T) {
	h, store, _, _ := newTestHandler(t)
	ctx := context.Background()
	p := &mockPlayer{id: uuid.New(), loc: base}

	store.Get(p.id).SetMaxHomes(2)
	for i := 0; i < 2; i++ {
		if err := h.SetHome(ctx, p, fmt.Sprintf("h%d", i)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	err := h.SetHome(ctx, p, "third")
	assertUserError(t, err, "You can only have 2 homes. Delete one first.")

	store.Get(p.id).SetMaxHomes(1)
	store.Get(p.id).RemoveHome("h1")
	err = h.SetHome(ctx, p, "again")
	assertUserError(t, err, "You can only have 1 home. Delete one first.")
}

func TestHandler_SetHome_InvalidLocation(t *testing.T) {
	tests := map[string]struct {
		loc game.Location
	}{
		"no dimension": {loc: game.Location{X: 1, Y: 64}},
		"zero value":   {loc: game.Location{}},
		"infinite x":   {loc: game.Location{X: math.Inf(1), Dimension: "overworld"}},
		"nan pitch":    {loc: game.Location{Pitch: float32(math.NaN()), Dimension: "overworld"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h, store, _, dir := newTestHandler(t)
			p := &mockPlayer{id: uuid.New(), loc: tt.loc}

			err := h.SetHome(context.Background(), p, "base")
			assertUserError(t, err, "You cannot set a home here.")

			testutil.AssertEqual(t, "home count", store.Get(p.id).HomeCount(), 0)
			_, err = os.Stat(filepath.Join(dir, p.id.String()+".snbt"))
			testutil.AssertEqual(t, "nothing saved", os.IsNotExist(err), true)
		})
	}
}

func TestHandler_DelHome(t *testing.T) {
	h, store, pub, _ := newTestHandler(t)
	ctx := context.Background()
	p := &mockPlayer{id: uuid.New(), loc: base}

	err := h.DelHome(ctx, p, "base")
	assertUserError(t, err, "You have no home called 'base'.")

	store.Get(p.id).AddHome("base", base)
	if err := h.DelHome(ctx, p, "BASE"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "reply", pub.last(), "Home 'base' deleted.")
	testutil.AssertEqual(t, "home count", store.Get(p.id).HomeCount(), 0)
}

func TestHandler_HomeAndBack(t *testing.T) {
	h, store, pub, _ := newTestHandler(t)
	ctx := context.Background()
	p := &mockPlayer{id: uuid.New(), loc: spawn}

	err := h.Back(ctx, p)
	assertUserError(t, err, "There is nowhere to go back to.")

	store.Get(p.id).AddHome("base", base)
	if err := h.Home(ctx, p, "Base"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "reply", pub.last(), "Teleported to home 'base'.")
	testutil.AssertEqual(t, "at base", p.loc, base)

	if err := h.Back(ctx, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "reply", pub.last(), "Returned to 0, 64, 0 in overworld.")
	testutil.AssertEqual(t, "at spawn", p.loc, spawn)
}

func TestHandler_Home_Errors(t *testing.T) {
	h, store, _, _ := newTestHandler(t)
	ctx := context.Background()
	p := &mockPlayer{id: uuid.New(), loc: spawn}

	err := h.Home(ctx, p, "nowhere")
	assertUserError(t, err, "You have no home called 'nowhere'.")

	store.Get(p.id).AddHome("void", game.Location{Dimension: "the_void"})
	err = h.Home(ctx, p, "void")
	assertUserError(t, err, "The dimension 'the_void' is not loaded.")
	testutil.AssertEqual(t, "not moved", p.loc, spawn)
}

func TestHandler_Homes(t *testing.T) {
	h, store, pub, _ := newTestHandler(t)
	ctx := context.Background()
	p := &mockPlayer{id: uuid.New(), loc: spawn}

	if err := h.Homes(ctx, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "reply", pub.last(), "You have not set any homes. Use /sethome to set one.")

	store.Get(p.id).AddHome("base", base)
	store.Get(p.id).AddHome("mine", spawn)
	if err := h.Homes(ctx, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "reply", pub.last(), "Homes (2/5): base, mine")
}

func TestHandler_Save(t *testing.T) {
	h, store, pub, dir := newTestHandler(t)
	p := &mockPlayer{id: uuid.New(), loc: spawn}
	store.Get(p.id).SetLastPosition(base)

	if err := h.Save(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "reply", pub.last(), "Homes saved.")

	_, err := os.Stat(filepath.Join(dir, p.id.String()+".snbt"))
	if err != nil {
		t.Errorf("expected record to be saved: %v", err)
	}
}

func TestNewHandler_BadTemplate(t *testing.T) {
	messages := DefaultMessages()
	messages.HomeSet = "{{ .Name"
	messages.Back = "{{ end }}"

	_, err := NewHandler(nil, nil, nil, messages)
	testutil.AssertErrorContains(t, err, "home_set")
	testutil.AssertErrorContains(t, err, "back")
}
