package teleport

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pixil98/go-essentials/internal/game"
	"github.com/pixil98/go-testutil"
)

type mockPlayer struct {
	id  uuid.UUID
	loc game.Location
}

func (p *mockPlayer) UUID() uuid.UUID         { return p.id }
func (p *mockPlayer) Location() game.Location { return p.loc }

type mockHost struct {
	worlds    map[string]bool
	relocErr  error
	relocated int
}

func (h *mockHost) ResolveWorld(dimension string) (World, bool) {
	if !h.worlds[dimension] {
		return nil, false
	}
	return dimension, true
}

func (h *mockHost) Relocate(p Player, w World, dest game.Location) error {
	if h.relocErr != nil {
		return h.relocErr
	}
	h.relocated++
	p.(*mockPlayer).loc = dest
	return nil
}

type mockRecords map[uuid.UUID]*game.PlayerData

func (m mockRecords) Get(id uuid.UUID) *game.PlayerData {
	if _, ok := m[id]; !ok {
		m[id] = game.NewPlayerData(id)
	}
	return m[id]
}

var (
	spawn = game.Location{X: 0, Y: 64, Z: 0, Dimension: "overworld"}
	base  = game.Location{X: 100, Y: 70, Z: -20, Yaw: 90, Dimension: "overworld"}
	hell  = game.Location{X: 5, Y: 40, Z: 5, Dimension: "nether"}
)

func TestTeleporter_Teleport(t *testing.T) {
	tests := map[string]struct {
		dest     game.Location
		relocErr error
		expErr   error
		expLoc   game.Location
		expLast  bool
	}{
		"moves and records last position": {
			dest:    base,
			expLoc:  base,
			expLast: true,
		},
		"unknown dimension": {
			dest:   game.Location{Dimension: "the_void"},
			expErr: ErrUnknownDimension,
			expLoc: spawn,
		},
		"relocation failure keeps last position unset": {
			dest:     base,
			relocErr: errors.New("chunk not loaded"),
			expLoc:   spawn,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := &mockPlayer{id: uuid.New(), loc: spawn}
			host := &mockHost{worlds: map[string]bool{"overworld": true, "nether": true}, relocErr: tt.relocErr}
			records := mockRecords{}

			err := NewTeleporter(host, records).Teleport(p, tt.dest)

			switch {
			case tt.expErr != nil:
				testutil.AssertEqual(t, "error", errors.Is(err, tt.expErr), true)
			case tt.relocErr != nil:
				testutil.AssertErrorContains(t, err, "chunk not loaded")
			case err != nil:
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "player location", p.loc, tt.expLoc)
			last, ok := records.Get(p.id).LastPosition()
			testutil.AssertEqual(t, "has last position", ok, tt.expLast)
			if tt.expLast {
				testutil.AssertEqual(t, "last position", last, spawn)
			}
		})
	}
}

func TestTeleporter_Back(t *testing.T) {
	p := &mockPlayer{id: uuid.New(), loc: spawn}
	host := &mockHost{worlds: map[string]bool{"overworld": true, "nether": true}}
	tp := NewTeleporter(host, mockRecords{})

	err := tp.Back(p)
	testutil.AssertEqual(t, "no last position", errors.Is(err, ErrNoLastPosition), true)

	if err := tp.Teleport(p, hell); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tp.Back(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "back at spawn", p.loc, spawn)

	if err := tp.Back(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "back in nether", p.loc, hell)
	testutil.AssertEqual(t, "relocations", host.relocated, 3)
}
