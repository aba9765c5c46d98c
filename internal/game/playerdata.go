package game

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pixil98/go-essentials/internal/snbt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultMaxHomes applies to new players and to files that predate MaxHomes.
const DefaultMaxHomes = 5

// NamedLocation is a home together with its stored name.
type NamedLocation struct {
	Name     string
	Location Location
}

// PlayerData holds the homes and last position of one player. Methods are
// safe to call concurrently; an encode always sees a consistent snapshot.
type PlayerData struct {
	uuid uuid.UUID

	mu           sync.RWMutex
	homes        map[string]Location
	order        []string
	lastPosition *Location
	maxHomes     int
}

func NewPlayerData(id uuid.UUID) *PlayerData {
	return &PlayerData{
		uuid:     id,
		homes:    map[string]Location{},
		maxHomes: DefaultMaxHomes,
	}
}

// NormalizeHomeName returns the key a home name is stored under.
func NormalizeHomeName(name string) string {
	return cases.Lower(language.Und).String(name)
}

func (p *PlayerData) UUID() uuid.UUID {
	return p.uuid
}

// AddHome stores loc under name, replacing any home with the same name.
// It returns false and changes nothing when the player is at capacity or
// loc fails Validate.
func (p *PlayerData) AddHome(name string, loc Location) bool {
	if loc.Validate() != nil {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.homes) >= p.maxHomes {
		return false
	}

	p.putHome(NormalizeHomeName(name), loc)
	return true
}

func (p *PlayerData) putHome(key string, loc Location) {
	if _, ok := p.homes[key]; !ok {
		p.order = append(p.order, key)
	}
	p.homes[key] = loc
}

// RemoveHome deletes the named home and reports whether it existed.
func (p *PlayerData) RemoveHome(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := NormalizeHomeName(name)
	if _, ok := p.homes[key]; !ok {
		return false
	}

	delete(p.homes, key)
	for i, n := range p.order {
		if n == key {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	return true
}

func (p *PlayerData) Home(name string) (Location, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	loc, ok := p.homes[NormalizeHomeName(name)]
	return loc, ok
}

// Homes returns the homes in the order they were first set.
func (p *PlayerData) Homes() []NamedLocation {
	p.mu.RLock()
	defer p.mu.RUnlock()

	homes := make([]NamedLocation, 0, len(p.order))
	for _, name := range p.order {
		homes = append(homes, NamedLocation{Name: name, Location: p.homes[name]})
	}
	return homes
}

func (p *PlayerData) HomeCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.homes)
}

func (p *PlayerData) MaxHomes() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.maxHomes
}

// SetMaxHomes changes the capacity. Homes above a lowered capacity are kept,
// but no more can be added until enough are removed.
func (p *PlayerData) SetMaxHomes(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.maxHomes = max(n, 0)
}

// SetLastPosition records loc unless it fails Validate, in which case the
// previous last position is kept and false is returned.
func (p *PlayerData) SetLastPosition(loc Location) bool {
	if loc.Validate() != nil {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastPosition = &loc
	return true
}

func (p *PlayerData) LastPosition() (Location, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.lastPosition == nil {
		return Location{}, false
	}
	return *p.lastPosition, true
}

// Encode converts the record into its stored structure. LastPosition is
// omitted entirely when unset.
func (p *PlayerData) Encode() snbt.Compound {
	p.mu.RLock()
	defer p.mu.RUnlock()

	homes := make(snbt.List, 0, len(p.order))
	for _, name := range p.order {
		homes = append(homes, snbt.Compound{
			{Name: "Name", Value: snbt.String(name)},
			{Name: "Data", Value: p.homes[name].Encode()},
		})
	}

	c := snbt.Compound{
		{Name: "UUID", Value: snbt.String(p.uuid.String())},
		{Name: "MaxHomes", Value: snbt.Int(p.maxHomes)},
		{Name: "Homes", Value: homes},
	}
	if p.lastPosition != nil {
		c = append(c, snbt.Field{Name: "LastPosition", Value: encodeLastPosition(*p.lastPosition)})
	}

	return c
}

// DecodePlayerData rebuilds a record for id. MaxHomes, Homes and
// LastPosition are optional; a home entry missing Name or Data, or with an
// incomplete location, fails the decode.
func DecodePlayerData(id uuid.UUID, c snbt.Compound) (*PlayerData, error) {
	p := NewPlayerData(id)

	maxHomes, err := optionalInt(c, "MaxHomes", DefaultMaxHomes)
	if err != nil {
		return nil, err
	}
	p.maxHomes = max(maxHomes, 0)

	if t, ok := c.Get("Homes"); ok {
		list, ok := t.(snbt.List)
		if !ok {
			return nil, &FieldTypeError{Field: "Homes", Want: "list"}
		}

		for i, e := range list {
			entry, ok := e.(snbt.Compound)
			if !ok {
				return nil, fmt.Errorf("home %d: %w", i, &FieldTypeError{Field: "Homes", Want: "list of compounds"})
			}

			name, err := requireString(entry, "Name")
			if err != nil {
				return nil, fmt.Errorf("home %d: %w", i, err)
			}
			data, err := requireCompound(entry, "Data")
			if err != nil {
				return nil, fmt.Errorf("home %q: %w", name, err)
			}
			loc, err := DecodeLocation(data)
			if err != nil {
				return nil, fmt.Errorf("home %q: %w", name, err)
			}

			p.putHome(NormalizeHomeName(name), loc)
		}
	}

	if t, ok := c.Get("LastPosition"); ok {
		sub, ok := t.(snbt.Compound)
		if !ok {
			return nil, &FieldTypeError{Field: "LastPosition", Want: "compound"}
		}
		loc, err := decodeLastPosition(sub)
		if err != nil {
			return nil, fmt.Errorf("last position: %w", err)
		}
		p.lastPosition = &loc
	}

	return p, nil
}
