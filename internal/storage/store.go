package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	goerrors "github.com/pixil98/go-errors"
	"github.com/pixil98/go-essentials/internal/game"
)

// DefaultDirName is the directory under the world root that holds player files.
const DefaultDirName = "syrup_essential_data"

// Storer is the view of the player store given to gameplay code.
type Storer interface {
	Get(uuid.UUID) *game.PlayerData
	Save(uuid.UUID)
	SaveAll()
}

// PlayerStore keeps every player record touched since start-up in memory
// and persists them one file per player.
type PlayerStore struct {
	path     string
	codec    Codec
	logger   *slog.Logger
	maxHomes int

	mu      sync.Mutex
	records map[uuid.UUID]*record
}

// record loads at most once, however many callers race on first access.
// writeMu serialises writes of the same file.
type record struct {
	once    sync.Once
	data    *game.PlayerData
	writeMu sync.Mutex
}

func NewPlayerStore(path string, opts ...PlayerStoreOpt) (*PlayerStore, error) {
	s := &PlayerStore{
		path:     path,
		codec:    &SNBTCodec{},
		logger:   slog.Default(),
		maxHomes: game.DefaultMaxHomes,
		records:  map[uuid.UUID]*record{},
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("creating player data directory: %w", err)
	}

	s.logger.Info("player data directory", "path", path, "format", s.codec.Extension())

	return s, nil
}

// Get returns the record for id, loading it from disk on first use. It never
// fails: a missing or unreadable file yields a fresh record.
func (s *PlayerStore) Get(id uuid.UUID) *game.PlayerData {
	s.mu.Lock()
	r, ok := s.records[id]
	if !ok {
		r = &record{}
		s.records[id] = r
	}
	s.mu.Unlock()

	return s.resolve(id, r)
}

func (s *PlayerStore) resolve(id uuid.UUID, r *record) *game.PlayerData {
	r.once.Do(func() {
		r.data = s.load(id)
	})
	return r.data
}

func (s *PlayerStore) load(id uuid.UUID) *game.PlayerData {
	path := s.filePath(id)

	data, err := s.loadFile(id, path)
	if err != nil {
		s.logger.Error("failed to load player data", "uuid", id, "path", path, "error", err)
	}
	if data != nil {
		return data
	}

	data = game.NewPlayerData(id)
	data.SetMaxHomes(s.maxHomes)
	return data
}

// loadFile returns nil without an error when no file exists yet.
func (s *PlayerStore) loadFile(id uuid.UUID, path string) (*game.PlayerData, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	// Ignoring close error - file is read-only, error is not actionable
	defer func() { _ = file.Close() }()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	data, err := s.codec.Unmarshal(id, raw)
	if err != nil {
		return nil, fmt.Errorf("decoding player data: %w", err)
	}

	return data, nil
}

// Save writes the record for id if it is resident. Failures are logged.
func (s *PlayerStore) Save(id uuid.UUID) {
	s.mu.Lock()
	r, ok := s.records[id]
	s.mu.Unlock()

	if !ok {
		return
	}

	if err := s.save(id, r); err != nil {
		s.logger.Error("failed to save player data", "uuid", id, "error", err)
	}
}

func (s *PlayerStore) save(id uuid.UUID, r *record) error {
	data := s.resolve(id, r)

	raw, err := s.codec.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding player data: %w", err)
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	return atomicWrite(s.filePath(id), raw, 0644)
}

// SaveAll writes every resident record.
func (s *PlayerStore) SaveAll() {
	s.mu.Lock()
	pending := make(map[uuid.UUID]*record, len(s.records))
	for id, r := range s.records {
		pending[id] = r
	}
	s.mu.Unlock()

	s.logger.Info("saving all player data", "count", len(pending))

	el := goerrors.NewErrorList()
	failed := 0
	for id, r := range pending {
		if err := s.save(id, r); err != nil {
			el.Add(fmt.Errorf("%s: %w", id, err))
			failed++
		}
	}

	if err := el.Err(); err != nil {
		s.logger.Error("failed to save player data", "failed", failed, "error", err)
	}
}

// Tick saves every resident record so the store can run under the driver.
func (s *PlayerStore) Tick(_ context.Context) error {
	s.SaveAll()
	return nil
}

// Resident returns the identifiers currently held in memory.
func (s *PlayerStore) Resident() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]uuid.UUID, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	return ids
}

func (s *PlayerStore) filePath(id uuid.UUID) string {
	return filepath.Join(s.path, id.String()+s.codec.Extension())
}

// atomicWrite writes data to a temp file then renames it to the target path.
// This prevents partial or empty files if the process is interrupted.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"

	if err := writeFile(tmp, data, perm); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil && !errors.Is(removeErr, fs.ErrNotExist) {
			slog.Warn("failed to remove temp file after write failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// writeFile closes the handle on every path. A failed close is returned when
// the write itself succeeded.
func writeFile(path string, data []byte, perm os.FileMode) (err error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = file.Write(data)
	return err
}
