package storage

import "log/slog"

type PlayerStoreOpt func(*PlayerStore)

// WithCodec selects the on-disk format. The default is SNBT text.
func WithCodec(c Codec) PlayerStoreOpt {
	return func(s *PlayerStore) {
		s.codec = c
	}
}

func WithLogger(l *slog.Logger) PlayerStoreOpt {
	return func(s *PlayerStore) {
		s.logger = l
	}
}

// WithDefaultMaxHomes sets the capacity given to players with no saved file.
func WithDefaultMaxHomes(n int) PlayerStoreOpt {
	return func(s *PlayerStore) {
		s.maxHomes = n
	}
}
