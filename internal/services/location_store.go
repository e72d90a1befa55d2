package services

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/rs/zerolog"
	"github.com/zecageo/vali/internal/utils"
	"github.com/zecageo/vali/pkg/file"
	"github.com/zecageo/vali/pkg/location"
)

// LocationStore loads location files and keeps the parsed result for every
// path it has seen. Entries are never refreshed: a file edited after its first
// load keeps returning the original locations.
//
// The slices handed out are shared between callers and must be treated as
// read-only.
type LocationStore struct {
	// Dependencies
	fileOps file.FileOperations
	logger  zerolog.Logger

	// Cache state. Hits only touch cache; loadMu serializes every miss.
	cache  cmap.ConcurrentMap[string, []location.Location]
	loadMu sync.Mutex
}

// NewLocationStore creates an empty LocationStore reading files through fileOps.
func NewLocationStore(fileOps file.FileOperations, logger zerolog.Logger) *LocationStore {
	return &LocationStore{
		fileOps: fileOps,
		logger:  logger,
		cache:   cmap.New[[]location.Location](),
	}
}

// GetLocations returns the locations stored in the file at path, reading and
// parsing it at most once per store. Failed loads are not cached.
func (s *LocationStore) GetLocations(path string) ([]location.Location, error) {
	if locations, ok := s.cache.Get(path); ok {
		return locations, nil
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	// another caller may have loaded it while we waited
	if locations, ok := s.cache.Get(path); ok {
		return locations, nil
	}

	locations, err := s.load(path)
	if err != nil {
		s.logger.Debug().
			Err(err).
			Str("path", path).
			Msg("Failed to load locations")
		return nil, err
	}

	s.cache.Set(path, locations)
	return locations, nil
}

// Len returns the number of cached paths.
func (s *LocationStore) Len() int {
	return s.cache.Count()
}

// Preload loads every path using a pool of workers and returns the errors
// keyed by path. Paths that loaded successfully are absent from the result.
func (s *LocationStore) Preload(paths []string, workers int) map[string]error {
	if workers < 1 {
		workers = 1
	}

	var (
		mu     sync.Mutex
		failed = make(map[string]error)
	)

	pool := utils.NewWorkerPool(workers)
	for _, path := range paths {
		pool.Submit(func() {
			if _, err := s.GetLocations(path); err != nil {
				mu.Lock()
				failed[path] = err
				mu.Unlock()
			}
		})
	}
	pool.Shutdown()

	return failed
}

func (s *LocationStore) load(path string) ([]location.Location, error) {
	start := time.Now()

	content, err := s.fileOps.ReadFileRaw(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", location.ErrNotFound, path, err)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	format := location.DetectFormat(path, content)
	locations, err := location.DecodeFormat(format, content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s as %s: %w", path, format, err)
	}

	s.logger.Debug().
		Str("path", path).
		Stringer("format", format).
		Int("count", len(locations)).
		Dur("elapsed", time.Since(start)).
		Msg("Locations loaded")
	return locations, nil
}
