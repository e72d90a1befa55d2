package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/zecageo/vali/internal/services"
	"github.com/zecageo/vali/internal/utils"
	"github.com/zecageo/vali/pkg/file"
	"github.com/zecageo/vali/pkg/location"
)

const defaultConfigFile = "configs/config.yaml"

func main() {
	configFile := defaultConfigFile
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}

	// Initialize file operations handler
	fileClient := file.NewFileService()

	// Bootstrap logger until the configured level is known
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	config, err := utils.LoadConfig(configFile, fileClient)
	if err != nil {
		log.Fatal().Err(err).Str("config", configFile).Msg("Failed to load configuration")
	}

	log = newLogger(config).With().Str("run_id", uuid.New().String()).Logger()

	// One store for the whole process
	store := services.NewLocationStore(fileClient, log)

	files, missing := existingFiles(fileClient, utils.Unique(config.Locations.Files))
	for path, err := range missing {
		log.Error().Err(err).Str("path", path).Msg("Skipping location file")
	}

	failed := store.Preload(files, config.Locations.PreloadWorkers)

	for _, path := range files {
		if err, ok := failed[path]; ok {
			log.Error().Err(err).Str("path", path).Msg("Failed to load locations")
			continue
		}

		locations, err := store.GetLocations(path)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("Failed to load locations")
			failed[path] = err
			continue
		}

		event := log.Info().Str("path", path).Int("count", len(locations))
		if bounds, ok := location.Bounds(locations); ok {
			event = event.Str("bounds", bounds.String())
		}
		event.Msg("Locations ready")
	}

	for path, err := range missing {
		failed[path] = err
	}

	log.Info().
		Int("loaded", store.Len()).
		Int("failed", len(failed)).
		Strs("failed_paths", sortedKeys(failed)).
		Msg("Preload finished")

	if len(failed) > 0 {
		os.Exit(1)
	}
}

// existingFiles splits paths into the ones present on disk, in order, and the
// errors for the rest.
func existingFiles(fileOps file.FileOperations, paths []string) ([]string, map[string]error) {
	var (
		files   []string
		missing = make(map[string]error)
	)
	for _, path := range paths {
		exists, err := fileOps.IsFileExists(path)
		if err == nil && !exists {
			err = fmt.Errorf("%w: %s", location.ErrNotFound, path)
		}
		if err != nil {
			missing[path] = err
			continue
		}
		files = append(files, path)
	}
	return files, missing
}

func newLogger(config *utils.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(config.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if config.Logging.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

func sortedKeys(m map[string]error) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
