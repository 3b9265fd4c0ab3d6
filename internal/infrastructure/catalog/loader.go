// Package catalog loads catalog snapshots from CSV files, falling back to a
// configured default catalog.
package catalog

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stylerag/backend/internal/domain"
)

// LoaderConfig holds configuration for the catalog loader
type LoaderConfig struct {
	Defaults []domain.CatalogItem
	Cache    domain.CacheRepository // optional
	CacheTTL time.Duration
}

// Loader implements domain.CatalogLoader
type Loader struct {
	defaults []domain.CatalogItem
	cache    domain.CacheRepository
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewLoader creates a catalog loader. A nil Defaults selects the built-in
// catalog; a nil Cache disables snapshot caching.
func NewLoader(config LoaderConfig, logger zerolog.Logger) *Loader {
	defaults := config.Defaults
	if defaults == nil {
		defaults = DefaultCatalog()
	}
	ttl := config.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Loader{
		defaults: defaults,
		cache:    config.Cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "catalog_loader").Logger(),
	}
}

// Load returns the catalog for source. An empty, missing or unreadable source
// yields the default catalog. It never fails.
func (l *Loader) Load(ctx context.Context, source string) []domain.CatalogItem {
	if source == "" {
		return l.defaultCopy()
	}

	info, err := os.Stat(source)
	if err != nil {
		l.logger.Warn().Err(err).Str("source", source).Msg("catalog source not accessible, using default catalog")
		return l.defaultCopy()
	}

	key := snapshotKey(source, info)
	if items, ok := l.fromCache(ctx, key); ok {
		return items
	}

	items, err := readCSVFile(source, l.logger)
	if err != nil {
		l.logger.Error().Err(err).Str("source", source).Msg("failed to load catalog, using default catalog")
		return l.defaultCopy()
	}

	l.logger.Info().Int("count", len(items)).Str("source", source).Msg("loaded catalog from csv")
	l.toCache(ctx, key, items)
	return items
}

func (l *Loader) defaultCopy() []domain.CatalogItem {
	out := make([]domain.CatalogItem, len(l.defaults))
	copy(out, l.defaults)
	return out
}

// snapshotKey changes whenever the file is rewritten
func snapshotKey(source string, info os.FileInfo) string {
	return fmt.Sprintf("catalog:%s:%d:%d", source, info.ModTime().UnixNano(), info.Size())
}

func (l *Loader) fromCache(ctx context.Context, key string) ([]domain.CatalogItem, bool) {
	if l.cache == nil {
		return nil, false
	}
	data, err := l.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			l.logger.Warn().Err(err).Msg("catalog cache read failed")
		}
		return nil, false
	}
	var items []domain.CatalogItem
	if err := json.Unmarshal(data, &items); err != nil {
		l.logger.Warn().Err(err).Msg("discarding undecodable catalog snapshot")
		return nil, false
	}
	return items, true
}

func (l *Loader) toCache(ctx context.Context, key string, items []domain.CatalogItem) {
	if l.cache == nil {
		return
	}
	data, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := l.cache.Set(ctx, key, data, l.cacheTTL); err != nil {
		// Log but don't fail if caching fails
		l.logger.Warn().Err(err).Msg("catalog cache write failed")
	}
}

func readCSVFile(path string, logger zerolog.Logger) ([]domain.CatalogItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer f.Close()
	return ReadCSV(f, logger)
}

// ReadCSV parses catalog rows with a header line naming the columns
// name, category, price, fabric, description and link. Rows without a name
// are skipped, as are rows whose price is not a non-negative number. A
// missing or empty price counts as 0.
func ReadCSV(r io.Reader, logger zerolog.Logger) ([]domain.CatalogItem, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return []domain.CatalogItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", domain.ErrCatalogUnavailable, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	field := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	items := []domain.CatalogItem{}
	seen := make(map[string]bool)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrCatalogUnavailable, line, err)
		}

		name := field(record, "name")
		if name == "" {
			continue
		}
		if seen[name] {
			logger.Warn().Int("line", line).Str("name", name).Msg("skipping duplicate catalog item")
			continue
		}

		price := 0.0
		if raw := field(record, "price"); raw != "" {
			price, err = strconv.ParseFloat(raw, 64)
			if err != nil || price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
				logger.Error().Int("line", line).Str("name", name).Str("price", raw).Msg("skipping catalog row with invalid price")
				continue
			}
		}

		seen[name] = true
		items = append(items, domain.CatalogItem{
			Name:        name,
			Category:    field(record, "category"),
			Price:       domain.NewPrice(price),
			Fabric:      field(record, "fabric"),
			Description: field(record, "description"),
			Link:        field(record, "link"),
		})
	}

	return items, nil
}
