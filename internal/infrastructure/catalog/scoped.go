package catalog

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/stylerag/backend/internal/domain"
)

// ScopedLoader decides which catalog file a caller-supplied source may name.
// Requests without a source read the configured one; a request source is
// honoured only when it resolves inside AllowedDir.
type ScopedLoader struct {
	loader        domain.CatalogLoader
	defaultSource string
	allowedDir    string
	logger        zerolog.Logger
}

// NewScopedLoader wraps loader. An empty allowedDir rejects every request
// supplied source.
func NewScopedLoader(loader domain.CatalogLoader, defaultSource, allowedDir string, logger zerolog.Logger) *ScopedLoader {
	return &ScopedLoader{
		loader:        loader,
		defaultSource: strings.TrimSpace(defaultSource),
		allowedDir:    strings.TrimSpace(allowedDir),
		logger:        logger.With().Str("component", "catalog_scope").Logger(),
	}
}

// Load implements domain.CatalogLoader
func (s *ScopedLoader) Load(ctx context.Context, source string) []domain.CatalogItem {
	source = strings.TrimSpace(source)
	if source == "" {
		return s.loader.Load(ctx, s.defaultSource)
	}

	resolved, ok := s.resolve(source)
	if !ok {
		s.logger.Warn().Str("source", source).Msg("catalog source outside allowed directory, using configured catalog")
		return s.loader.Load(ctx, s.defaultSource)
	}
	return s.loader.Load(ctx, resolved)
}

// resolve maps source to a real path under the allowed directory. Relative
// sources are taken relative to it. Symlinks are followed before the check.
func (s *ScopedLoader) resolve(source string) (string, bool) {
	if s.allowedDir == "" {
		return "", false
	}

	dir, err := filepath.Abs(s.allowedDir)
	if err != nil {
		return "", false
	}
	if dir, err = filepath.EvalSymlinks(dir); err != nil {
		return "", false
	}

	path := source
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	path, err = filepath.EvalSymlinks(path)
	if err != nil {
		return "", false
	}

	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", false
	}
	return path, true
}
