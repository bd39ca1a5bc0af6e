package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"frame-gallery/pkg/models"
)

// ManifestFileName is the object name the frame extractor writes next to the frames
const ManifestFileName = "manifest.json"

type objectIterator interface {
	Next() (*storage.ObjectAttrs, error)
}

// CatalogService lists the movies whose manifests live in a bucket
type CatalogService struct {
	bucket  string
	logger  *slog.Logger
	objects func(ctx context.Context) (objectIterator, func() error, error)
}

// NewCatalogService creates a catalog over the given bucket
func NewCatalogService(bucket string, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &CatalogService{bucket: bucket, logger: logger}
	s.objects = s.listBucket
	return s
}

func (s *CatalogService) listBucket(ctx context.Context) (objectIterator, func() error, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return client.Bucket(s.bucket).Objects(ctx, nil), client.Close, nil
}

// ListMovies returns one entry per <movie>/manifest.json object, naturally sorted by name
func (s *CatalogService) ListMovies(ctx context.Context) ([]models.Movie, error) {
	s.logger.Debug("Listing manifests", "bucket", s.bucket)

	it, closeFn, err := s.objects(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := closeFn(); err != nil {
			s.logger.Warn("Error closing storage client", "error", err)
		}
	}()

	var movies []models.Movie
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating objects: %w", err)
		}

		dir, file := path.Split(attrs.Name)
		if file != ManifestFileName || dir == "" {
			continue
		}
		name := strings.TrimSuffix(dir, "/")
		movies = append(movies, models.Movie{
			Name:         name,
			ManifestPath: attrs.Name,
			URL:          fmt.Sprintf("gs://%s/%s", s.bucket, attrs.Name),
		})
	}

	sort.Slice(movies, func(i, j int) bool {
		return naturalLess(movies[i].Name, movies[j].Name)
	})
	return movies, nil
}

// naturalLess orders digit runs by numeric value, so "part2" sorts before "part10"
func naturalLess(a, b string) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if isDigit(a[i]) && isDigit(b[j]) {
			si := i
			for i < len(a) && isDigit(a[i]) {
				i++
			}
			sj := j
			for j < len(b) && isDigit(b[j]) {
				j++
			}
			na := strings.TrimLeft(a[si:i], "0")
			nb := strings.TrimLeft(b[sj:j], "0")
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			if na != nb {
				return na < nb
			}
			continue
		}
		if a[i] != b[j] {
			return a[i] < b[j]
		}
		i++
		j++
	}
	return len(a)-i < len(b)-j
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
