package dataset

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/YuminosukeSato/colorbayes/pkg/errors"
	"github.com/YuminosukeSato/colorbayes/pkg/log"
)

// ImageCache keeps decoded images keyed by path so leave-one-out runs and
// repeated evaluations over the same lists decode each file once.
//
// ImageCache is safe for concurrent use.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]Image
}

// NewImageCache creates an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{images: make(map[string]Image)}
}

// Load returns the cached image for path or decodes it from disk.
// BMP, TIFF, PNG, JPEG, GIF and WebP are supported.
func (c *ImageCache) Load(path string) (Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	decoded, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode image %s", path)
	}
	img := FromImage(decoded)
	if img.Width() == 0 || img.Height() == 0 {
		return nil, errors.NewValueError("ImageCache.Load", "image "+path+" has no pixels")
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()
	return img, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear drops all cached images.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]Image)
	c.mu.Unlock()
}

// Loader turns list files (one image path per line) into images.
type Loader struct {
	cache   *ImageCache
	logger  log.Logger
	baseDir string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithCache shares a cache between loaders.
func WithCache(c *ImageCache) LoaderOption {
	return func(l *Loader) {
		l.cache = c
	}
}

// WithLogger sets the logger used for skip warnings.
func WithLogger(logger log.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithBaseDir resolves relative image paths against dir instead of the
// working directory.
func WithBaseDir(dir string) LoaderOption {
	return func(l *Loader) {
		l.baseDir = dir
	}
}

// NewLoader creates a Loader with a private cache.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		cache:  NewImageCache(),
		logger: log.GetLoggerWithName("dataset"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ReadList returns the image paths listed in path. Surrounding whitespace and
// carriage returns are trimmed and blank lines skipped. A list that cannot be
// opened yields a DatasetError.
func (l *Loader) ReadList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewDatasetError("ReadList", path, err)
	}
	defer f.Close()

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if l.baseDir != "" && !filepath.IsAbs(line) {
			line = filepath.Join(l.baseDir, line)
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewDatasetError("ReadList", path, err)
	}
	return paths, nil
}

// LoadList decodes every image named in the list file. Entries that cannot
// be decoded are logged and skipped; skipped reports how many.
func (l *Loader) LoadList(path string) (images []Image, skipped int, err error) {
	paths, err := l.ReadList(path)
	if err != nil {
		return nil, 0, err
	}
	return l.loadPaths(path, paths)
}

func (l *Loader) loadPaths(listPath string, paths []string) ([]Image, int, error) {
	images := make([]Image, 0, len(paths))
	skipped := 0
	for _, p := range paths {
		img, err := l.cache.Load(p)
		if err != nil {
			skipped++
			l.logger.Warn("Image not found, skipping",
				log.ImagePathKey, p,
				log.DatasetPathKey, listPath,
				log.ErrorKey, errors.NewSkippedSampleWarning(p, err),
			)
			continue
		}
		images = append(images, img)
	}
	l.logger.Debug("Dataset list loaded",
		log.DatasetPathKey, listPath,
		log.SamplesKey, len(images),
		log.SkippedKey, skipped,
	)
	return images, skipped, nil
}

// LoadPair loads a positive and a negative list. Both list files are opened
// before any image is decoded, so an unreadable list fails the whole call.
func (l *Loader) LoadPair(positivePath, negativePath string) (positive, negative []Image, err error) {
	posPaths, err := l.ReadList(positivePath)
	if err != nil {
		return nil, nil, err
	}
	negPaths, err := l.ReadList(negativePath)
	if err != nil {
		return nil, nil, err
	}

	positive, _, err = l.loadPaths(positivePath, posPaths)
	if err != nil {
		return nil, nil, err
	}
	negative, _, err = l.loadPaths(negativePath, negPaths)
	if err != nil {
		return nil, nil, err
	}
	return positive, negative, nil
}

// Open decodes a single image outside any list, e.g. for prediction.
func (l *Loader) Open(path string) (Image, error) {
	return l.cache.Load(path)
}
