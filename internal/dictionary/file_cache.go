package dictionary

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// FileCache stores one raw API response per word under rootDir.
type FileCache struct {
	rootDir string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

func (cache *FileCache) filePath(expression string) string {
	return filepath.Join(cache.rootDir, expression+".json")
}

// cache returns the stored contents for expression, calling f and storing
// its result on a miss. Failed fetches are not stored, and a fetched result
// that cannot be stored is still returned.
func (cache *FileCache) cache(expression string, f func() ([]byte, error)) ([]byte, error) {
	localFilePath := cache.filePath(expression)
	if _, err := os.Stat(localFilePath); err == nil {
		contents, err := cache.read(expression)
		if err != nil {
			return nil, fmt.Errorf("cache.read > %w", err)
		}
		return contents, nil
	}

	contents, err := f()
	if err != nil {
		return nil, err
	}

	if err := cache.store(localFilePath, contents); err != nil {
		slog.Default().Warn("Failed to cache the dictionary response",
			"expression", expression,
			"error", err,
		)
	}
	return contents, nil
}

func (cache *FileCache) store(localFilePath string, contents []byte) error {
	if err := os.MkdirAll(cache.rootDir, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", cache.rootDir, err)
	}
	file, err := os.Create(localFilePath)
	if err != nil {
		return fmt.Errorf("os.Create > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	if _, err := file.Write(contents); err != nil {
		return fmt.Errorf("file.Write > %w", err)
	}
	return nil
}

func (cache *FileCache) read(expression string) ([]byte, error) {
	file, err := os.Open(cache.filePath(expression))
	if err != nil {
		return nil, fmt.Errorf("os.Open > %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll > %w", err)
	}
	return contents, nil
}
