// Package audio records practice sentences and reads recordings back so they
// can be attached to a feedback request.
package audio

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// FileRef points at a recording on the local filesystem.
type FileRef struct {
	Path string `json:"path"`
}

func (r FileRef) IsZero() bool {
	return r.Path == ""
}

// Info describes a recording.
type Info struct {
	URI  string `json:"uri"`
	Size int64  `json:"size"`
}

// FileReader returns the content of a recording.
type FileReader interface {
	Read(ref FileRef) ([]byte, error)
	ReadBase64(ref FileRef) (string, error)
}

var ErrEmptyRef = errors.New("audio file reference is empty")

// FileStore reads recordings from the local filesystem.
type FileStore struct{}

var _ FileReader = (*FileStore)(nil)

func NewFileStore() *FileStore {
	return &FileStore{}
}

func (s *FileStore) Read(ref FileRef) ([]byte, error) {
	if ref.IsZero() {
		return nil, ErrEmptyRef
	}
	data, err := os.ReadFile(ref.Path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile > %w", err)
	}
	return data, nil
}

func (s *FileStore) ReadBase64(ref FileRef) (string, error) {
	data, err := s.Read(ref)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// GetAudioInfo returns the location and size of a recording.
// A missing or unreadable file is logged and yields a zero Info.
func GetAudioInfo(ref FileRef) Info {
	if ref.IsZero() {
		slog.Default().Error("Failed to get audio info", "error", ErrEmptyRef)
		return Info{}
	}
	stat, err := os.Stat(ref.Path)
	if err != nil {
		slog.Default().Error("Failed to get audio info", "path", ref.Path, "error", err)
		return Info{}
	}
	if stat.IsDir() {
		slog.Default().Error("Failed to get audio info", "path", ref.Path, "error", "path is a directory")
		return Info{}
	}
	return Info{
		URI:  ref.Path,
		Size: stat.Size(),
	}
}
