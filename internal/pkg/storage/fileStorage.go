package storage

import (
	"bytes"
	"errors"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrKeyOutsideRoot rejects keys whose path escapes the storage root. The
// view and upload endpoints pass caller-controlled keys straight through, so
// the guard lives here, not in the handlers.
var ErrKeyOutsideRoot = errors.New("storage key escapes the storage root")

// Storage resolves keys the way the dashboard's workspace bucket does: a
// stable key is minted on upload and later exchanged for a viewable URL.
type Storage interface {
	Save(key string, data io.Reader) error
	SaveBytes(key string, data []byte) error
	Get(key string) (io.ReadCloser, error)
	GetBytes(key string) ([]byte, error)
	Delete(key string) error
	Exists(key string) bool
	MintKey(prefix, filename string) string
	ResolveURL(key string) string
}

type fileStorage struct {
	basePath string
	baseURL  string
}

func NewFileStorage(basePath, baseURL string) Storage {
	return &fileStorage{basePath: basePath, baseURL: strings.TrimRight(baseURL, "/")}
}

// resolve maps a key to its on-disk path, refusing anything that would land
// outside basePath.
func (s *fileStorage) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || clean == ".." ||
		filepath.IsAbs(clean) ||
		strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrKeyOutsideRoot
	}
	return filepath.Join(s.basePath, clean), nil
}

func (s *fileStorage) Save(key string, data io.Reader) error {
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(file, data)
	return err
}

func (s *fileStorage) SaveBytes(key string, data []byte) error {
	return s.Save(key, bytes.NewReader(data))
}

func (s *fileStorage) Get(key string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	return os.Open(fullPath)
}

func (s *fileStorage) GetBytes(key string) ([]byte, error) {
	reader, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

func (s *fileStorage) Delete(key string) error {
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}
	return os.Remove(fullPath)
}

func (s *fileStorage) Exists(key string) bool {
	fullPath, err := s.resolve(key)
	if err != nil {
		return false
	}
	_, err = os.Stat(fullPath)
	return !os.IsNotExist(err)
}

// MintKey builds a collision-free storage key, keeping the original
// extension so the format stays recognizable.
func (s *fileStorage) MintKey(prefix, filename string) string {
	ext := filepath.Ext(filename)
	return filepath.ToSlash(filepath.Join(prefix, uuid.New().String()+ext))
}

// ResolveURL exchanges a key for a URL the client can load directly.
func (s *fileStorage) ResolveURL(key string) string {
	return s.baseURL + "/view?key=" + url.QueryEscape(key)
}
