package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/oaworkspace/oaclient/internal/core/ports"
)

const fileFormatVersion = 1

// fileDocument is the on-disk layout. Exactly one of Values or Sealed is set.
type fileDocument struct {
	Version int               `json:"version"`
	Values  map[string]string `json:"values,omitempty"`
	Salt    []byte            `json:"salt,omitempty"`
	Nonce   []byte            `json:"nonce,omitempty"`
	Sealed  []byte            `json:"sealed,omitempty"`
}

// File keeps client state in a single JSON document on disk, optionally
// encrypted. The file is re-read on every operation so the CLI and a
// running console see each other's writes.
type File struct {
	mu     sync.Mutex
	path   string
	secret string
	sealer *sealer
	log    zerolog.Logger
}

var _ ports.KeyValueStore = (*File)(nil)

// OpenFile prepares a file store at path. The file itself is created on the
// first write. A non-empty secret enables encryption; an existing plain file
// is encrypted on its next write.
func OpenFile(path, secret string, log zerolog.Logger) (*File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	f := &File{path: path, secret: secret, log: log}

	// Surface a wrong secret at startup rather than on the first read.
	if _, err := f.read(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = value
	return f.write(values)
}

func (f *File) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	changed := false
	for _, k := range keys {
		if _, ok := values[k]; ok {
			delete(values, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return f.write(values)
}

func (f *File) Ping(context.Context) error {
	info, err := os.Stat(filepath.Dir(f.path))
	if err != nil {
		return fmt.Errorf("storage directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("storage directory %s is not a directory", filepath.Dir(f.path))
	}
	return nil
}

func (f *File) read() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read storage file: %w", err)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]string{}, nil
	}
	var doc fileDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return f.quarantine(err)
	}

	if doc.Sealed == nil {
		if doc.Values == nil {
			doc.Values = map[string]string{}
		}
		return doc.Values, nil
	}

	if f.secret == "" {
		return nil, fmt.Errorf("storage file %s is encrypted; a storage secret is required", f.path)
	}
	s, err := f.sealerFor(doc.Salt)
	if err != nil {
		return nil, err
	}
	plain, err := s.open(doc.Nonce, doc.Sealed)
	if err != nil {
		return nil, err
	}
	values := map[string]string{}
	if err := json.Unmarshal(plain, &values); err != nil {
		return f.quarantine(err)
	}
	return values, nil
}

// quarantine moves an unreadable file aside so the client can start over
// with empty storage.
func (f *File) quarantine(cause error) (map[string]string, error) {
	backup := f.path + ".corrupt"
	f.log.Warn().Err(cause).Str("path", f.path).Str("backup", backup).Msg("storage file unreadable, starting empty")
	if err := os.Rename(f.path, backup); err != nil {
		return nil, fmt.Errorf("move corrupt storage file: %w", err)
	}
	return map[string]string{}, nil
}

func (f *File) sealerFor(salt []byte) (*sealer, error) {
	if f.sealer != nil && (salt == nil || bytes.Equal(f.sealer.salt, salt)) {
		return f.sealer, nil
	}
	s, err := newSealer(f.secret, salt)
	if err != nil {
		return nil, err
	}
	f.sealer = s
	return s, nil
}

func (f *File) write(values map[string]string) error {
	doc := fileDocument{Version: fileFormatVersion}
	if f.secret == "" {
		doc.Values = values
	} else {
		plain, err := json.Marshal(values)
		if err != nil {
			return fmt.Errorf("encode storage values: %w", err)
		}
		s, err := f.sealerFor(nil)
		if err != nil {
			return err
		}
		nonce, sealed, err := s.seal(plain)
		if err != nil {
			return fmt.Errorf("encrypt storage values: %w", err)
		}
		doc.Salt, doc.Nonce, doc.Sealed = s.salt, nonce, sealed
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage file: %w", err)
	}
	return writeAtomic(f.path, b)
}

// writeAtomic replaces path with data via a temp file and rename, with
// owner-only permissions.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp storage file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp storage file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp storage file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp storage file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp storage file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace storage file: %w", err)
	}
	return nil
}
