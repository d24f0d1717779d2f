package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Klingon-tech/keeta-cli/internal/log"
)

// DefaultFileName is the keystore file name inside the data directory.
const DefaultFileName = "wallet.json"

// ErrNoWallet is returned by Load when no keystore file exists.
var ErrNoWallet = errors.New("no wallet found")

// ParseError reports a keystore file that exists but cannot be read as a record.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse wallet %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError reports a failed filesystem operation while saving.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s wallet %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// DefaultPath returns the keystore path inside a data directory.
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, DefaultFileName)
}

// Store reads and writes a single wallet record at a fixed path.
//
// The file is plaintext JSON and is not locked. Anyone who can read it
// controls the account. Use Backup for an encrypted copy.
type Store struct {
	path string
}

// NewStore returns a store for the keystore file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the keystore file path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the keystore file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the record. A missing file yields ErrNoWallet.
func (s *Store) Load() (*Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoWallet
	}
	if err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}
	log.Wallet.Debug().Str("path", s.path).Str("algo", string(rec.Algorithm())).Msg("Wallet loaded")
	return &rec, nil
}

// Save replaces the keystore file with rec. The new content is written to a
// temporary file in the same directory and renamed into place.
func (s *Store) Save(rec *Record) error {
	if _, err := rec.Source(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal wallet: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return &IOError{Op: "create dir for", Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return &IOError{Op: "create", Path: s.path, Err: err}
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err := tmp.Chmod(0600); err != nil {
		return &IOError{Op: "chmod", Path: tmpName, Err: err}
	}
	if _, err := tmp.Write(data); err != nil {
		return &IOError{Op: "write", Path: tmpName, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &IOError{Op: "sync", Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &IOError{Op: "close", Path: tmpName, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return &IOError{Op: "rename", Path: s.path, Err: err}
	}
	committed = true

	log.Wallet.Debug().Str("path", s.path).Msg("Wallet saved")
	return nil
}
