package wallet

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	backupVersion = 1
	backupKDF     = "argon2id"
	backupCipher  = "xchacha20-poly1305"
	saltSize      = 32
)

// backupAD binds the ciphertext to the backup format.
var backupAD = []byte("keeta-cli wallet backup v1")

// ErrDecrypt is returned when a backup cannot be opened with the given password.
var ErrDecrypt = errors.New("wrong password or corrupted backup")

// BackupParams holds Argon2id parameters.
type BackupParams struct {
	Memory      uint32 // in KiB
	Iterations  uint32
	Parallelism uint8
}

// DefaultBackupParams returns recommended Argon2id parameters.
func DefaultBackupParams() BackupParams {
	return BackupParams{
		Memory:      64 * 1024, // 64 MB
		Iterations:  3,
		Parallelism: 4,
	}
}

func (p BackupParams) validate() error {
	switch {
	case p.Iterations == 0 || p.Iterations > 64:
		return fmt.Errorf("argon2 iterations %d out of range", p.Iterations)
	case p.Parallelism == 0:
		return errors.New("argon2 parallelism must be positive")
	case p.Memory < 8*uint32(p.Parallelism) || p.Memory > 4*1024*1024:
		return fmt.Errorf("argon2 memory %d KiB out of range", p.Memory)
	}
	return nil
}

// backupFile is the on-disk format of an encrypted backup.
type backupFile struct {
	Version    int       `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
	KDF        string    `json:"kdf"`
	Memory     uint32    `json:"memory"`
	Iterations uint32    `json:"iterations"`
	Threads    uint8     `json:"parallelism"`
	Salt       []byte    `json:"salt"`
	Cipher     string    `json:"cipher"`
	Nonce      []byte    `json:"nonce"`
	Ciphertext []byte    `json:"ciphertext"`
}

func backupKey(password, salt []byte, p BackupParams) []byte {
	return argon2.IDKey(password, salt, p.Iterations, p.Memory, p.Parallelism, chacha20poly1305.KeySize)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// EncryptRecord seals a record under a password.
func EncryptRecord(rec *Record, password []byte, params BackupParams) ([]byte, error) {
	if _, err := rec.Source(); err != nil {
		return nil, err
	}
	if err := params.validate(); err != nil {
		return nil, err
	}
	plaintext, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal wallet: %w", err)
	}
	defer zero(plaintext)

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	key := backupKey(password, salt, params)
	defer zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	bf := backupFile{
		Version:    backupVersion,
		CreatedAt:  time.Now().UTC(),
		KDF:        backupKDF,
		Memory:     params.Memory,
		Iterations: params.Iterations,
		Threads:    params.Parallelism,
		Salt:       salt,
		Cipher:     backupCipher,
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, plaintext, backupAD),
	}
	return json.MarshalIndent(&bf, "", "  ")
}

// DecryptRecord opens a backup produced by EncryptRecord.
func DecryptRecord(data, password []byte) (*Record, error) {
	var bf backupFile
	if err := json.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("parse backup: %w", err)
	}
	if bf.Version != backupVersion {
		return nil, fmt.Errorf("unsupported backup version: %d", bf.Version)
	}
	if bf.KDF != backupKDF || bf.Cipher != backupCipher {
		return nil, fmt.Errorf("unsupported backup scheme %s/%s", bf.KDF, bf.Cipher)
	}
	params := BackupParams{Memory: bf.Memory, Iterations: bf.Iterations, Parallelism: bf.Threads}
	if err := params.validate(); err != nil {
		return nil, fmt.Errorf("parse backup: %w", err)
	}
	if len(bf.Salt) != saltSize || len(bf.Nonce) != chacha20poly1305.NonceSizeX {
		return nil, errors.New("parse backup: bad salt or nonce length")
	}

	key := backupKey(password, bf.Salt, params)
	defer zero(key)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	plaintext, err := aead.Open(nil, bf.Nonce, bf.Ciphertext, backupAD)
	if err != nil {
		return nil, ErrDecrypt
	}
	defer zero(plaintext)

	var rec Record
	if err := json.Unmarshal(plaintext, &rec); err != nil {
		return nil, fmt.Errorf("parse backup record: %w", err)
	}
	return &rec, nil
}

// WriteBackup encrypts rec to a new file at path. Existing files are not overwritten.
func WriteBackup(path string, rec *Record, password []byte, params BackupParams) error {
	data, err := EncryptRecord(rec, password, params)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return &IOError{Op: "create backup", Path: path, Err: err}
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return &IOError{Op: "write backup", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "close backup", Path: path, Err: err}
	}
	return nil
}

// ReadBackup decrypts the backup file at path.
func ReadBackup(path string, password []byte) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	return DecryptRecord(data, password)
}
