package backup

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// CompressedExt marks zstd-compressed backups
const CompressedExt = ".zst"

// maxDecodedSize caps how far a compressed backup may expand
var maxDecodedSize int64 = 64 << 20

// zstdMagic is the frame header every zstd stream starts with
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Encode serialises snap, optionally compressing and then encrypting it.
// An empty passphrase leaves the output unencrypted.
func Encode(snap *Snapshot, compress bool, passphrase string) ([]byte, error) {
	data, err := snap.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if compress {
		var buf bytes.Buffer
		enc, err := zstd.NewWriter(&buf)
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		if _, err := enc.Write(data); err != nil {
			enc.Close()
			return nil, fmt.Errorf("zstd write: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("zstd close: %w", err)
		}
		data = buf.Bytes()
	}

	if passphrase != "" {
		if data, err = encrypt(passphrase, data); err != nil {
			return nil, fmt.Errorf("failed to encrypt backup: %w", err)
		}
	}
	return data, nil
}

// Decode undoes Encode. Encryption and compression are detected from the
// content, so the file name does not matter. Every failure is reported as
// ErrInvalidSnapshot.
func Decode(data []byte, passphrase string) (*Snapshot, error) {
	if isEncrypted(data) {
		if passphrase == "" {
			return nil, fmt.Errorf("%w: backup is encrypted, a passphrase is required", ErrInvalidSnapshot)
		}
		plain, err := decrypt(passphrase, data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
		data = plain
	}

	if bytes.HasPrefix(data, zstdMagic) {
		zr, err := zstd.NewReader(bytes.NewReader(data), zstd.WithDecoderMaxMemory(uint64(maxDecodedSize)))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
		plain, err := io.ReadAll(io.LimitReader(zr, maxDecodedSize+1))
		zr.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
		if int64(len(plain)) > maxDecodedSize {
			return nil, fmt.Errorf("%w: expands beyond %d bytes", ErrInvalidSnapshot, maxDecodedSize)
		}
		data = plain
	}

	return Parse(data)
}

// WriteFile stores snap at path. Paths ending in .zst are compressed. The
// data goes to a temporary file first and is renamed into place, so an
// existing backup is never left half-written.
func WriteFile(path string, snap *Snapshot, passphrase string) error {
	data, err := Encode(snap, strings.HasSuffix(path, CompressedExt), passphrase)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	tmp := filepath.Join(dir, "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move backup into place: %w", err)
	}
	return nil
}

// ReadFile loads and validates the snapshot at path
func ReadFile(path, passphrase string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}
	return Decode(data, passphrase)
}
