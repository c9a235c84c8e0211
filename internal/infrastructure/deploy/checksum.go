package deploy

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/doeshing/axiom-install/internal/domain"
)

// verifyChecksums checks every file listed in the payload's SHA256SUMS.
// A payload without the manifest is accepted as is and reported with false.
func verifyChecksums(payload domain.Payload) (bool, error) {
	raw, err := os.ReadFile(payload.ChecksumPath())
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", domain.ChecksumFile, err)
	}

	entries, err := parseChecksums(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrPayloadCorrupt, err)
	}
	for rel, want := range entries {
		got, err := fileDigest(filepath.Join(payload.SourceDir, filepath.FromSlash(rel)))
		if err != nil {
			return false, fmt.Errorf("%w: %s: %v", domain.ErrPayloadCorrupt, rel, err)
		}
		if got != want {
			return false, fmt.Errorf("%w: checksum mismatch for %s", domain.ErrPayloadCorrupt, rel)
		}
	}
	return true, nil
}

// parseChecksums reads sha256sum output: "<hex>  <path>" or "<hex> *<path>".
func parseChecksums(raw []byte) (map[string]string, error) {
	entries := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		sum, rel, ok := strings.Cut(text, " ")
		if !ok || len(sum) != sha256.Size*2 {
			return nil, fmt.Errorf("%s line %d is malformed", domain.ChecksumFile, line)
		}
		if _, err := hex.DecodeString(sum); err != nil {
			return nil, fmt.Errorf("%s line %d: %v", domain.ChecksumFile, line, err)
		}
		rel = strings.TrimPrefix(strings.TrimLeft(rel, " "), "*")
		rel = strings.TrimPrefix(rel, "./")
		if rel == "" || strings.HasPrefix(rel, "../") || filepath.IsAbs(rel) {
			return nil, fmt.Errorf("%s line %d has an invalid path", domain.ChecksumFile, line)
		}
		entries[rel] = strings.ToLower(sum)
	}
	return entries, scanner.Err()
}

func fileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
