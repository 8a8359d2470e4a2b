package dist

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/clearsign"
)

// ChecksumFile is the checksum index written next to the built artifacts, in
// the format sha256sum -c accepts.
const ChecksumFile = "SHA256SUMS"

// WriteChecksums writes the checksum index covering every .deb in dir and
// returns its path. When keyFile names an ASCII-armored PGP private key, a
// clearsigned copy is written alongside as SHA256SUMS.asc.
func WriteChecksums(dir, keyFile string) (string, error) {
	debs, err := filepath.Glob(filepath.Join(dir, "*.deb"))
	if err != nil {
		return "", fmt.Errorf("%w: scanning %s: %v", ErrIO, dir, err)
	}

	var b strings.Builder
	for _, f := range debs {
		sum, err := fileSHA256(f)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s  %s\n", sum, filepath.Base(f))
	}

	index := filepath.Join(dir, ChecksumFile)
	if err := os.WriteFile(index, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("%w: writing %s: %v", ErrIO, index, err)
	}

	if keyFile == "" {
		return index, nil
	}
	key, err := os.ReadFile(keyFile)
	if err != nil {
		return "", fmt.Errorf("%w: reading signing key %s: %v", ErrIO, keyFile, err)
	}
	signed, err := signBytes([]byte(b.String()), string(key))
	if err != nil {
		return "", fmt.Errorf("signing %s: %w", index, err)
	}
	if err := os.WriteFile(index+".asc", signed, 0644); err != nil {
		return "", fmt.Errorf("%w: writing %s: %v", ErrIO, index+".asc", err)
	}
	return index, nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %v", ErrIO, path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("%w: hashing %s: %v", ErrIO, path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// signBytes signs the provided input bytes using the provided ASCII-armored
// PGP private key. It returns the signed message in clearsigned ASCII-armored
// format.
func signBytes(input []byte, key string) ([]byte, error) {
	entities, err := openpgp.ReadArmoredKeyRing(strings.NewReader(key))
	if err != nil {
		return nil, err
	}
	var signer *openpgp.Entity
	for _, e := range entities {
		if e.PrivateKey != nil {
			signer = e
			break
		}
	}
	if signer == nil {
		return nil, fmt.Errorf("no private key found")
	}

	var out bytes.Buffer
	w, err := clearsign.Encode(&out, signer.PrivateKey, nil)
	if err != nil {
		return nil, err
	}
	w.Write(input)
	w.Close()
	return out.Bytes(), nil
}
