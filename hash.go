package monopng

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"os"
)

// hashFile returns the SHA-1 of file along with its contents.
func hashFile(file string) (string, []byte, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	h := sha1.New()
	var b bytes.Buffer

	if _, err := io.Copy(io.MultiWriter(h, &b), f); err != nil {
		return "", nil, err
	}

	return fmt.Sprintf("%X", h.Sum(nil)), b.Bytes(), nil
}
