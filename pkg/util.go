package pkg

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"unsafe"
)

// BytesToString converts bytes slice to a string without extra allocation
func BytesToString(buf []byte) string {
	return unsafe.String(unsafe.SliceData(buf), len(buf))
}

// GenerateRandomString returns a URL-safe random string of exactly n characters.
func GenerateRandomString(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("random string length must be positive")
	}
	b := make([]byte, base64.RawURLEncoding.DecodedLen(n)+1)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b)[:n], nil
}

// PathExists reports whether path exists and is a directory (isDir) or a
// regular file (!isDir). A path of the other kind is an error.
func PathExists(path string, isDir bool) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	switch {
	case isDir && !stat.IsDir():
		return false, fmt.Errorf("%s is not a directory", path)
	case !isDir && stat.IsDir():
		return false, fmt.Errorf("%s is a directory", path)
	}
	return true, nil
}
