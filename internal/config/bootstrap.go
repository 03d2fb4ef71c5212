package config

import (
	"errors"
	"os"
	"path/filepath"
)

// FileName is the config file written by EnsureUserConfig.
const FileName = "contacts.yml"

// EnsureUserConfig writes Defaults to dir/contacts.yml unless a file is already there.
// It returns the path either way.
func EnsureUserConfig(dir string) (path string, created bool, err error) {
	userPath := filepath.Join(dir, FileName)

	_, err = os.Stat(userPath)
	if err == nil {
		return userPath, false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", false, err
	}

	if err := SaveAtomic(userPath, Defaults()); err != nil {
		return "", false, err
	}
	return userPath, true, nil
}
