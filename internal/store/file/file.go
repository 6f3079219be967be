// Package file implements JSON-file persistence matching the layout the
// service has always used: admins.json and faqs.json hold ordered record
// arrays, feedback.txt and unanswered.txt are append-only text logs.
//
// Files are re-read on every call so out-of-band edits are picked up
// immediately; read failures degrade to empty results rather than failing
// the request.
package file

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// readJSON loads the record array at path into dst. A missing file is
// seeded with an empty array. A corrupt file leaves dst untouched.
func readJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return writeJSON(path, dst)
	}
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o700)
}
