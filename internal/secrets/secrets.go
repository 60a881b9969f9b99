// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key
// name and the file contents (trimmed) are the value.
//
// Supported key files: similarity-api-token.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SimilarityAPIToken is the key file name for the similarity service token.
const SimilarityAPIToken = "similarity-api-token"

// knownKeys lists the key files the client consumes. Unknown files are
// still loaded so new keys work with older builds, but they are flagged
// to catch misspellings like "similarity-api-key".
var knownKeys = map[string]bool{
	SimilarityAPIToken: true,
}

// Known reports whether name is a key file this client consumes.
func Known(name string) bool {
	return knownKeys[name]
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files and unrecognized key names produce a warning on stderr but
// do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		if !Known(name) {
			fmt.Fprintf(os.Stderr, "warning: unrecognized secret %s (expected one of: %s)\n", name, SimilarityAPIToken)
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}
