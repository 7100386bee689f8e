// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the
// key name and the file contents (trimmed) are the value.
//
// Supported key files: anthropic-api-key, openai-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

// keyFiles maps an analysis provider to its key file name.
var keyFiles = map[types.LLMProvider]string{
	types.ProviderClaude: "anthropic-api-key",
	types.ProviderOpenAI: "openai-api-key",
}

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory or missing files are not errors; Load
// returns an empty map. Unreadable files produce a warning on stderr but
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

// Apply fills cfg.APIKey from the loaded secrets when the config and
// environment left it empty. A key already present in the config wins,
// so explicit configuration overrides the key file.
func Apply(cfg *types.LLMConfig, secrets map[string]string) {
	if cfg.APIKey != "" {
		return
	}
	if file, ok := keyFiles[cfg.Provider]; ok {
		cfg.APIKey = secrets[file]
	}
}
