// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-tracker/pkg/types"
)

const exportDir = "papers"

// ExportDay writes the day's papers to dataDir/papers/<day>.json and
// returns the file path. The file is the durable per-day record external
// consumers read; it is regenerated in full on every call.
func (s *Store) ExportDay(ctx context.Context, day string) (string, error) {
	papers, err := s.LoadDay(ctx, day)
	if err != nil {
		return "", err
	}

	daily := types.DailyPapers{
		Date:       day,
		Papers:     papers,
		ExportedAt: time.Now().UTC(),
	}

	dir := filepath.Join(s.dataDir, exportDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	data, err := json.MarshalIndent(daily, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling daily export: %w", err)
	}

	path := filepath.Join(dir, day+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing daily export: %w", err)
	}
	return path, nil
}

// ExportYAML writes the full corpus to dataDir/corpus.yaml for inspection
// and external tooling.
func (s *Store) ExportYAML(ctx context.Context) (string, error) {
	papers, err := s.List(ctx)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(papers)
	if err != nil {
		return "", fmt.Errorf("marshaling corpus YAML: %w", err)
	}

	path := filepath.Join(s.dataDir, "corpus.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing corpus YAML: %w", err)
	}
	return path, nil
}
