// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze produces an AnalysisResult for each paper through a
// pluggable AI backend. The backend is a single-capability strategy
// selected by configuration at process start; the rest of the pipeline
// treats the analysis call as a black box that either yields a structured
// result or fails for that one paper.
package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/paper-tracker/internal/ingest"
	"github.com/pdiddy/paper-tracker/pkg/types"
)

// Backend performs one raw model call. Each provider (claude, openai,
// ollama) implements this interface; tests supply a mock.
type Backend interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// defaultScore stands in when the model omits or mangles the relevance
// score field.
const defaultScore = 5

// backoffBase controls the base duration for exponential backoff between
// analysis retries. Tests override this to avoid real sleeps.
var backoffBase = time.Second

// Analyzer turns normalized papers into analysis results via a Backend.
type Analyzer struct {
	backend    Backend
	model      string
	maxRetries int

	categories   []string
	descriptions []string
}

// New builds an Analyzer for the configured domains. The domain list
// determines the output categories the model may assign; an invalid
// category in a response falls back to the first configured one.
func New(backend Backend, cfg types.LLMConfig, domains []types.DomainConfig) *Analyzer {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	a := &Analyzer{
		backend:    backend,
		model:      cfg.Model,
		maxRetries: maxRetries,
	}
	for _, d := range domains {
		a.categories = append(a.categories, d.OutputCategory)
		a.descriptions = append(a.descriptions,
			fmt.Sprintf("  - %s: %s (keywords: %s)", d.OutputCategory, d.Name, strings.Join(d.Keywords, ", ")))
	}
	return a
}

// Provider returns the backend name, Model the configured model id.
func (a *Analyzer) Provider() string { return a.backend.Name() }
func (a *Analyzer) Model() string    { return a.model }

// Analyze runs the analysis call for one paper, retrying transient
// failures with exponential backoff up to the configured limit. A paper
// whose analysis still fails after the retries is dropped from this run;
// it re-enters as a raw paper on the next scheduled run.
func (a *Analyzer) Analyze(ctx context.Context, fields ingest.NormalizedFields) (types.AnalysisResult, error) {
	prompt := a.buildPrompt(fields.Title, fields.Abstract)

	var lastErr error
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return types.AnalysisResult{}, ctx.Err()
			case <-time.After(backoff):
			}
		}

		response, err := a.backend.Complete(ctx, prompt)
		if err != nil {
			lastErr = err
			continue
		}

		result, err := a.parseResponse(response)
		if err != nil {
			lastErr = err
			continue
		}
		return result, nil
	}
	return types.AnalysisResult{}, fmt.Errorf("analysis failed after %d retries: %w", a.maxRetries, lastErr)
}

// buildPrompt renders the fixed analysis prompt. The model is asked for a
// bare JSON object; parseResponse tolerates fenced or decorated output
// anyway.
func (a *Analyzer) buildPrompt(title, abstract string) string {
	return fmt.Sprintf(`请分析以下学术论文，并以 JSON 格式返回分析结果。

论文标题: %s

论文摘要: %s

请返回以下格式的 JSON（不要包含 markdown 代码块标记）:
{
  "summary": "一句话中文总结（30字以内）",
  "key_contributions": ["贡献点1", "贡献点2", "贡献点3"],
  "methodology": "简要描述论文的方法论（50字以内）",
  "tags": ["标签1", "标签2", "标签3"],
  "category": "从以下类别中选择最相关的一个",
  "relevance_score": 1-10的整数,
  "relevance_reason": "评分原因（30字以内）"
}

可选类别:
%s

评分标准:
- 9-10: 核心相关，直接研究该领域的关键问题
- 7-8: 高度相关，涉及该领域的重要方面
- 5-6: 中等相关，有一定参考价值
- 3-4: 边缘相关，仅涉及部分概念
- 1-2: 基本无关

请直接返回 JSON，不要有任何额外文字。`, title, abstract, strings.Join(a.descriptions, "\n"))
}

// wireAnalysis mirrors the JSON shape the model returns. The score is a
// raw message because models alternate between numeric and quoted forms.
type wireAnalysis struct {
	Summary          string          `json:"summary"`
	KeyContributions []string        `json:"key_contributions"`
	Methodology      string          `json:"methodology"`
	Tags             []string        `json:"tags"`
	Category         string          `json:"category"`
	RelevanceScore   json.RawMessage `json:"relevance_score"`
	RelevanceReason  string          `json:"relevance_reason"`
}

// parseResponse extracts an AnalysisResult from raw model output. It
// strips markdown fences, salvages an embedded JSON object when the model
// added prose around it, validates the category against the configured
// buckets, and defaults a missing or unparseable score.
func (a *Analyzer) parseResponse(response string) (types.AnalysisResult, error) {
	cleaned := stripFences(strings.TrimSpace(response))

	var wire wireAnalysis
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		salvaged, ok := extractObject(cleaned)
		if !ok {
			return types.AnalysisResult{}, fmt.Errorf("unparseable analysis response: %w", err)
		}
		if err := json.Unmarshal([]byte(salvaged), &wire); err != nil {
			return types.AnalysisResult{}, fmt.Errorf("unparseable analysis response: %w", err)
		}
	}

	result := types.AnalysisResult{
		Summary:          wire.Summary,
		KeyContributions: wire.KeyContributions,
		Methodology:      wire.Methodology,
		Tags:             wire.Tags,
		Category:         a.validCategory(wire.Category),
		RelevanceScore:   parseScore(wire.RelevanceScore),
		RelevanceReason:  wire.RelevanceReason,
	}
	return result, nil
}

// validCategory returns the category if it is a configured output bucket,
// otherwise the first configured bucket ("other" when none are configured).
func (a *Analyzer) validCategory(category string) string {
	for _, c := range a.categories {
		if c == category {
			return category
		}
	}
	if len(a.categories) > 0 {
		return a.categories[0]
	}
	return "other"
}

func parseScore(raw json.RawMessage) int {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return defaultScore
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return defaultScore
}

// stripFences removes a surrounding markdown code fence, with or without
// a language marker.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// extractObject pulls the outermost {...} span from a string the model
// wrapped in prose.
func extractObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}
