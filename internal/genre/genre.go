// Package genre maps free-text category strings from the catalog onto the
// reading list's own genre taxonomy.
package genre

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sehyun-dev/shelfsync/internal/similarity"
)

// Rule maps a set of keywords to one destination genre value. A rule matches
// when any keyword appears as a substring of the normalized input.
type Rule struct {
	Keywords []string
	Value    string
}

// Classifier is an optional fallback consulted only when no rule matches.
// It must answer with one of the offered choices.
type Classifier interface {
	Classify(ctx context.Context, title, rawGenre string, choices []string) (string, error)
}

// Mapper applies rules in configured order; the first match wins and there
// is no default value.
type Mapper struct {
	rules      []Rule
	classifier Classifier
}

func NewMapper(rules []Rule) *Mapper {
	return &Mapper{rules: rules}
}

// SetClassifier installs a fallback classifier. Without one, an input no
// rule matches simply maps to nothing.
func (m *Mapper) SetClassifier(c Classifier) {
	m.classifier = c
}

// Map resolves raw to a destination genre value. rawTitle is a secondary
// keyword source: category pages often omit the genre word that the book
// title itself carries.
func (m *Mapper) Map(ctx context.Context, raw, rawTitle string) (string, bool) {
	if v, ok := m.match(raw); ok {
		return v, true
	}
	if v, ok := m.match(rawTitle); ok {
		return v, true
	}
	if m.classifier == nil || (raw == "" && rawTitle == "") {
		return "", false
	}

	choices := m.values()
	if len(choices) == 0 {
		return "", false
	}
	v, err := m.classifier.Classify(ctx, rawTitle, raw, choices)
	if err != nil {
		slog.Warn("genre classifier failed", "err", err)
		return "", false
	}
	for _, c := range choices {
		if c == v {
			return v, true
		}
	}
	slog.Warn("genre classifier answered outside configured values", "answer", v)
	return "", false
}

func (m *Mapper) match(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	norm := similarity.Normalize(raw)
	for _, rule := range m.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(norm, kw) {
				return rule.Value, true
			}
		}
	}
	return "", false
}

func (m *Mapper) values() []string {
	seen := make(map[string]struct{}, len(m.rules))
	var out []string
	for _, r := range m.rules {
		if _, ok := seen[r.Value]; ok {
			continue
		}
		seen[r.Value] = struct{}{}
		out = append(out, r.Value)
	}
	return out
}

// ParseJSON parses the GENRE_MAP_JSON object, keeping rules in the order the
// keys appear in the document. encoding/json's map type would shuffle them,
// so the object is walked token by token instead.
func ParseJSON(raw string) ([]Rule, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to parse genre map: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("genre map must be a JSON object")
	}

	var rules []Rule
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to parse genre map: %w", err)
		}
		key, _ := keyTok.(string)

		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("genre map value for %q must be a string: %w", key, err)
		}

		if r, ok := newRule(key, value); ok {
			rules = append(rules, r)
		}
	}
	return rules, nil
}

// yamlRule is one entry of the optional --genre-map file, a sequence of
// documents like {keywords: "로맨스,romance", genre: "Romance"}.
type yamlRule struct {
	Keywords string `yaml:"keywords"`
	Genre    string `yaml:"genre"`
}

// LoadYAMLFile reads rules from a YAML file. A sequence preserves order on
// its own, so no token games are needed here.
func LoadYAMLFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read genre map file: %w", err)
	}

	var entries []yamlRule
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse genre map file: %w", err)
	}

	var rules []Rule
	for _, e := range entries {
		if r, ok := newRule(e.Keywords, e.Genre); ok {
			rules = append(rules, r)
		}
	}
	return rules, nil
}

func newRule(keywords, value string) (Rule, bool) {
	var kws []string
	for _, kw := range strings.Split(keywords, ",") {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			kws = append(kws, kw)
		}
	}
	if len(kws) == 0 || value == "" {
		return Rule{}, false
	}
	return Rule{Keywords: kws, Value: value}, true
}
