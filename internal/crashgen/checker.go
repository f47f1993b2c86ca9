// Package crashgen implements the Crashgen Settings Checker (§4.13): it
// diffs a crash-logger TOML file's actual values against the Knowledge
// Base's recommended values.
package crashgen

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/classic-scan/classic/internal/model"
)

// Recommendation mirrors knowledge.CrashgenRecommendation without importing
// that package; internal/pipeline converts between the two.
type Recommendation struct {
	Key      string // "Section.Key"
	Expected any
	Reason   string
}

// Check decodes tomlPath and compares every recommendation against the
// actual value, appending one Info finding per mismatch; a key absent from
// the file counts as a mismatch and is reported as "<missing>". A file that
// is missing or cannot be decoded is not an error: it yields a single
// informational "not found" finding and Check returns nil.
func Check(fs *model.Findings, sourceLog, tomlPath, configName string, recommendations []Recommendation) error {
	var doc map[string]map[string]any
	if _, err := toml.DecodeFile(tomlPath, &doc); err != nil {
		fs.Add(model.Finding{
			SourceLog:       sourceLog,
			IssueID:         "crashgen:" + configName + ":missing",
			Title:           configName + ".toml Not Found",
			Message:         fmt.Sprintf("%s.toml not found — crashgen recommendations skipped", configName),
			Severity:        model.Info,
			SourceComponent: "crashgen_checker",
		})
		return nil
	}

	flat := flatten(doc)
	for _, rec := range recommendations {
		actual, present := flat[rec.Key]
		if !present || !valuesEqual(actual, rec.Expected) {
			fs.Add(model.Finding{
				SourceLog: sourceLog,
				IssueID:   "crashgen:" + configName + ":" + rec.Key,
				Title:     rec.Key + " Misconfigured",
				Message: fmt.Sprintf("%s should be %v (%s): found %v",
					rec.Key, rec.Expected, rec.Reason, displayActual(actual, present)),
				Severity:        model.Info,
				SourceComponent: "crashgen_checker",
			})
		}
	}
	return nil
}

func displayActual(actual any, present bool) any {
	if !present {
		return "<missing>"
	}
	return actual
}

// flatten turns the decoded [Section] tables into a "Section.Key" -> value
// map (§4.13).
func flatten(doc map[string]map[string]any) map[string]any {
	out := make(map[string]any)
	for section, kv := range doc {
		for key, val := range kv {
			out[section+"."+key] = val
		}
	}
	return out
}

// valuesEqual compares a TOML-decoded actual value against a catalog
// expected value, normalizing numeric types to float64 first (§4.13).
func valuesEqual(actual, expected any) bool {
	return normalizeNumeric(actual) == normalizeNumeric(expected)
}

func normalizeNumeric(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	default:
		return v
	}
}
