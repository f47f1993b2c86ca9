// Package formidcorr implements the FormID Correlator (§4.8): it finds
// FormIDs in a parsed crash log's call stack, attributes each to the
// plugin that owns its load-order slot, and optionally resolves it against
// the FormID Index.
package formidcorr

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/classic-scan/classic/internal/model"
)

// reFormID matches an 8-hex-digit FormID either bracketed on its own
// (e.g. "[000ABCDE]") or next to a "FormID"/"Form Id" marker (§4.8
// "Extraction").
var reFormID = regexp.MustCompile(`(?i)\[([0-9A-Fa-f]{8})\]|form\s*id\D{0,4}([0-9A-Fa-f]{8})`)

const unknownPlugin = "[Unknown]"

// Resolver is the subset of *formid.Index the correlator needs, kept as an
// interface so tests can supply a fixture without a SQLite file.
type Resolver interface {
	Get(formidHex, plugin string) (string, bool)
}

// Correlate extracts and attributes FormIDs in parsed's call stack segment,
// optionally resolving each against idx, and emits one grouped finding
// (§4.8, mirroring the Rule Engine's named-record grouping convention).
func Correlate(fs *model.Findings, sourceLog string, parsed *model.ParsedCrashLog, idx Resolver, showFormIDValues bool) {
	type occurrence struct {
		plugin string
		count  int
	}
	counts := make(map[string]*occurrence) // formid -> occurrence

	for _, line := range parsed.Segments.Get(model.SegmentCallStack) {
		for _, formidHex := range extractFormIDs(line) {
			key := strings.ToUpper(formidHex)
			if counts[key] == nil {
				plugin := attributePlugin(parsed.LoadedPlugins, key)
				counts[key] = &occurrence{plugin: plugin}
			}
			counts[key].count++
		}
	}
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		occ := counts[key]
		line := fmt.Sprintf("%s | %s | %d", key, occ.plugin, occ.count)
		if idx != nil && showFormIDValues && occ.plugin != unknownPlugin {
			if entry, ok := idx.Get(key, occ.plugin); ok {
				line += " | " + entry
			}
		}
		fmt.Fprintln(&b, line)
	}

	fs.Add(model.Finding{
		SourceLog:       sourceLog,
		IssueID:         "formid_correlator:" + sourceLog,
		Title:           "FormID Suspects",
		Message:         strings.TrimRight(b.String(), "\n"),
		Severity:        model.Info,
		SourceComponent: "formid_correlator",
	})
}

// extractFormIDs returns every 8-hex-digit FormID in line whose first byte
// is not the FF reserved sentinel (§4.8).
func extractFormIDs(line string) []string {
	matches := reFormID.FindAllStringSubmatch(line, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		hex := m[1]
		if hex == "" {
			hex = m[2]
		}
		if strings.EqualFold(hex[:2], "FF") {
			continue
		}
		out = append(out, hex)
	}
	return out
}

// attributePlugin maps a FormID's first byte to the plugin occupying that
// load-order slot, or "[Unknown]" if no plugin claims it (§4.8).
func attributePlugin(plugins *model.LoadedPlugins, formidHex string) string {
	prefix := strings.ToUpper(formidHex[:2])
	if name, ok := plugins.ByIndexPrefix(prefix); ok {
		return name
	}
	return unknownPlugin
}
