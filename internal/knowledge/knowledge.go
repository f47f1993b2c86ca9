// Package knowledge is the thin, typed domain wrapper over the
// Configuration Store described in §4.2: it knows the catalog layout and
// hands every detector back concrete Go types instead of raw YAML trees.
//
// Order-sensitive catalogs (suspect programs, conflict rules, important-mod
// notes) are stored as YAML *lists*, not maps, specifically so catalog
// declaration order survives the YAML→Go trip — a Go map has no stable
// iteration order, and §4.6 requires "findings appear in the order rules
// are declared in the catalog".
package knowledge

import (
	"fmt"
	"strings"

	"github.com/classic-scan/classic/internal/config"
	"github.com/classic-scan/classic/internal/model"
)

// KnowledgeBase is the public surface enumerated in §4.2, scoped to one
// game edition's catalogs plus the shared Main catalog.
type KnowledgeBase struct {
	store   *config.Store
	edition string
}

// New returns a KnowledgeBase reading the Main catalog and the Game catalog
// for edition (e.g. "Fallout4", "Skyrim").
func New(store *config.Store, edition string) *KnowledgeBase {
	return &KnowledgeBase{store: store, edition: edition}
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asList(v any) []any {
	l, _ := v.([]any)
	return l
}

func fieldString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func fieldInt(m map[string]any, key string) int {
	switch n := m[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func fieldStringList(m map[string]any, key string) []string {
	raw, _ := m[key].([]any)
	out := make([]string, 0, len(raw))
	for _, it := range raw {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// SuspectsMainError returns the ordered suspects_main_error() list (§4.2).
func (kb *KnowledgeBase) SuspectsMainError() []model.MainErrorSuspect {
	raw, _ := config.Get[[]any](kb.store, kb.store.GameRef(kb.edition), keySuspectsMainError)
	out := make([]model.MainErrorSuspect, 0, len(raw))
	for _, item := range raw {
		m := asMap(item)
		if m == nil {
			continue
		}
		key := fieldString(m, "key")
		sev, name := model.ParseSeverityAndName(key)
		out = append(out, model.MainErrorSuspect{
			SeverityAndName: key,
			Severity:        sev,
			DisplayName:     name,
			Needle:          fieldString(m, "needle"),
		})
	}
	return out
}

// SuspectsCallStack returns the ordered suspects_call_stack() list (§4.2).
func (kb *KnowledgeBase) SuspectsCallStack() []model.SuspectSignalProgram {
	raw, _ := config.Get[[]any](kb.store, kb.store.GameRef(kb.edition), keySuspectsCallStack)
	out := make([]model.SuspectSignalProgram, 0, len(raw))
	for _, item := range raw {
		m := asMap(item)
		if m == nil {
			continue
		}
		key := fieldString(m, "key")
		sev, name := model.ParseSeverityAndName(key)
		rawSignals := fieldStringList(m, "signals")
		signals := make([]model.Signal, 0, len(rawSignals))
		for _, rs := range rawSignals {
			signals = append(signals, model.ParseSignal(rs))
		}
		out = append(out, model.SuspectSignalProgram{
			SeverityAndName: key,
			Severity:        sev,
			DisplayName:     name,
			Signals:         signals,
		})
	}
	return out
}

// ModsSingle returns mods_single(): a map from plugin-name fingerprint to
// its diagnostic note (§4.2). Order is irrelevant here — callers key off the
// loaded plugin list, not catalog order.
func (kb *KnowledgeBase) ModsSingle() map[string]model.SingleModNote {
	raw, _ := config.Get[map[string]any](kb.store, kb.store.GameRef(kb.edition), keyModsSingle)
	out := make(map[string]model.SingleModNote, len(raw))
	for fingerprint, v := range raw {
		m := asMap(v)
		if m == nil {
			continue
		}
		out[fingerprint] = model.SingleModNote{
			Fingerprint:    fingerprint,
			Title:          fieldString(m, "title"),
			Message:        fieldString(m, "message"),
			Recommendation: fieldString(m, "recommendation"),
			Severity:       fieldInt(m, "severity"),
		}
	}
	return out
}

// ModsConflict returns mods_conflict() (§4.2).
func (kb *KnowledgeBase) ModsConflict() []model.ConflictRule {
	raw := asList(mustGet(kb, keyModsConflict))
	out := make([]model.ConflictRule, 0, len(raw))
	for _, item := range raw {
		m := asMap(item)
		if m == nil {
			continue
		}
		out = append(out, model.ConflictRule{
			PluginA:        fieldString(m, "plugin_a"),
			PluginB:        fieldString(m, "plugin_b"),
			Title:          fieldString(m, "title"),
			Message:        fieldString(m, "message"),
			Recommendation: fieldString(m, "recommendation"),
			Severity:       fieldInt(m, "severity"),
		})
	}
	return out
}

// ModsImportantCore and ModsImportantFOLON return the per-edition or
// per-total-conversion important-plugin notes (§4.2, §4.7).
func (kb *KnowledgeBase) ModsImportantCore() []model.ImportantModNote {
	return kb.importantNotes(keyModsImportantCore)
}

func (kb *KnowledgeBase) ModsImportantFOLON() []model.ImportantModNote {
	return kb.importantNotes(keyModsImportantFOLON)
}

func (kb *KnowledgeBase) importantNotes(key string) []model.ImportantModNote {
	raw := asList(mustGet(kb, key))
	out := make([]model.ImportantModNote, 0, len(raw))
	for _, item := range raw {
		m := asMap(item)
		if m == nil {
			continue
		}
		out = append(out, model.ImportantModNote{
			Plugin:         fieldString(m, "plugin"),
			Title:          fieldString(m, "title"),
			Message:        fieldString(m, "message"),
			Recommendation: fieldString(m, "recommendation"),
			Severity:       fieldInt(m, "severity"),
			GPURival:       strings.ToLower(fieldString(m, "gpu_rival")),
		})
	}
	return out
}

// RecordsOfInterest and RecordsIgnored back the named-record pass (§4.6).
func (kb *KnowledgeBase) RecordsOfInterest() []string {
	v, _ := config.Get[[]string](kb.store, kb.store.GameRef(kb.edition), keyRecordsOfInterest)
	return v
}

func (kb *KnowledgeBase) RecordsIgnored() []string {
	v, _ := config.Get[[]string](kb.store, kb.store.GameRef(kb.edition), keyRecordsIgnored)
	return v
}

// PluginsIgnored returns plugin names to skip during call-stack matching
// for this game edition (§4.2).
func (kb *KnowledgeBase) PluginsIgnored() []string {
	v, _ := config.Get[[]string](kb.store, kb.store.GameRef(kb.edition), keyPluginsIgnoredFmt)
	return v
}

// CrashgenRecommendation is one entry from crashgen_recommendations().
type CrashgenRecommendation struct {
	Key      string // "Section.Key"
	Expected any
	Reason   string
}

// CrashgenRecommendations returns the recommended TOML values for the named
// crashgen config kind ("Buffout4", "CrashLoggerSSE", "EngineFixes").
func (kb *KnowledgeBase) CrashgenRecommendations(configKind string) []CrashgenRecommendation {
	key := fmt.Sprintf(keyCrashgenRecommendFmt, configKind)
	raw := asList(mustGet(kb, key))
	out := make([]CrashgenRecommendation, 0, len(raw))
	for _, item := range raw {
		m := asMap(item)
		if m == nil {
			continue
		}
		out = append(out, CrashgenRecommendation{
			Key:      fieldString(m, "key"),
			Expected: m["expected"],
			Reason:   fieldString(m, "reason"),
		})
	}
	return out
}

// ExcludeLogRecords returns the Main catalog's exclude_log_records list used
// by the Log File Source's reformat pass (§4.4).
func (kb *KnowledgeBase) ExcludeLogRecords() []string {
	v, _ := config.Get[[]string](kb.store, kb.store.MainRef(), keyExcludeLogRecords)
	return v
}

// CatchLogErrors, ExcludeLogErrors, ExcludeLogFiles back the Log-Error Scan
// (§4.12).
func (kb *KnowledgeBase) CatchLogErrors() []string {
	v, _ := config.Get[[]string](kb.store, kb.store.MainRef(), keyCatchLogErrors)
	return v
}

func (kb *KnowledgeBase) ExcludeLogErrors() []string {
	v, _ := config.Get[[]string](kb.store, kb.store.MainRef(), keyExcludeLogErrors)
	return v
}

func (kb *KnowledgeBase) ExcludeLogFiles() []string {
	v, _ := config.Get[[]string](kb.store, kb.store.MainRef(), keyExcludeLogFiles)
	return v
}

// XSEHashedScripts returns the known script-extender filenames flagged as
// "XSE script copy" by the loose-file mod scan (§4.11).
func (kb *KnowledgeBase) XSEHashedScripts() []string {
	v, _ := config.Get[[]string](kb.store, kb.store.MainRef(), keyXSEHashedScripts)
	return v
}

// XSEAcronym returns the configured script-extender acronym for this
// edition ("F4SE", "SKSE"), used by the Segment Parser to find the
// "<XSE> PLUGINS:" header (§4.5).
func (kb *KnowledgeBase) XSEAcronym() string {
	v, ok := config.Get[string](kb.store, kb.store.GameRef(kb.edition), keyXSEAcronym)
	if !ok || v == "" {
		return "F4SE"
	}
	return v
}

// mustGet is a small helper for the list-shaped catalogs above, which all
// read from the Game document.
func mustGet(kb *KnowledgeBase, key string) any {
	v, _ := config.Get[[]any](kb.store, kb.store.GameRef(kb.edition), key)
	return v
}
