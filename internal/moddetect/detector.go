// Package moddetect implements the Mod Detector (§4.7): plugin-level
// diagnostics over a log's loaded plugin list.
package moddetect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/classic-scan/classic/internal/model"
)

// londonWorldspacePlugin gates the core/FOLON important-plugin catalog
// selection (§4.7 "Important-plugin presence").
const londonWorldspacePlugin = "LondonWorldspace.esm"

// SelectImportantNotes picks mods_important_folon when the London
// Worldspace total-conversion plugin is loaded, mods_important_core
// otherwise.
func SelectImportantNotes(plugins *model.LoadedPlugins, core, folon []model.ImportantModNote) []model.ImportantModNote {
	if plugins.Has(londonWorldspacePlugin) {
		return folon
	}
	return core
}

// SinglePluginMatches emits findings for each loaded plugin that matches an
// entry in mods_single: an exact-key match, or a lower-severity "Potential"
// finding for a non-identical substring match in either direction (§4.7).
func SinglePluginMatches(fs *model.Findings, sourceLog string, plugins *model.LoadedPlugins, single map[string]model.SingleModNote) {
	fingerprints := make([]string, 0, len(single))
	for fp := range single {
		fingerprints = append(fingerprints, fp)
	}
	sort.Strings(fingerprints)

	for _, name := range plugins.Names() {
		lowerName := strings.ToLower(name)
		for _, fingerprint := range fingerprints {
			note := single[fingerprint]
			lowerFP := strings.ToLower(fingerprint)

			switch {
			case lowerFP == lowerName:
				emitSingleMatch(fs, sourceLog, name, note, false)
			case strings.Contains(lowerName, lowerFP) || strings.Contains(lowerFP, lowerName):
				emitSingleMatch(fs, sourceLog, name, note, true)
			}
		}
	}
}

func emitSingleMatch(fs *model.Findings, sourceLog, pluginName string, note model.SingleModNote, partial bool) {
	title := note.Title
	severity := model.SeverityFromLevel(note.Severity)
	if partial {
		title = "Potential " + title
		if severity > model.Info {
			severity--
		}
	}
	fs.Add(model.Finding{
		SourceLog:       sourceLog,
		IssueID:         fmt.Sprintf("mod_single:%s:%s:%v", pluginName, note.Fingerprint, partial),
		Title:           title,
		Message:         note.Message,
		Recommendation:  note.Recommendation,
		Severity:        severity,
		DisplaySeverity: fmt.Sprintf("%d", note.Severity),
		SourceComponent: "mod_detector",
	})
}

// PairConflicts emits one finding per mods_conflict entry whose two
// plugins are both present, by exact or substring match (§4.7).
func PairConflicts(fs *model.Findings, sourceLog string, plugins *model.LoadedPlugins, conflicts []model.ConflictRule) {
	for _, rule := range conflicts {
		if !pluginPresent(plugins, rule.PluginA) || !pluginPresent(plugins, rule.PluginB) {
			continue
		}
		fs.Add(model.Finding{
			SourceLog:       sourceLog,
			IssueID:         fmt.Sprintf("mod_conflict:%s:%s", rule.PluginA, rule.PluginB),
			Title:           rule.Title,
			Message:         rule.Message,
			Recommendation:  rule.Recommendation,
			Severity:        model.SeverityFromLevel(rule.Severity),
			DisplaySeverity: fmt.Sprintf("%d", rule.Severity),
			SourceComponent: "mod_detector",
		})
	}
}

// ImportantPluginPresence emits a missing-style Warning finding for each
// selected important-plugin note whose plugin is absent, unless the note's
// GPU-rival family matches gpuVendor (§4.7).
func ImportantPluginPresence(fs *model.Findings, sourceLog string, plugins *model.LoadedPlugins, notes []model.ImportantModNote, gpuVendor string) {
	for _, note := range notes {
		if pluginPresent(plugins, note.Plugin) {
			continue
		}
		if note.GPURival != "" && strings.EqualFold(note.GPURival, gpuVendor) {
			continue
		}
		fs.Add(model.Finding{
			SourceLog:       sourceLog,
			IssueID:         "mod_important_missing:" + note.Plugin,
			Title:           note.Title,
			Message:         note.Message,
			Recommendation:  note.Recommendation,
			Severity:        model.Warning,
			DisplaySeverity: fmt.Sprintf("%d", note.Severity),
			SourceComponent: "mod_detector",
		})
	}
}

// pluginPresent reports whether target matches a loaded plugin exactly or
// by substring in either direction (case-insensitive).
func pluginPresent(plugins *model.LoadedPlugins, target string) bool {
	if target == "" {
		return false
	}
	if plugins.Has(target) {
		return true
	}
	lowerTarget := strings.ToLower(target)
	for _, name := range plugins.Names() {
		lowerName := strings.ToLower(name)
		if strings.Contains(lowerName, lowerTarget) || strings.Contains(lowerTarget, lowerName) {
			return true
		}
	}
	return false
}

var gpuVendorMarkers = map[string]string{
	"nvidia": "nvidia",
	"geforce": "nvidia",
	"rtx":     "nvidia",
	"gtx":     "nvidia",
	"amd":     "amd",
	"radeon":  "amd",
}

// DetectGPUVendor scans the system specs segment for a known GPU vendor
// marker, returning "nvidia", "amd", or "" if none is found.
func DetectGPUVendor(systemSpecs []string) string {
	for _, line := range systemSpecs {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "gpu") {
			continue
		}
		for marker, vendor := range gpuVendorMarkers {
			if strings.Contains(lower, marker) {
				return vendor
			}
		}
	}
	return ""
}
