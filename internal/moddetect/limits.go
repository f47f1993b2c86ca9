package moddetect

import (
	"fmt"
	"strings"

	"github.com/classic-scan/classic/internal/model"
)

const (
	fullPluginHardLimit = 254
	fullPluginWarnBand  = 20 // warn once within this many slots of the hard limit
	lightPluginLimit    = 4096
	totalPluginWarnAt   = 500

	fallout4Edition = "Fallout4"
)

// lightIndexSentinel marks an ESL-flagged plugin's load-order index.
const lightIndexSentinel = "FE"

// PluginLimits emits findings when a Fallout 4 load order approaches or
// exceeds the engine's full/light/total plugin ceilings (§4.7
// "Plugin limits (Fallout 4 edition)"). It is a no-op for any other
// edition.
func PluginLimits(fs *model.Findings, sourceLog, edition string, plugins *model.LoadedPlugins) {
	if edition != fallout4Edition {
		return
	}

	fullCount, lightCount := 0, 0
	for _, name := range plugins.Names() {
		idx, _ := plugins.Index(name)
		if isLightIndex(idx) || hasESLExtension(name) {
			lightCount++
		} else {
			fullCount++
		}
	}
	total := fullCount + lightCount

	switch {
	case fullCount > fullPluginHardLimit:
		emitLimit(fs, sourceLog, "full_plugin_limit", model.Critical,
			fmt.Sprintf("Full plugin count %d exceeds the %d hard limit.", fullCount, fullPluginHardLimit))
	case fullCount > fullPluginHardLimit-fullPluginWarnBand:
		emitLimit(fs, sourceLog, "full_plugin_limit", model.Warning,
			fmt.Sprintf("Full plugin count %d is approaching the %d hard limit.", fullCount, fullPluginHardLimit))
	}

	if lightCount > lightPluginLimit {
		emitLimit(fs, sourceLog, "light_plugin_limit", model.Critical,
			fmt.Sprintf("Light plugin count %d exceeds the %d hard limit.", lightCount, lightPluginLimit))
	}

	if total > totalPluginWarnAt {
		emitLimit(fs, sourceLog, "total_plugin_limit", model.Warning,
			fmt.Sprintf("Total plugin count %d exceeds %d.", total, totalPluginWarnAt))
	}
}

func hasESLExtension(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".esl")
}

// isLightIndex reports whether idx is a light plugin's load-order index.
// The Segment Parser stores the full captured index group, which for a
// light plugin is the two-digit "FE" sentinel followed by its light-slot
// suffix (e.g. "FE 000"), so only the leading two characters are checked.
func isLightIndex(idx string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(idx)), lightIndexSentinel)
}

func emitLimit(fs *model.Findings, sourceLog, kind string, severity model.Severity, message string) {
	fs.Add(model.Finding{
		SourceLog:       sourceLog,
		IssueID:         "plugin_limit:" + kind,
		Title:           "Plugin Load Order Limit",
		Message:         message,
		Severity:        severity,
		SourceComponent: "mod_detector",
	})
}
