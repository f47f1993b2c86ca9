// Package crashlog implements the Segment Parser (§4.5): it turns a raw
// line sequence into the canonical ParsedCrashLog model.
package crashlog

import (
	"regexp"
	"strings"

	"github.com/classic-scan/classic/internal/model"
)

var (
	reGameVersionHeader = regexp.MustCompile(`(?i)^(Fallout 4|Skyrim)\b`)
	reGenericVerHeader  = regexp.MustCompile(`(?i)^.+\sv[0-9]+(\.[0-9A-Za-z]+)*\s*$`)

	// Anchored, case-insensitive-ish plugin line matcher (§4.5). The load
	// order group captures either a plain 2-8 hex digit index or a
	// "FE <sub-index>" light-plugin pair; version suffixes in parens are
	// discarded.
	rePluginLine = regexp.MustCompile(`(?i)^\s*(?:\[\s*([0-9A-Fa-f]{2,8}(?:\s+[0-9A-Fa-f]+)?)\s*\]\s+)?(\S.*?\.(?:esl|esp|esm))(?:\s+\([^)]*\))?\s*$`)
)

// headerPrefixes is ordered to line up 1:1 with model.SegmentKind's iota
// values: headerPrefixes[i] opens segment model.SegmentKind(i).
func headerPrefixes(xseAcronym string) [6]string {
	if xseAcronym == "" {
		xseAcronym = "F4SE"
	}
	return [6]string{
		"[Compatibility]",
		"SYSTEM SPECS:",
		"PROBABLE CALL STACK:",
		"MODULES:",
		xseAcronym + " PLUGINS:",
		"PLUGINS:",
	}
}

// minCompleteLines is the line-count threshold below which a log is flagged
// incomplete downstream (§4.5 edge cases).
const minCompleteLines = 20

// Parse converts lines into a ParsedCrashLog. Parse is deterministic: the
// same byte-identical input always yields a byte-identical result (§8
// "Parser determinism") because it performs one sequential pass with no
// nondeterministic iteration (e.g. no map-ordered traversal).
func Parse(sourcePath string, lines []string, xseAcronym string) *model.ParsedCrashLog {
	out := &model.ParsedCrashLog{
		SourcePath:    sourcePath,
		LoadedPlugins: model.NewLoadedPlugins(),
	}

	headers := headerPrefixes(xseAcronym)

	currentSegment := -1 // -1 = pre-segment (accumulated for header/main-error discovery only)
	searchFrom := 0
	var accum []string

	flush := func(kind model.SegmentKind) {
		if kind >= 0 {
			out.Segments.Set(kind, accum)
		}
		accum = nil
	}

	var preSegmentLines []string
	headerLinesSeen := 0

	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")

		matchedIdx := -1
		for i := searchFrom; i < len(headers); i++ {
			if strings.HasPrefix(trimmed, headers[i]) {
				matchedIdx = i
				break
			}
		}

		if matchedIdx >= 0 {
			flush(model.SegmentKind(currentSegment))
			currentSegment = matchedIdx
			searchFrom = matchedIdx + 1
			continue
		}

		if currentSegment == -1 {
			preSegmentLines = append(preSegmentLines, line)
			if out.GameVersion == "" || out.CrashgenNameAndVersion == "" {
				if headerLinesSeen < 10 {
					classifyHeaderLine(out, line)
					if strings.TrimSpace(line) != "" {
						headerLinesSeen++
					}
				}
			}
		}
		accum = append(accum, line)
	}
	flush(model.SegmentKind(currentSegment))

	out.MainError = findMainError(append(preSegmentLines, lines...))
	parsePlugins(out)

	out.Incomplete = len(lines) < minCompleteLines || len(out.Segments.Get(model.SegmentPlugins)) == 0

	return out
}

func classifyHeaderLine(out *model.ParsedCrashLog, line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}
	if out.GameVersion == "" && reGameVersionHeader.MatchString(trimmed) {
		out.GameVersion = trimmed
		return
	}
	if out.CrashgenNameAndVersion == "" && reGenericVerHeader.MatchString(trimmed) {
		out.CrashgenNameAndVersion = trimmed
	}
}

// findMainError returns the first line containing "EXCEPTION_", with
// embedded "|" expanded to line breaks, or "UNKNOWN" if no such line exists
// (§3, §4.5).
func findMainError(lines []string) string {
	for _, line := range lines {
		if strings.Contains(line, "EXCEPTION_") {
			return strings.ReplaceAll(line, "|", "\n")
		}
	}
	return "UNKNOWN"
}

// parsePlugins extracts (name, index) pairs from the plugins segment into
// out.LoadedPlugins (§4.5 "Plugin extraction").
func parsePlugins(out *model.ParsedCrashLog) {
	for _, line := range out.Segments.Get(model.SegmentPlugins) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := rePluginLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		index := strings.TrimSpace(m[1])
		name := strings.TrimSpace(m[2])
		if index == "" {
			index = "FF"
		}
		out.LoadedPlugins.Add(name, index)
	}
}
