package logsource

import (
	"os"
	"strings"
)

// Reformat drops any line containing (case-insensitively) one of
// excludeSubstrings, trims trailing blank lines, and writes the file back
// only if its content actually changed (§4.4). Reformat is idempotent:
// applying it twice in a row produces the same bytes as applying it once
// (§8 round-trip property), because the second pass finds nothing left to
// strip or trim.
func Reformat(path string, excludeSubstrings []string) (changed bool, err error) {
	original, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	lines := splitLines(strings.ReplaceAll(string(original), "\r\n", "\n"))
	filtered := filterExcluded(lines, excludeSubstrings)
	filtered = trimTrailingBlank(filtered)

	result := strings.Join(filtered, "\n")
	if result == string(original) {
		return false, nil
	}

	if err := os.WriteFile(path, []byte(result), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

func filterExcluded(lines []string, excludeSubstrings []string) []string {
	if len(excludeSubstrings) == 0 {
		return lines
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if containsAnyFold(line, excludeSubstrings) {
			continue
		}
		out = append(out, line)
	}
	return out
}

func containsAnyFold(line string, substrings []string) bool {
	lower := strings.ToLower(line)
	for _, s := range substrings {
		if s == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}

func trimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[:end]
}
