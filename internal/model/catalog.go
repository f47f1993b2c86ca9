package model

import (
	"strconv"
	"strings"
)

// ParseSeverityAndName splits a catalog rule key of the form
// "<severity> | <display-name>" (§3) into its raw severity digit and
// display name. Malformed keys (no "|", non-numeric severity) fall back to
// severity 1 with the whole key as the display name, rather than erroring —
// catalog parsing degrades per §7's Configuration-missing/Parse-error policy
// instead of aborting the batch.
func ParseSeverityAndName(key string) (severity int, name string) {
	parts := strings.SplitN(key, "|", 2)
	if len(parts) != 2 {
		return 1, strings.TrimSpace(key)
	}
	sev, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 1, strings.TrimSpace(key)
	}
	return sev, strings.TrimSpace(parts[1])
}

// PadTitle pads name on the right with '.' to width, matching the Rule Engine's
// rendering of suspect titles (§4.6 scenario 1: "Null Memory
// Access......................").
func PadTitle(name string, width int) string {
	if len(name) >= width {
		return name
	}
	return name + strings.Repeat(".", width-len(name))
}
