package model

// Severity is the coarse, comparable level used to decide whether a log was
// "solved" (§4.9) and whether plugin-count thresholds escalate (§4.7).
//
// Catalogs express severity as a digit 1-6 embedded in the rule key
// ("5 | Null Memory Access"); DisplaySeverity on Finding carries that raw
// digit through to the rendered report, while Severity buckets it into the
// three-value scale the rest of the pipeline reasons about.
type Severity int

const (
	Info Severity = iota
	Warning
	Critical
)

func (s Severity) String() string {
	switch s {
	case Critical:
		return "Critical"
	case Warning:
		return "Warning"
	default:
		return "Info"
	}
}

// SeverityFromLevel maps a catalog's raw 1-6 digit onto the three-value
// scale: 1-2 Info, 3-4 Warning, 5-6 Critical. Anything outside 1-6 is
// clamped to the nearest end.
func SeverityFromLevel(level int) Severity {
	switch {
	case level <= 2:
		return Info
	case level <= 4:
		return Warning
	default:
		return Critical
	}
}
