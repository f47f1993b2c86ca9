package model

import "strings"

// CrashLogFile is a discovered crash log on disk. Its Lines are immutable
// once loaded; LogSource owns the lifecycle (§4.4).
type CrashLogFile struct {
	Path  string
	Lines []string
	Size  int64
}

// SegmentKind names the six ordered segments every ParsedCrashLog carries
// (§3 "segments has exactly six entries").
type SegmentKind int

const (
	SegmentCrashgenSettings SegmentKind = iota
	SegmentSystemSpecs
	SegmentCallStack
	SegmentAllModules
	SegmentXSEModules
	SegmentPlugins
	segmentCount
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentCrashgenSettings:
		return "crashgen_settings"
	case SegmentSystemSpecs:
		return "system_specs"
	case SegmentCallStack:
		return "call_stack"
	case SegmentAllModules:
		return "all_modules"
	case SegmentXSEModules:
		return "xse_modules"
	case SegmentPlugins:
		return "plugins"
	default:
		return "unknown"
	}
}

// Segments holds the six ordered line-lists. The zero value has six empty,
// non-nil slices, satisfying the "segment totality" invariant (§8) without
// any caller needing to special-case a missing segment.
type Segments struct {
	lists [segmentCount][]string
}

// Get returns the line list for kind. Never nil.
func (s *Segments) Get(kind SegmentKind) []string {
	if kind < 0 || int(kind) >= int(segmentCount) {
		return nil
	}
	if s.lists[kind] == nil {
		return []string{}
	}
	return s.lists[kind]
}

// Set replaces the line list for kind.
func (s *Segments) Set(kind SegmentKind, lines []string) {
	if lines == nil {
		lines = []string{}
	}
	s.lists[kind] = lines
}

// Len returns the number of segments (always six).
func (s *Segments) Len() int { return int(segmentCount) }

// JoinedCallStack returns the call-stack segment as one newline-joined
// string, the form the Rule Engine's substring/count matching operates on.
func (s *Segments) JoinedCallStack() string {
	return strings.Join(s.Get(SegmentCallStack), "\n")
}

// PluginEntry is one parsed line from the plugins segment: a filename and
// its 2-hex-digit load order index, or the "FE"/"FF" sentinels.
type PluginEntry struct {
	Name  string
	Index string
}

// LoadedPlugins is an insertion-ordered, case-insensitive-unique mapping
// from plugin filename to load-order index (§3 invariant).
type LoadedPlugins struct {
	order []string
	byKey map[string]string // lower(name) -> index
	names map[string]string // lower(name) -> original-case name
}

// NewLoadedPlugins returns an empty LoadedPlugins.
func NewLoadedPlugins() *LoadedPlugins {
	return &LoadedPlugins{
		byKey: make(map[string]string),
		names: make(map[string]string),
	}
}

// Add records a plugin, ignoring a later duplicate under case-insensitive
// comparison (first occurrence wins, matching load order).
func (lp *LoadedPlugins) Add(name, index string) {
	key := strings.ToLower(name)
	if _, exists := lp.byKey[key]; exists {
		return
	}
	lp.order = append(lp.order, key)
	lp.byKey[key] = index
	lp.names[key] = name
}

// Index returns the load-order index for name and whether it was found.
func (lp *LoadedPlugins) Index(name string) (string, bool) {
	idx, ok := lp.byKey[strings.ToLower(name)]
	return idx, ok
}

// Has reports whether name is loaded (case-insensitive exact match).
func (lp *LoadedPlugins) Has(name string) bool {
	_, ok := lp.byKey[strings.ToLower(name)]
	return ok
}

// ByIndexPrefix returns the first plugin (in load order) whose load-order
// index equals prefix, case-insensitively. Used by the FormID Correlator
// (§4.8) to attribute a FormID's first byte to a plugin.
func (lp *LoadedPlugins) ByIndexPrefix(prefix string) (string, bool) {
	prefix = strings.ToUpper(prefix)
	for _, key := range lp.order {
		if strings.ToUpper(lp.byKey[key]) == prefix {
			return lp.names[key], true
		}
	}
	return "", false
}

// Names returns plugin names in load order (original case).
func (lp *LoadedPlugins) Names() []string {
	out := make([]string, len(lp.order))
	for i, key := range lp.order {
		out[i] = lp.names[key]
	}
	return out
}

// Len returns the number of loaded plugins.
func (lp *LoadedPlugins) Len() int { return len(lp.order) }

// ParsedCrashLog is the canonical segment model a crash log is parsed into
// (§3).
type ParsedCrashLog struct {
	SourcePath             string
	GameVersion             string
	CrashgenNameAndVersion  string
	MainError               string
	Segments                Segments
	LoadedPlugins           *LoadedPlugins

	// Incomplete is set when the plugins segment was empty or the log was
	// shorter than 20 lines (§4.5 edge cases); downstream stages flag this
	// but still process the log.
	Incomplete bool
}
