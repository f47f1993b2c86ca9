// Package rules implements the Rule Engine (§4.6): it evaluates the
// Knowledge Base's suspect programs against a parsed crash log and produces
// Findings, in catalog declaration order.
package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/classic-scan/classic/internal/model"
)

const titleWidth = 40

// Evaluate runs the main-error pass, the call-stack pass, and the
// named-record pass, in that order, appending every fired finding to fs
// (§4.6 "Ordering": findings appear in the order rules are declared in the
// catalog).
func Evaluate(fs *model.Findings, sourceLog string, parsed *model.ParsedCrashLog, kb knowledgeBase) {
	mainErrorPass(fs, sourceLog, parsed, kb.SuspectsMainError())
	callStackPass(fs, sourceLog, parsed, kb.SuspectsCallStack())
	namedRecordPass(fs, sourceLog, parsed, kb.RecordsOfInterest(), kb.RecordsIgnored())
}

// knowledgeBase is the subset of *knowledge.KnowledgeBase the Rule Engine
// consumes, kept as an interface so engine_test.go can supply fixtures
// without a Configuration Store.
type knowledgeBase interface {
	SuspectsMainError() []model.MainErrorSuspect
	SuspectsCallStack() []model.SuspectSignalProgram
	RecordsOfInterest() []string
	RecordsIgnored() []string
}

// mainErrorPass reports a finding for each suspect whose needle appears
// (case-insensitively) in the main error line (§4.6 "Main-error pass").
func mainErrorPass(fs *model.Findings, sourceLog string, parsed *model.ParsedCrashLog, suspects []model.MainErrorSuspect) {
	mainError := strings.ToLower(parsed.MainError)
	for _, s := range suspects {
		if s.Needle == "" || !strings.Contains(mainError, strings.ToLower(s.Needle)) {
			continue
		}
		fs.Add(model.Finding{
			SourceLog:       sourceLog,
			IssueID:         fmt.Sprintf("main_error:%s", s.SeverityAndName),
			Title:           model.PadTitle(s.DisplayName, titleWidth),
			DisplaySeverity: fmt.Sprintf("%d", s.Severity),
			Severity:        model.SeverityFromLevel(s.Severity),
			SourceComponent: "main_error_suspect",
		})
	}
}

// callStackPass implements the exact per-rule algorithm in §4.6
// "Call-stack pass".
func callStackPass(fs *model.Findings, sourceLog string, parsed *model.ParsedCrashLog, programs []model.SuspectSignalProgram) {
	callStack := strings.ToLower(parsed.Segments.JoinedCallStack())
	mainError := strings.ToLower(parsed.MainError)

	for _, program := range programs {
		hasRequired := false
		errorReqFound := false
		errorOptFound := false
		stackFound := false
		aborted := false

		for _, sig := range program.Signals {
			pattern := strings.ToLower(sig.Pattern)
			switch sig.Kind {
			case model.SignalNot:
				if strings.Contains(callStack, pattern) {
					aborted = true
				}
			case model.SignalMeReq:
				hasRequired = true
				if strings.Contains(mainError, pattern) {
					errorReqFound = true
				}
			case model.SignalMeOpt:
				if strings.Contains(mainError, pattern) {
					errorOptFound = true
				}
			case model.SignalCount:
				if countOccurrences(callStack, pattern) >= sig.Count {
					stackFound = true
				}
			case model.SignalPlain:
				if strings.Contains(callStack, pattern) {
					stackFound = true
				}
			}
			if aborted {
				break
			}
		}

		if aborted {
			continue
		}
		if (!hasRequired || errorReqFound) && (stackFound || errorOptFound) {
			fs.Add(model.Finding{
				SourceLog:       sourceLog,
				IssueID:         fmt.Sprintf("call_stack:%s", program.SeverityAndName),
				Title:           model.PadTitle(program.DisplayName, titleWidth),
				DisplaySeverity: fmt.Sprintf("%d", program.Severity),
				Severity:        model.SeverityFromLevel(program.Severity),
				SourceComponent: "call_stack_suspect",
			})
		}
	}
}

// countOccurrences returns the number of non-overlapping occurrences of
// pattern in s; both must already be lowercased by the caller.
func countOccurrences(s, pattern string) int {
	if pattern == "" {
		return 0
	}
	return strings.Count(s, pattern)
}

// namedRecordPass extracts interesting call-stack substrings and emits one
// grouped finding listing each distinct record with its occurrence count
// (§4.6 "Named-record pass").
func namedRecordPass(fs *model.Findings, sourceLog string, parsed *model.ParsedCrashLog, recordsOfInterest, recordsIgnored []string) {
	if len(recordsOfInterest) == 0 {
		return
	}

	counts := make(map[string]int)
	for _, line := range parsed.Segments.Get(model.SegmentCallStack) {
		lower := strings.ToLower(line)
		if !containsAny(lower, recordsOfInterest) || containsAny(lower, recordsIgnored) {
			continue
		}
		counts[extractRecord(line)]++
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
	for _, k := range keys {
		fmt.Fprintf(&b, "%s | %d\n", k, counts[k])
	}

	fs.Add(model.Finding{
		SourceLog:       sourceLog,
		IssueID:         "named_records:" + sourceLog,
		Title:           "Named Records",
		Message:         strings.TrimRight(b.String(), "\n"),
		Severity:        model.Info,
		SourceComponent: "named_record",
	})
}

const rspMarker = "[RSP+"
const rspOffset = 30

// extractRecord returns the substring to report for a matched call-stack
// line: for lines containing "[RSP+", everything from offset 30 onward;
// otherwise the whole line, trimmed.
func extractRecord(line string) string {
	if idx := strings.Index(line, rspMarker); idx >= 0 {
		if len(line) > rspOffset {
			return strings.TrimSpace(line[rspOffset:])
		}
		return strings.TrimSpace(line[idx:])
	}
	return strings.TrimSpace(line)
}

func containsAny(lower string, substrings []string) bool {
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
