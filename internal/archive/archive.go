// Package archive wraps an external BSA/BA2 extractor binary (§4.15):
// List/Dump each run the tool as a subprocess with a bounded timeout and
// parse its fixed per-file block output.
package archive

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// ErrExtractorFailed is returned when the extractor exits non-zero or the
// call times out (§4.15). Callers convert this into a single flagged
// finding rather than inspecting the underlying process error.
var ErrExtractorFailed = errors.New("archive: extractor invocation failed")

const invokeTimeout = 30 * time.Second

// DumpEntry is one parsed texture record from an extractor's dump-mode
// output (§4.11 "DX10" archive handling).
type DumpEntry struct {
	Path      string
	Extension string
	Width     int
	Height    int
}

// List runs the extractor in list mode and returns the archive's member
// file paths, one per line of stdout (§4.15, §4.11 "GNRL" handling).
func List(ctx context.Context, exePath, archivePath string) ([]string, error) {
	out, err := run(ctx, exePath, "list", archivePath)
	if err != nil {
		return nil, err
	}
	var entries []string
	for _, line := range splitNonEmptyLines(out) {
		entries = append(entries, strings.TrimSpace(line))
	}
	return entries, nil
}

// Dump runs the extractor in dump mode and parses its fixed per-file block
// layout:
//
//	Path: <archive-relative path>
//	Format: <extension, no dot>
//	Dimensions: <width>x<height>
//	(blank line separates entries)
func Dump(ctx context.Context, exePath, archivePath string) ([]DumpEntry, error) {
	out, err := run(ctx, exePath, "dump", archivePath)
	if err != nil {
		return nil, err
	}

	var entries []DumpEntry
	var cur DumpEntry
	flush := func() {
		if cur.Path != "" {
			entries = append(entries, cur)
		}
		cur = DumpEntry{}
	}

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "Path:"):
			flush()
			cur.Path = strings.TrimSpace(strings.TrimPrefix(line, "Path:"))
		case strings.HasPrefix(line, "Format:"):
			cur.Extension = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "Format:")))
		case strings.HasPrefix(line, "Dimensions:"):
			cur.Width, cur.Height = parseDimensions(strings.TrimSpace(strings.TrimPrefix(line, "Dimensions:")))
		}
	}
	flush()

	return entries, nil
}

func parseDimensions(s string) (int, int) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	w, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, _ := strconv.Atoi(strings.TrimSpace(parts[1]))
	return w, h
}

func run(ctx context.Context, exePath string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, invokeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, exePath, args...)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractorFailed, err)
	}
	return string(out), nil
}

func splitNonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
