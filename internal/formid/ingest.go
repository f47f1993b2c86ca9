package formid

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/classic-scan/classic/internal/lockutil"
)

// Ingest streams one CSV file into the index's edition table and returns the
// number of inserted rows. Required columns are FormID and Plugin; EditorID
// and Name are optional. One transaction guards the whole file (§4.3);
// rows missing a required column are skipped rather than aborting the
// ingest. The whole ingest is additionally held under an exclusive
// cross-process lock on the index file so a concurrent scan process never
// opens the index mid-write (§4.3 "Concurrency").
func (idx *Index) Ingest(path string) (int, error) {
	if idx.readOnly {
		return 0, fmt.Errorf("formid: index opened read-only, cannot ingest")
	}

	release, err := lockutil.Acquire(idx.path + ".lock")
	if err != nil {
		return 0, fmt.Errorf("locking %s for ingest: %w", idx.path, err)
	}
	defer release()

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("reading header of %s: %w", path, err)
	}
	col := columnIndex(header)

	formidCol, hasFormID := col["formid"]
	pluginCol, hasPlugin := col["plugin"]
	if !hasFormID || !hasPlugin {
		return 0, fmt.Errorf("%s: missing required FormID/Plugin columns", path)
	}
	editorIDCol, hasEditorID := col["editorid"]
	nameCol, hasName := col["name"]

	tx, err := idx.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction for %s: %w", path, err)
	}

	stmt, err := tx.Prepare(fmt.Sprintf(
		`INSERT INTO %s (formid, plugin, entry) VALUES (?, ?, ?)
		 ON CONFLICT(formid, plugin) DO UPDATE SET entry = excluded.entry`,
		tableName(idx.edition)))
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("preparing insert for %s: %w", path, err)
	}
	defer stmt.Close()

	inserted := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			tx.Rollback()
			return inserted, fmt.Errorf("reading row from %s: %w", path, err)
		}

		if formidCol >= len(record) || pluginCol >= len(record) {
			continue
		}
		rawFormID := record[formidCol]
		rawPlugin := record[pluginCol]
		if rawFormID == "" || rawPlugin == "" {
			continue
		}

		var editorID, name string
		if hasEditorID && editorIDCol < len(record) {
			editorID = record[editorIDCol]
		}
		if hasName && nameCol < len(record) {
			name = record[nameCol]
		}

		formidHex, plugin := Normalize(rawFormID, rawPlugin)
		entry := buildEntry(formidHex, editorID, name)

		if _, err := stmt.Exec(formidHex, plugin, entry); err != nil {
			tx.Rollback()
			return inserted, fmt.Errorf("inserting row from %s: %w", path, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("committing %s: %w", path, err)
	}
	return inserted, nil
}

// buildEntry composes "FormID: <HEX> - [EDID: <edid> - ][Name: <name>]"
// with trailing separators trimmed (§4.3).
func buildEntry(formidHex, editorID, name string) string {
	var sb strings.Builder
	sb.WriteString("FormID: ")
	sb.WriteString(formidHex)

	editorID = strings.TrimSpace(editorID)
	name = strings.TrimSpace(name)

	if editorID != "" {
		sb.WriteString(" - EDID: ")
		sb.WriteString(editorID)
	}
	if name != "" {
		sb.WriteString(" - Name: ")
		sb.WriteString(name)
	}
	return strings.TrimRight(sb.String(), " -")
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return idx
}
