package filescan

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// reGameVersionNumber extracts the numeric "major.minor.patch..." token
// from a free-form GameVersion string such as "Fallout 4 v1.10.163".
var reGameVersionNumber = regexp.MustCompile(`\d+(?:\.\d+)+`)

// CheckAddressLibrary verifies that `Data/<xseAcronym>/Plugins/version-<
// dashed game version>.bin` (or `.csv` under VR Mode) exists under gameDir,
// recording its absence in result (§4.14).
func CheckAddressLibrary(result *Result, gameDir, xseAcronym, gameVersion string, vrMode bool) error {
	ext := ".bin"
	if vrMode {
		ext = ".csv"
	}
	number := reGameVersionNumber.FindString(gameVersion)
	if number == "" {
		number = gameVersion
	}
	dashed := strings.ReplaceAll(number, ".", "-")
	expected := filepath.Join(gameDir, "Data", xseAcronym, "Plugins", "version-"+dashed+ext)

	if _, err := os.Stat(expected); err != nil {
		if os.IsNotExist(err) {
			result.MissingAddressLibrary.add("version-" + dashed + ext)
			return nil
		}
		return err
	}
	return nil
}
