// Package filescan implements the File Scanners (§4.11) and the Address
// Library Checker (§4.14): loose-file classification and BA2 archive
// inspection under the mod-staging and game install directories.
package filescan

import "sort"

// stringSet is a de-duplicating accumulator; §4.11 requires each category
// to be "de-duplicated, sorted ascending at render."
type stringSet map[string]struct{}

func (s stringSet) add(v string) { s[v] = struct{}{} }

func (s stringSet) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Result accumulates every flagged category from a loose-file and/or
// archive scan (§4.11's "fixed sequence of category headers").
type Result struct {
	Documentation         stringSet
	FomodFolders          stringSet
	AnimationFileData     stringSet
	WrongDDSDimensions    stringSet
	WrongTextureFormat    stringSet
	WrongSoundFormat      stringSet
	XSEScriptCopies       stringSet
	PrevisLooseFiles      stringSet
	BA2WrongFormat        stringSet
	BA2WrongTextureFormat stringSet
	BA2OddDimensions      stringSet
	MissingAddressLibrary stringSet
}

// NewResult returns an empty Result with every category initialized.
func NewResult() *Result {
	return &Result{
		Documentation:         stringSet{},
		FomodFolders:          stringSet{},
		AnimationFileData:     stringSet{},
		WrongDDSDimensions:    stringSet{},
		WrongTextureFormat:    stringSet{},
		WrongSoundFormat:      stringSet{},
		XSEScriptCopies:       stringSet{},
		PrevisLooseFiles:      stringSet{},
		BA2WrongFormat:        stringSet{},
		BA2WrongTextureFormat: stringSet{},
		BA2OddDimensions:      stringSet{},
		MissingAddressLibrary: stringSet{},
	}
}

// Category is one rendered section: a fixed header and its sorted items
// (§4.11 "Output structure").
type Category struct {
	Header string
	Items  []string
}

// Categories returns every non-empty category in the fixed §4.11 rendering
// order.
func (r *Result) Categories() []Category {
	ordered := []struct {
		header string
		set    stringSet
	}{
		{"Documentation Files Moved", r.Documentation},
		{"FOMOD Folders Moved", r.FomodFolders},
		{"Custom Animation File Data", r.AnimationFileData},
		{"Textures With Wrong Dimensions", r.WrongDDSDimensions},
		{"Textures With Wrong Format", r.WrongTextureFormat},
		{"Sound Files With Wrong Format", r.WrongSoundFormat},
		{"XSE Script Copies", r.XSEScriptCopies},
		{"Previs Loose Files", r.PrevisLooseFiles},
		{"Archives With Wrong Format", r.BA2WrongFormat},
		{"Archived Textures With Wrong Format", r.BA2WrongTextureFormat},
		{"Archived Textures With Wrong Dimensions", r.BA2OddDimensions},
		{"Missing Address Library", r.MissingAddressLibrary},
	}

	var out []Category
	for _, o := range ordered {
		items := o.set.sorted()
		if len(items) == 0 {
			continue
		}
		out = append(out, Category{Header: o.header, Items: items})
	}
	return out
}
