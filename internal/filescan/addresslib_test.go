package filescan

import (
	"path/filepath"
	"testing"
)

func TestCheckAddressLibraryFlagsAbsence(t *testing.T) {
	gameDir := t.TempDir()

	result := NewResult()
	if err := CheckAddressLibrary(result, gameDir, "F4SE", "1.10.163", false); err != nil {
		t.Fatalf("CheckAddressLibrary: %v", err)
	}
	if len(result.MissingAddressLibrary.sorted()) != 1 {
		t.Fatalf("expected missing Address Library flagged, got %v", result.MissingAddressLibrary.sorted())
	}
}

func TestCheckAddressLibraryPresentIsNotFlagged(t *testing.T) {
	gameDir := t.TempDir()
	writeFile(t, filepath.Join(gameDir, "Data", "F4SE", "Plugins", "version-1-10-163.bin"), []byte("x"))

	result := NewResult()
	if err := CheckAddressLibrary(result, gameDir, "F4SE", "1.10.163", false); err != nil {
		t.Fatalf("CheckAddressLibrary: %v", err)
	}
	if len(result.MissingAddressLibrary.sorted()) != 0 {
		t.Fatalf("expected no flag when file present, got %v", result.MissingAddressLibrary.sorted())
	}
}

func TestCheckAddressLibraryExtractsVersionFromFreeFormString(t *testing.T) {
	gameDir := t.TempDir()
	writeFile(t, filepath.Join(gameDir, "Data", "F4SE", "Plugins", "version-1-10-163.bin"), []byte("x"))

	result := NewResult()
	if err := CheckAddressLibrary(result, gameDir, "F4SE", "Fallout 4 v1.10.163", false); err != nil {
		t.Fatalf("CheckAddressLibrary: %v", err)
	}
	if len(result.MissingAddressLibrary.sorted()) != 0 {
		t.Fatalf("expected no flag when file present, got %v", result.MissingAddressLibrary.sorted())
	}
}

func TestCheckAddressLibraryVRModeUsesCSVExtension(t *testing.T) {
	gameDir := t.TempDir()
	writeFile(t, filepath.Join(gameDir, "Data", "F4SE", "Plugins", "version-1-10-163.csv"), []byte("x"))

	result := NewResult()
	if err := CheckAddressLibrary(result, gameDir, "F4SE", "1.10.163", true); err != nil {
		t.Fatalf("CheckAddressLibrary: %v", err)
	}
	if len(result.MissingAddressLibrary.sorted()) != 0 {
		t.Fatalf("expected no flag when VR .csv file present, got %v", result.MissingAddressLibrary.sorted())
	}
}
