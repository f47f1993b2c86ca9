// Package settings is the typed accessor over the Configuration Store's
// mutable Settings and GameLocal documents: the "Settings surface" §6
// enumerates (Update Check, FCX Mode, Show FormID Values, ...). It follows
// the same dotted-path-over-config.Store idiom internal/knowledge uses for
// the immutable catalogs.
package settings

import "github.com/classic-scan/classic/internal/config"

// Dotted key paths into CLASSIC Settings.yaml. One flat "Settings" section
// matches the key layout the source tool's settings file itself uses.
const (
	keyUpdateCheck       = "Settings.Update Check"
	keyUpdateSource      = "Settings.Update Source"
	keyManagedGame       = "Settings.Managed Game"
	keyVRMode            = "Settings.VR Mode"
	keyFCXMode           = "Settings.FCX Mode"
	keySimplifyLogs      = "Settings.Simplify Logs"
	keyShowStatistics    = "Settings.Show Statistics"
	keyShowFormIDValues  = "Settings.Show FormID Values"
	keyMoveUnsolvedLogs  = "Settings.Move Unsolved Logs"
	keyINIFolderPath     = "Settings.INI Folder Path"
	keyMODSFolderPath    = "Settings.MODS Folder Path"
	keySCANCustomPath    = "Settings.SCAN Custom Path"
	keyAudioNotifications = "Settings.Audio Notifications"
)

// UpdateSource enumerates the "Update Source" setting (§6).
type UpdateSource string

const (
	UpdateSourceBoth   UpdateSource = "Both"
	UpdateSourceGitHub UpdateSource = "GitHub"
	UpdateSourceNexus  UpdateSource = "Nexus"
)

// Settings wraps the Configuration Store's Settings document with the named
// boolean/string surface §6 enumerates. Every accessor degrades to a safe
// default rather than propagating a missing-key error (§4.1, §7
// "Configuration-missing... degrade to default").
type Settings struct {
	store *config.Store
}

// New returns a Settings view over store.
func New(store *config.Store) *Settings {
	return &Settings{store: store}
}

func (s *Settings) getBool(key string) bool {
	v, _ := config.Get[bool](s.store, s.store.SettingsRef(), key)
	return v
}

func (s *Settings) getString(key, fallback string) string {
	v, ok := config.Get[string](s.store, s.store.SettingsRef(), key)
	if !ok || v == "" {
		return fallback
	}
	return v
}

func (s *Settings) UpdateCheck() bool { return s.getBool(keyUpdateCheck) }

func (s *Settings) UpdateSource() UpdateSource {
	return UpdateSource(s.getString(keyUpdateSource, string(UpdateSourceBoth)))
}

// ManagedGame returns the active game edition, e.g. "Fallout4"; defaults to
// "Fallout4" since that is the only edition the original tool ships with
// out of the box.
func (s *Settings) ManagedGame() string { return s.getString(keyManagedGame, "Fallout4") }

func (s *Settings) VRMode() bool           { return s.getBool(keyVRMode) }
func (s *Settings) FCXMode() bool          { return s.getBool(keyFCXMode) }
func (s *Settings) SimplifyLogs() bool     { return s.getBool(keySimplifyLogs) }
func (s *Settings) ShowStatistics() bool   { return s.getBool(keyShowStatistics) }
func (s *Settings) ShowFormIDValues() bool { return s.getBool(keyShowFormIDValues) }
func (s *Settings) MoveUnsolvedLogs() bool { return s.getBool(keyMoveUnsolvedLogs) }
func (s *Settings) AudioNotifications() bool { return s.getBool(keyAudioNotifications) }

func (s *Settings) INIFolderPath() string  { return s.getString(keyINIFolderPath, "") }
func (s *Settings) MODSFolderPath() string { return s.getString(keyMODSFolderPath, "") }
func (s *Settings) SCANCustomPath() string { return s.getString(keySCANCustomPath, "") }

// SetFCXMode, SetManagedGame, SetMoveUnsolvedLogs write through to the
// mutable Settings document (§4.1 Set semantics).
func (s *Settings) SetFCXMode(v bool) bool {
	_, ok := config.Set[bool](s.store, s.store.SettingsRef(), keyFCXMode, v)
	return ok
}

func (s *Settings) SetManagedGame(v string) bool {
	_, ok := config.Set[string](s.store, s.store.SettingsRef(), keyManagedGame, v)
	return ok
}

func (s *Settings) SetMoveUnsolvedLogs(v bool) bool {
	_, ok := config.Set[bool](s.store, s.store.SettingsRef(), keyMoveUnsolvedLogs, v)
	return ok
}

// GameLocal is the typed view over one edition's discovered-paths document
// (§3 "GameLocal... discovered paths; user-editable").
type GameLocal struct {
	store   *config.Store
	edition string
}

// NewGameLocal returns a GameLocal view for edition.
func NewGameLocal(store *config.Store, edition string) *GameLocal {
	return &GameLocal{store: store, edition: edition}
}

func (g *GameLocal) getString(key string) string {
	v, _ := config.Get[string](g.store, g.store.GameLocalRef(g.edition), key)
	return v
}

// GameRootPath is the discovered install directory for this edition.
func (g *GameLocal) GameRootPath() string { return g.getString("GameInfo.RootPath") }

// DocsPath is the discovered "My Games/<Game>" documents directory, the
// root the Log-Error Scan (§4.12) walks.
func (g *GameLocal) DocsPath() string { return g.getString("GameInfo.DocsPath") }

// SetGameRootPath persists a freshly discovered install directory.
func (g *GameLocal) SetGameRootPath(path string) bool {
	_, ok := config.Set[string](g.store, g.store.GameLocalRef(g.edition), "GameInfo.RootPath", path)
	return ok
}

// SetDocsPath persists a freshly discovered documents directory.
func (g *GameLocal) SetDocsPath(path string) bool {
	_, ok := config.Set[string](g.store, g.store.GameLocalRef(g.edition), "GameInfo.DocsPath", path)
	return ok
}
