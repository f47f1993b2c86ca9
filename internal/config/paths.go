package config

// Default on-disk locations for the six YAML documents (§6 "Inputs on
// disk"). Exported so cmd/classic and tests can override them explicitly
// rather than re-deriving the layout.
const (
	MainCatalogPath    = "CLASSIC Data/databases/CLASSIC Main.yaml"
	GameCatalogPathFmt = "CLASSIC Data/databases/CLASSIC %s.yaml" // %s = game edition, e.g. "Fallout4"
	GameLocalPathFmt   = "CLASSIC Data/CLASSIC %s Local.yaml"
	SettingsPath       = "CLASSIC Settings.yaml"
	IgnorePath         = "CLASSIC Ignore.yaml"
	TestPath           = "tests/test_settings.yaml"
)
