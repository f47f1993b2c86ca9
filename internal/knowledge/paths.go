package knowledge

// Dotted key paths into the Main and Game catalogs. Centralizing these
// avoids magic strings scattered across the typed accessors below, mirroring
// how the teacher centralizes its own well-known relative paths as package
// constants (see internal/config/paths.go here, and internal/rig's path
// constants in the teacher tree).
const (
	keySuspectsMainError = "Suspects.MainError"
	keySuspectsCallStack = "Suspects.CallStack"

	keyModsSingle         = "Mods.Single"
	keyModsConflict       = "Mods.Conflict"
	keyModsImportantCore  = "Mods.ImportantCore"
	keyModsImportantFOLON = "Mods.ImportantFOLON"

	keyRecordsOfInterest = "Records.OfInterest"
	keyRecordsIgnored    = "Records.Ignored"

	keyPluginsIgnoredFmt = "Plugins.Ignored"

	keyCrashgenRecommendFmt = "Crashgen.Recommend.%s"

	keyExcludeLogRecords = "Crashlog.ExcludeRecords"

	keyCatchLogErrors   = "LogErrors.Catch"
	keyExcludeLogErrors = "LogErrors.Exclude"
	keyExcludeLogFiles  = "LogErrors.ExcludeFiles"

	keyXSEHashedScripts = "XSE.HashedScripts"

	keyXSEAcronym = "GameInfo.XSEAcronym"
)
