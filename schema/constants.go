package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// ViewMode selects which dimensions of a profile are computed and shown.
	ViewMode string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string

	// FileCategoryName names one of the three file-touch categories.
	FileCategoryName string

	// LogFormat represents the formatter used by the logger.
	LogFormat string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All views supported. ProfileView runs all three log scans.
const (
	ProfileView ViewMode = "profile" // default
	CommitsView ViewMode = "commits"
	LinesView   ViewMode = "lines"
	FilesView   ViewMode = "files"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// File-touch categories, keyed by the name-status letter that feeds them.
const (
	CreatedCategory  FileCategoryName = "created"
	ModifiedCategory FileCategoryName = "modified"
	DeletedCategory  FileCategoryName = "deleted"
)

// Log formats supported.
const (
	TextLogFormat LogFormat = "text" // default
	JSONLogFormat LogFormat = "json"
)

// AllFileCategories lists the categories in display order.
var AllFileCategories = []FileCategoryName{CreatedCategory, ModifiedCategory, DeletedCategory}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidViewModes lists all valid views.
var ValidViewModes = map[ViewMode]struct{}{
	ProfileView: {},
	CommitsView: {},
	LinesView:   {},
	FilesView:   {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidLogFormats lists all valid log formats.
var ValidLogFormats = map[LogFormat]struct{}{
	TextLogFormat: {},
	JSONLogFormat: {},
}
