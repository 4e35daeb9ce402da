package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the storage backend for snapshots.
	DatabaseBackend string

	// PaceStatus represents how a day compares against the guideline.
	PaceStatus string

	// LineStyle represents how a chart series is stroked.
	LineStyle string
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All snapshot backends supported.
const (
	FileBackend       DatabaseBackend = "file" // default
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	MemoryBackend     DatabaseBackend = "memory"
)

// Pace labels for the series table.
const (
	OnTrackStatus PaceStatus = "on-track"
	BehindStatus  PaceStatus = "behind"
	NoDataStatus  PaceStatus = "no-data"
	FutureStatus  PaceStatus = "future"
)

// Chart line styles.
const (
	SolidLine  LineStyle = "solid"
	DashedLine LineStyle = "dashed"
)

// Envelope status codes persisted with every snapshot.
const (
	EnvelopeCodeOK = 0
	EnvelopeMsgOK  = "success"
)

// Chart defaults matching the delivered artifact.
const (
	DefaultChartWidth    = 700
	DefaultChartHeight   = 400
	RemainingSeriesName  = "Story Points remaining"
	GuidelineSeriesName  = "Guideline"
	ArtifactFileSuffix   = "_burn_down_chart.png"
	SnapshotFileSuffix   = "_sprint_data.json"
	EnvelopeUpdateLayout = "2006/01/02 15:04:05"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid snapshot backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	FileBackend:       {},
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	MemoryBackend:     {},
}

// IsSQL reports whether the backend is served by database/sql.
func (b DatabaseBackend) IsSQL() bool {
	switch b {
	case SQLiteBackend, MySQLBackend, PostgreSQLBackend:
		return true
	default:
		return false
	}
}
