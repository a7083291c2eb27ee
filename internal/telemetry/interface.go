package telemetry

// Recorder persists telemetry records for one logging run.
type Recorder interface {
	// Record appends rec.Raw as one line and flushes it to disk.
	Record(rec *Record) error
	// Path returns the file the run is being written to.
	Path() string
	Close() error
}

// Repository is the storage behind a Recorder.
type Repository interface {
	Store(line string) error
	Path() string
	Close() error
}

// Record is one decoded line received from the sensor board.
type Record struct {
	Raw    string
	Header bool
	Fields []string
}

// Colour channels of a parsed reading, kept as the device sent them.
type RGB struct {
	Red   string
	Green string
	Blue  string
}
