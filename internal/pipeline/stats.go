package pipeline

// RunStats tracks aggregate counters and byte totals across a batch run.
type RunStats struct {
	Total     int
	Current   int
	Uploaded  int // Includes dry-run "would upload" files.
	Skipped   int // Name did not parse or a required field was empty.
	Failed    int // Upload attempted and failed.
	BytesSent int64
}

// Processed returns how many files reached a final outcome.
func (s *RunStats) Processed() int {
	return s.Uploaded + s.Skipped + s.Failed
}
