package messages

// Report messages for the JSON run report.
const (
	ReportMarshalFailedFmt = "encode run report: %w"
	ReportWriteFailedFmt   = "write run report %s: %w"
)
