package messages

// Scaffold messages for workspace file generation.
const (
	ScaffoldCreateDirFailedFmt = "create directory %s: %w"
	ScaffoldReadTemplateFmt    = "read template %s: %w"
	ScaffoldWriteFileFmt       = "write %s: %w"
	ScaffoldStatFailedFmt      = "stat %s: %w"
	ScaffoldChownFailedFmt     = "set ownership of %s: %w"

	ScaffoldWroteFmt     = "  wrote %s\n"
	ScaffoldOverwroteFmt = "  overwrote %s (differed from template)\n"

	ScaffoldDiffHeaderFmt = "Replacing modified file %s:\n"
	ScaffoldDiffTruncated = "  (diff truncated)\n"

	ScaffoldDoneFmt = "Workspace ready at %s\n"
)
