package messages

// Config messages for settings loading.
const (
	ConfigReadFailedFmt  = "read settings file %s: %w"
	ConfigParseFailedFmt = "parse settings file %s: %w"
	ConfigInvalidFmt     = "invalid settings: %s"

	ConfigDiskFloorInvalid  = "disk_floor_gb must be positive"
	ConfigMemoryWarnInvalid = "memory_warn_mb must be positive"
	ConfigProbeAddrInvalid  = "probe_address must be host:port"
	ConfigNodeMajorInvalid  = "node_major_min must be positive"
	ConfigWorkspaceInvalid  = "workspace_dir must not be empty"

	ConfigResolveHomeFailedFmt = "resolve home directory for %q: %w"
)
