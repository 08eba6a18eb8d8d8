package messages

// Preflight messages for host verification.
const (
	PreflightCheckNamePrivilege = "Privilege"
	PreflightCheckNameArch      = "Architecture"
	PreflightCheckNameModel     = "Board"
	PreflightCheckNameMemory    = "Memory"
	PreflightCheckNameDisk      = "Disk"
	PreflightCheckNameNetwork   = "Network"

	PreflightRunningAsRoot     = "Running with root privileges"
	PreflightNotRoot           = "Not running as root"
	PreflightNotRootRecommend  = "Re-run with: sudo boardstrap setup"

	PreflightArch64Fmt       = "Architecture: %s (64-bit)"
	PreflightArch32Fmt       = "Architecture: %s (32-bit)"
	PreflightArch32Recommend = "A 64-bit OS image is recommended for this hardware."
	PreflightArchOtherFmt    = "Architecture: %s"

	PreflightModelFmt           = "Board: %s"
	PreflightModelUnknown       = "Could not detect the board model"
	PreflightModelUnknownRecommend = "Expected /proc/device-tree/model on Raspberry Pi class hardware; continuing anyway."

	PreflightMemoryFmt          = "Memory: %d MB"
	PreflightMemoryLowFmt       = "Memory: %d MB (low)"
	PreflightMemoryLowRecommend = "Installs will work but container workloads may be tight."
	PreflightMemoryUnreadableFmt = "Could not read memory size: %v"

	PreflightDiskFmt          = "Free disk: %d GB"
	PreflightDiskLowFmt       = "Free disk: %d GB, need at least %d GB"
	PreflightDiskLowRecommend = "Free up space or use a larger storage device, then re-run."
	PreflightDiskUnreadableFmt = "Could not determine free disk space: %v"

	PreflightNetworkOK           = "Network: reachable"
	PreflightNetworkFailFmt      = "Network probe to %s failed: %v"
	PreflightNetworkFailRecommend = "Check the connection (Wi-Fi credentials, ethernet cable) and re-run."

	PreflightAbort = "preflight failed"
)
