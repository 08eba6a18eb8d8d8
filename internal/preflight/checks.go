package preflight

import (
	"context"
	"fmt"
	"time"

	"github.com/tessellate-ai/boardstrap/internal/config"
	"github.com/tessellate-ai/boardstrap/internal/messages"
)

// Run executes the full check battery and returns the gathered host profile
// alongside per-check results. Callers must abort before any mutation when
// HasFailure reports true.
func Run(ctx context.Context, settings config.Settings, collector Collector) (HostProfile, []Result) {
	var profile HostProfile
	var results []Result

	results = append(results, checkPrivilege(collector))
	results = append(results, checkArchitecture(collector, &profile))
	results = append(results, checkBoardModel(collector, &profile))
	results = append(results, checkMemory(collector, settings.MemoryWarnMB, &profile))
	results = append(results, checkDisk(collector, settings.DiskFloorGB, &profile))
	results = append(results, checkNetwork(ctx, collector, settings, &profile))

	return profile, results
}

func checkPrivilege(collector Collector) Result {
	if collector.EffectiveUID() != 0 {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.PreflightCheckNamePrivilege,
			Message:        messages.PreflightNotRoot,
			Recommendation: messages.PreflightNotRootRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.PreflightCheckNamePrivilege,
		Message:   messages.PreflightRunningAsRoot,
	}
}

// checkArchitecture never blocks the pipeline; 32-bit ARM gets a warning
// because the container images the workspace uses are published for arm64.
func checkArchitecture(collector Collector, profile *HostProfile) Result {
	arch, err := collector.Architecture()
	if err != nil {
		return Result{
			Status:    StatusWarn,
			CheckName: messages.PreflightCheckNameArch,
			Message:   fmt.Sprintf(messages.PreflightArchOtherFmt, fmt.Sprintf("unknown (%v)", err)),
		}
	}
	profile.Arch = arch
	switch arch {
	case "aarch64", "arm64", "x86_64":
		return Result{
			Status:    StatusOK,
			CheckName: messages.PreflightCheckNameArch,
			Message:   fmt.Sprintf(messages.PreflightArch64Fmt, arch),
		}
	case "armv7l", "armv6l":
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.PreflightCheckNameArch,
			Message:        fmt.Sprintf(messages.PreflightArch32Fmt, arch),
			Recommendation: messages.PreflightArch32Recommend,
		}
	default:
		return Result{
			Status:    StatusOK,
			CheckName: messages.PreflightCheckNameArch,
			Message:   fmt.Sprintf(messages.PreflightArchOtherFmt, arch),
		}
	}
}

func checkBoardModel(collector Collector, profile *HostProfile) Result {
	model, err := collector.BoardModel()
	if err != nil || model == "" {
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.PreflightCheckNameModel,
			Message:        messages.PreflightModelUnknown,
			Recommendation: messages.PreflightModelUnknownRecommend,
		}
	}
	profile.Model = model
	return Result{
		Status:    StatusOK,
		CheckName: messages.PreflightCheckNameModel,
		Message:   fmt.Sprintf(messages.PreflightModelFmt, model),
	}
}

func checkMemory(collector Collector, warnMB int, profile *HostProfile) Result {
	memMB, err := collector.MemoryMB()
	if err != nil {
		// RAM is advisory only, so an unreadable meminfo is a warning.
		return Result{
			Status:    StatusWarn,
			CheckName: messages.PreflightCheckNameMemory,
			Message:   fmt.Sprintf(messages.PreflightMemoryUnreadableFmt, err),
		}
	}
	profile.MemoryMB = memMB
	if memMB < warnMB {
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.PreflightCheckNameMemory,
			Message:        fmt.Sprintf(messages.PreflightMemoryLowFmt, memMB),
			Recommendation: messages.PreflightMemoryLowRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.PreflightCheckNameMemory,
		Message:   fmt.Sprintf(messages.PreflightMemoryFmt, memMB),
	}
}

func checkDisk(collector Collector, floorGB int, profile *HostProfile) Result {
	freeGB, err := collector.FreeDiskGB("/")
	if err != nil {
		return Result{
			Status:    StatusFail,
			CheckName: messages.PreflightCheckNameDisk,
			Message:   fmt.Sprintf(messages.PreflightDiskUnreadableFmt, err),
		}
	}
	profile.FreeDiskGB = freeGB
	if freeGB < floorGB {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.PreflightCheckNameDisk,
			Message:        fmt.Sprintf(messages.PreflightDiskLowFmt, freeGB, floorGB),
			Recommendation: messages.PreflightDiskLowRecommend,
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.PreflightCheckNameDisk,
		Message:   fmt.Sprintf(messages.PreflightDiskFmt, freeGB),
	}
}

func checkNetwork(ctx context.Context, collector Collector, settings config.Settings, profile *HostProfile) Result {
	timeout := time.Duration(settings.ProbeTimeoutSeconds) * time.Second
	if err := collector.Reachable(ctx, settings.ProbeAddress, timeout); err != nil {
		return Result{
			Status:         StatusFail,
			CheckName:      messages.PreflightCheckNameNetwork,
			Message:        fmt.Sprintf(messages.PreflightNetworkFailFmt, settings.ProbeAddress, err),
			Recommendation: messages.PreflightNetworkFailRecommend,
		}
	}
	profile.NetworkOK = true
	return Result{
		Status:    StatusOK,
		CheckName: messages.PreflightCheckNameNetwork,
		Message:   messages.PreflightNetworkOK,
	}
}
