package preflight

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// Collector gathers host facts. The production implementation reads the live
// system; tests supply a fake.
type Collector interface {
	EffectiveUID() int
	Architecture() (string, error)
	BoardModel() (string, error)
	MemoryMB() (int, error)
	FreeDiskGB(path string) (int, error)
	Reachable(ctx context.Context, address string, timeout time.Duration) error
}

// RealCollector implements Collector against the running host.
type RealCollector struct{}

// EffectiveUID returns the effective user ID of the process.
func (RealCollector) EffectiveUID() int {
	return os.Geteuid()
}

// Architecture returns the machine field of uname(2), e.g. "aarch64".
func (RealCollector) Architecture() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", fmt.Errorf("uname: %w", err)
	}
	return charsToString(uts.Machine[:]), nil
}

// BoardModel reads the device-tree model string exposed on single-board
// computers. The file is absent on generic hardware.
func (RealCollector) BoardModel() (string, error) {
	data, err := os.ReadFile("/proc/device-tree/model")
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\x00\n"), nil
}

// MemoryMB parses MemTotal from /proc/meminfo.
func (RealCollector) MemoryMB() (int, error) {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return 0, fmt.Errorf("open /proc/meminfo: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			break
		}
		kb, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, fmt.Errorf("parse MemTotal %q: %w", fields[1], err)
		}
		return kb / 1024, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("read /proc/meminfo: %w", err)
	}
	return 0, fmt.Errorf("MemTotal not found in /proc/meminfo")
}

// FreeDiskGB returns the space available to unprivileged users on the
// filesystem containing path.
func (RealCollector) FreeDiskGB(path string) (int, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, fmt.Errorf("statfs %s: %w", path, err)
	}
	free := st.Bavail * uint64(st.Bsize)
	return int(free / (1 << 30)), nil
}

// Reachable dials address over TCP within timeout. The probe respects ctx so
// an operator interrupt cancels it.
func (RealCollector) Reachable(ctx context.Context, address string, timeout time.Duration) error {
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return err
	}
	return conn.Close()
}

func charsToString(raw []byte) string {
	for i, b := range raw {
		if b == 0 {
			return string(raw[:i])
		}
	}
	return string(raw)
}
