// Package platform identifies the driver platform to resolve downloads for.
//
// A Platform is one of the labels the driver catalogs publish builds under.
// It is chosen once, either from an explicit caller value or from the host
// operating system, and never changes afterwards.
package platform

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// Platform is a supported driver platform. The zero value is Unknown.
type Platform int

const (
	Unknown Platform = iota
	Win32
	Win64
	Linux32
	Linux64
	Mac32
	Mac64
	MacArm64
	MacX64
)

// Family groups platforms by operating system.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyWindows
	FamilyLinux
	FamilyMac
)

// String returns the catalog label of the platform.
func (p Platform) String() string {
	switch p {
	case Win32:
		return LabelWin32
	case Win64:
		return LabelWin64
	case Linux32:
		return LabelLinux32
	case Linux64:
		return LabelLinux64
	case Mac32:
		return LabelMac32
	case Mac64:
		return LabelMac64
	case MacArm64:
		return LabelMacArm64
	case MacX64:
		return LabelMacX64
	case Unknown:
		return "unknown"
	}
	return "unknown"
}

// Family returns the operating system family of the platform.
func (p Platform) Family() Family {
	switch p {
	case Win32, Win64:
		return FamilyWindows
	case Linux32, Linux64:
		return FamilyLinux
	case Mac32, Mac64, MacArm64, MacX64:
		return FamilyMac
	case Unknown:
		return FamilyUnknown
	}
	return FamilyUnknown
}

// Is32Bit reports whether the caller pinned a 32-bit build.
func (p Platform) Is32Bit() bool {
	switch p {
	case Win32, Linux32, Mac32:
		return true
	case Unknown, Win64, Linux64, Mac64, MacArm64, MacX64:
		return false
	}
	return false
}

// IsPOSIX reports whether the platform's driver needs an execute bit.
func (p Platform) IsPOSIX() bool {
	switch p.Family() {
	case FamilyLinux, FamilyMac:
		return true
	case FamilyUnknown, FamilyWindows:
		return false
	}
	return false
}

// String returns a human readable family name.
func (f Family) String() string {
	switch f {
	case FamilyWindows:
		return "Windows"
	case FamilyLinux:
		return "Linux"
	case FamilyMac:
		return "macOS"
	case FamilyUnknown:
		return "unknown"
	}
	return "unknown"
}

// Host describes the machine the process runs on. The probes are functions
// so tests can impersonate other hosts.
type Host struct {
	GOOS        func() string
	GOARCH      func() string
	PointerBits func() int
}

// CurrentHost returns a Host backed by the Go runtime.
func CurrentHost() Host {
	return Host{
		GOOS:        func() string { return runtime.GOOS },
		GOARCH:      func() string { return runtime.GOARCH },
		PointerBits: func() int { return strconv.IntSize },
	}
}

// IsArm reports whether the host processor is ARM, which on macOS selects
// the Apple silicon builds.
func (h Host) IsArm() bool {
	arch := NormalizeArch(h.GOARCH())
	return arch == ArchARM64 || arch == ArchARM
}

// Is64Bit reports whether the running process is 64-bit.
func (h Host) Is64Bit() bool {
	return h.PointerBits() == 64
}

// Detect maps the host operating system to its default 64-bit platform.
func (h Host) Detect() (Platform, error) {
	switch goos := NormalizeOS(h.GOOS()); goos {
	case OSWindows:
		return Win64, nil
	case OSLinux:
		return Linux64, nil
	case OSDarwin:
		return Mac64, nil
	default:
		return Unknown, fmt.Errorf("unsupported operating system %q", goos)
	}
}

// String returns a representation of the host as os/arch.
func (h Host) String() string {
	return fmt.Sprintf("%s/%s", h.GOOS(), h.GOARCH())
}

// NormalizeOS normalizes OS names to the Go runtime spelling.
func NormalizeOS(os string) string {
	os = strings.ToLower(strings.TrimSpace(os))
	switch os {
	case "darwin", "macos", "osx":
		return OSDarwin
	case "win", "windows":
		return OSWindows
	default:
		return os
	}
}

// NormalizeArch normalizes architecture names to the Go runtime spelling.
func NormalizeArch(arch string) string {
	arch = strings.ToLower(strings.TrimSpace(arch))
	switch arch {
	case "x86_64", "x64":
		return ArchAMD64
	case "x86", "i386", "i686":
		return Arch386
	case "arm64", "aarch64":
		return ArchARM64
	default:
		return arch
	}
}
