package platform

// Operating systems and architectures as reported by the Go runtime.
const (
	// OSWindows represents the Windows operating system.
	OSWindows = "windows"
	// OSLinux represents the Linux operating system.
	OSLinux = "linux"
	// OSDarwin represents the macOS operating system.
	OSDarwin = "darwin"

	// ArchAMD64 represents the AMD64 (x86_64) architecture.
	ArchAMD64 = "amd64"
	// Arch386 represents the 32-bit x86 architecture.
	Arch386 = "386"
	// ArchARM represents the ARM architecture (32-bit).
	ArchARM = "arm"
	// ArchARM64 represents the ARM64 (AArch64) architecture.
	ArchARM64 = "arm64"
)

// Platform labels as published by the driver catalogs.
const (
	LabelWin32    = "win32"
	LabelWin64    = "win64"
	LabelLinux32  = "linux32"
	LabelLinux64  = "linux64"
	LabelMac32    = "mac32"
	LabelMac64    = "mac64"
	LabelMacArm64 = "mac-arm64"
	LabelMacX64   = "mac-x64"
)

// Family aliases accepted on input. They resolve to the 64-bit platform of
// the family.
const (
	AliasWin   = "win"
	AliasLinux = "linux"
	AliasMac   = "mac"
)

const (
	// DriverName is the base name of the driver binary and of its archives.
	DriverName = "chromedriver"

	driverExt = ".exe"
)
