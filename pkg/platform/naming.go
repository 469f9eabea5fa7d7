package platform

// Label64 returns the label of the 64-bit build in the JSON catalog. On macOS
// the label depends on the processor unless the caller pinned one.
func (p Platform) Label64(h Host) string {
	switch p {
	case Win32, Win64:
		return LabelWin64
	case Linux32, Linux64:
		return LabelLinux64
	case MacArm64:
		return LabelMacArm64
	case MacX64:
		return LabelMacX64
	case Mac32, Mac64:
		if h.IsArm() {
			return LabelMacArm64
		}
		return LabelMacX64
	case Unknown:
		return ""
	}
	return ""
}

// Label32 returns the label of the 32-bit build, empty when the family has
// none.
func (p Platform) Label32() string {
	switch p.Family() {
	case FamilyWindows:
		return LabelWin32
	case FamilyLinux:
		return LabelLinux32
	case FamilyUnknown, FamilyMac:
		return ""
	}
	return ""
}

// LegacyLabel64 returns the platform suffix of 64-bit archives in the legacy
// storage bucket.
func (p Platform) LegacyLabel64() string {
	switch p.Family() {
	case FamilyWindows:
		return LabelWin64
	case FamilyLinux:
		return LabelLinux64
	case FamilyMac:
		return LabelMac64
	case FamilyUnknown:
		return ""
	}
	return ""
}

// LegacyLabel32 returns the platform suffix of 32-bit archives in the legacy
// storage bucket, empty when the family has none. Old mac32 archives are
// only considered when the caller pinned mac32.
func (p Platform) LegacyLabel32() string {
	if p == Mac32 {
		return LabelMac32
	}
	return p.Label32()
}

// DriverFilename returns the file name of the driver binary.
func (p Platform) DriverFilename() string {
	if p.Family() == FamilyWindows {
		return DriverName + driverExt
	}
	return DriverName
}

// NestedDirs returns, in lookup order, the directories newer archives nest
// the driver in.
func (p Platform) NestedDirs(h Host) []string {
	switch p.Family() {
	case FamilyWindows:
		return []string{DriverName + "-" + LabelWin64, DriverName + "-" + LabelWin32}
	case FamilyLinux:
		return []string{DriverName + "-" + LabelLinux64}
	case FamilyMac:
		return []string{DriverName + "-" + p.Label64(h)}
	case FamilyUnknown:
		return nil
	}
	return nil
}
