package platform

import (
	"strings"

	"github.com/glorpus-work/getdriver/pkg/errutils"
)

var byLabel = map[string]Platform{
	LabelWin32:    Win32,
	LabelWin64:    Win64,
	LabelLinux32:  Linux32,
	LabelLinux64:  Linux64,
	LabelMac32:    Mac32,
	LabelMac64:    Mac64,
	LabelMacArm64: MacArm64,
	LabelMacX64:   MacX64,
	AliasWin:      Win64,
	AliasLinux:    Linux64,
	AliasMac:      Mac64,
}

// ValidLabels returns the accepted platform names, catalog labels first.
func ValidLabels() []string {
	return []string{
		LabelWin32, LabelWin64,
		LabelLinux32, LabelLinux64,
		LabelMac32, LabelMac64, LabelMacArm64, LabelMacX64,
		AliasWin, AliasLinux, AliasMac,
	}
}

// Parse converts a platform label or family alias to a Platform.
func Parse(label string) (Platform, error) {
	if p, ok := byLabel[strings.ToLower(strings.TrimSpace(label))]; ok {
		return p, nil
	}
	return Unknown, errutils.ErrUnknownPlatformWithDetails(label, ValidLabels())
}

// Resolve returns the explicit platform when one is given, otherwise the
// default platform of the host.
func Resolve(explicit string, host Host) (Platform, error) {
	if strings.TrimSpace(explicit) != "" {
		return Parse(explicit)
	}
	p, err := host.Detect()
	if err != nil {
		return Unknown, errutils.Kind(errutils.ErrUnknownPlatform, err)
	}
	return p, nil
}
