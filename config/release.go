package config

import (
	"fmt"
	"sync/atomic"
)

// Release Level constants
const (
	ReleaseLevelStable       uint8 = 0
	ReleaseLevelBeta         uint8 = 1
	ReleaseLevelExperimental uint8 = 2

	ReleaseLevelNameStable       = "stable"
	ReleaseLevelNameBeta         = "beta"
	ReleaseLevelNameExperimental = "experimental"

	releaseLevelKey = "core/releaseLevel"
)

var releaseLevel atomic.Uint32

func registerReleaseLevelOption() error {
	return Register(&Option{
		Name:        "Release Level",
		Key:         releaseLevelKey,
		Description: "The Release Level changes which features are available. User values of options above the active release level are ignored.",

		OptType:        OptTypeString,
		ExpertiseLevel: ExpertiseLevelExpert,
		ReleaseLevel:   ReleaseLevelStable,

		DefaultValue: ReleaseLevelNameStable,

		ExternalOptType: "string list",
		ValidationRegex: fmt.Sprintf("^(%s|%s|%s)$", ReleaseLevelNameStable, ReleaseLevelNameBeta, ReleaseLevelNameExperimental),
	})
}

// updateReleaseLevel must be called with the option lock held.
func updateReleaseLevel(option *Option) {
	switch activeString(option) {
	case ReleaseLevelNameBeta:
		releaseLevel.Store(uint32(ReleaseLevelBeta))
	case ReleaseLevelNameExperimental:
		releaseLevel.Store(uint32(ReleaseLevelExperimental))
	default:
		releaseLevel.Store(uint32(ReleaseLevelStable))
	}
}

// GetReleaseLevel returns the current active release level.
func GetReleaseLevel() uint8 {
	return uint8(releaseLevel.Load())
}

// activeString returns the string value in effect, ignoring release levels.
// It must be called with the option lock held.
func activeString(option *Option) string {
	switch {
	case option.activeValue != nil:
		return option.activeValue.stringVal
	case option.activeDefaultValue != nil:
		return option.activeDefaultValue.stringVal
	case option.activeFallbackValue != nil:
		return option.activeFallbackValue.stringVal
	default:
		return ""
	}
}
