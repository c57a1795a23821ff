package config

import (
	"fmt"
	"sync/atomic"
)

// Expertise Level constants
const (
	ExpertiseLevelUser      uint8 = 0
	ExpertiseLevelExpert    uint8 = 1
	ExpertiseLevelDeveloper uint8 = 2

	ExpertiseLevelNameUser      = "user"
	ExpertiseLevelNameExpert    = "expert"
	ExpertiseLevelNameDeveloper = "developer"

	expertiseLevelKey = "core/expertiseLevel"
)

var expertiseLevel atomic.Uint32

func registerExpertiseLevelOption() error {
	return Register(&Option{
		Name:        "Expertise Level",
		Key:         expertiseLevelKey,
		Description: "The Expertise Level controls the perceived complexity. Higher settings show more complex options.",

		OptType:        OptTypeString,
		ExpertiseLevel: ExpertiseLevelUser,
		ReleaseLevel:   ReleaseLevelStable,

		DefaultValue: ExpertiseLevelNameUser,

		ExternalOptType: "string list",
		ValidationRegex: fmt.Sprintf("^(%s|%s|%s)$", ExpertiseLevelNameUser, ExpertiseLevelNameExpert, ExpertiseLevelNameDeveloper),
	})
}

// updateExpertiseLevel must be called with the option lock held.
func updateExpertiseLevel(option *Option) {
	switch activeString(option) {
	case ExpertiseLevelNameExpert:
		expertiseLevel.Store(uint32(ExpertiseLevelExpert))
	case ExpertiseLevelNameDeveloper:
		expertiseLevel.Store(uint32(ExpertiseLevelDeveloper))
	default:
		expertiseLevel.Store(uint32(ExpertiseLevelUser))
	}
}

// GetExpertiseLevel returns the current active expertise level.
func GetExpertiseLevel() uint8 {
	return uint8(expertiseLevel.Load())
}
