package rng

import (
	"github.com/safing/portcrypt/config"
)

var (
	rngCipherOption    config.StringOption
	rngHashOption      config.StringOption
	rngPoolsOption     config.IntOption
	rngRateLimitOption config.StringOption
	seedFileOption     config.StringOption

	minFeedEntropy     config.IntOption
	reseedAfterSeconds config.IntOption
	reseedAfterBytes   config.IntOption
)

func registerConfig() error {
	err := config.Register(&config.Option{
		Name:            "RNG Cipher",
		Key:             "random/rng_cipher",
		Description:     "Cipher to use for the Fortuna RNG. Requires restart to take effect.",
		OptType:         config.OptTypeString,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		ReleaseLevel:    config.ReleaseLevelStable,
		RequiresRestart: true,
		ExternalOptType: "string list",
		DefaultValue:    "aes",
		ValidationRegex: "^(aes|serpent|twofish)$",
	})
	if err != nil {
		return err
	}
	rngCipherOption = config.Concurrent.GetAsString("random/rng_cipher", "aes")

	err = config.Register(&config.Option{
		Name:            "RNG Hash",
		Key:             "random/rng_hash",
		Description:     "Hash to use for the Fortuna entropy pools. Requires restart to take effect.",
		OptType:         config.OptTypeString,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		ReleaseLevel:    config.ReleaseLevelStable,
		RequiresRestart: true,
		ExternalOptType: "string list",
		DefaultValue:    "SHA2-256",
		ValidationRegex: "^(SHA2-256|SHA2-512/256|SHA3-256|Blake2s-256|Blake2b-256)$",
	})
	if err != nil {
		return err
	}
	rngHashOption = config.Concurrent.GetAsString("random/rng_hash", "SHA2-256")

	err = config.Register(&config.Option{
		Name:            "RNG Pools",
		Key:             "random/pools",
		Description:     "Number of Fortuna entropy pools. Requires restart to take effect.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		ReleaseLevel:    config.ReleaseLevelStable,
		RequiresRestart: true,
		DefaultValue:    32,
		ValidationRegex: "^([4-9]|[12][0-9]|3[0-2])$",
	})
	if err != nil {
		return err
	}
	rngPoolsOption = config.Concurrent.GetAsInt("random/pools", 32)

	err = config.Register(&config.Option{
		Name:            "RNG Reseed Rate Limit",
		Key:             "random/rate_limit",
		Description:     "How reseeds from pool 0 are rate limited: every n-th attempt (counter) or once per time slot (timed). Requires restart to take effect.",
		OptType:         config.OptTypeString,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		ReleaseLevel:    config.ReleaseLevelStable,
		RequiresRestart: true,
		ExternalOptType: "string list",
		DefaultValue:    "counter",
		ValidationRegex: "^(counter|timed)$",
	})
	if err != nil {
		return err
	}
	rngRateLimitOption = config.Concurrent.GetAsString("random/rate_limit", "counter")

	err = config.Register(&config.Option{
		Name:           "RNG Seed File",
		Key:            "random/seed_file",
		Description:    "File to load the RNG seed from on start and to save it to on stop. Empty disables the seed file.",
		OptType:        config.OptTypeString,
		ExpertiseLevel: config.ExpertiseLevelExpert,
		ReleaseLevel:   config.ReleaseLevelStable,
		DefaultValue:   "",
	})
	if err != nil {
		return err
	}
	seedFileOption = config.Concurrent.GetAsString("random/seed_file", "")

	err = config.Register(&config.Option{
		Name:            "Minimum Feed Entropy",
		Key:             "random/min_feed_entropy",
		Description:     "The minimum amount of entropy before a entropy source is feed to the RNG, in bits.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		ReleaseLevel:    config.ReleaseLevelExperimental,
		DefaultValue:    256,
		ValidationRegex: "^[0-9]{3,5}$",
	})
	if err != nil {
		return err
	}
	minFeedEntropy = config.Concurrent.GetAsInt("random/min_feed_entropy", 256)

	err = config.Register(&config.Option{
		Name:            "Reseed after x seconds",
		Key:             "random/reseed_after_seconds",
		Description:     "Number of seconds until reseed",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		ReleaseLevel:    config.ReleaseLevelExperimental,
		DefaultValue:    360, // six minutes
		ValidationRegex: "^[1-9][0-9]{1,5}$",
	})
	if err != nil {
		return err
	}
	reseedAfterSeconds = config.Concurrent.GetAsInt("random/reseed_after_seconds", 360)

	err = config.Register(&config.Option{
		Name:            "Reseed after x bytes",
		Key:             "random/reseed_after_bytes",
		Description:     "Number of fetched bytes until reseed",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		ReleaseLevel:    config.ReleaseLevelExperimental,
		DefaultValue:    1000000, // one megabyte
		ValidationRegex: "^[1-9][0-9]{2,9}$",
	})
	if err != nil {
		return err
	}
	reseedAfterBytes = config.Concurrent.GetAsInt("random/reseed_after_bytes", 1000000)

	return nil
}
