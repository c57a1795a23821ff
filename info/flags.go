package info

import (
	"flag"
	"fmt"

	"github.com/safing/portcrypt/log"
	"github.com/safing/portcrypt/modules"
)

var showVersion bool

func init() {
	modules.Register("info", prep, nil, nil)

	flag.BoolVar(&showVersion, "version", false, "show version and exit")
}

func prep() error {
	if showVersion {
		fmt.Println(FullVersion())
		return modules.ErrCleanExit
	}

	log.Infof("info: starting %s %s", GetInfo().Name, Version())
	return nil
}
