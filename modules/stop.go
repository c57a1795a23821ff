package modules

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/tevino/abool"

	"github.com/safing/portcrypt/log"
)

var (
	shutdownSignal         = make(chan struct{})
	shutdownFlag           = abool.NewBool(false)
	shutdownCompleteSignal = make(chan struct{})
)

// IsShuttingDown returns whether the global shutdown is in progress.
func IsShuttingDown() bool {
	return shutdownFlag.IsSet()
}

// ShuttingDown returns a channel read on the global shutdown signal.
func ShuttingDown() <-chan struct{} {
	return shutdownSignal
}

// Shutdown stops all modules in the correct order.
func Shutdown() error {
	// lock mgmt
	if !shutdownFlag.SetToIf(false, true) {
		// shutdown was already issued
		return errors.New("shutdown already initiated")
	}
	close(shutdownSignal)

	if initialStartCompleted.IsSet() {
		log.Warning("modules: starting shutdown...")
	} else {
		log.Warning("modules: aborting, shutting down...")
	}

	modulesLock.RLock()
	err := stopModules()
	modulesLock.RUnlock()
	if err != nil {
		log.Errorf("modules: shutdown completed with errors: %s", err)
	} else {
		log.Info("modules: shutdown complete")
	}

	log.Shutdown()
	close(shutdownCompleteSignal)
	return err
}

// stopModules stops all online modules. Unlike starting, a failing module does
// not abort the procedure. All errors are collected and returned together.
func stopModules() error {
	var errs *multierror.Error
	reports := make(chan *report, len(modules))
	execCnt := 0
	reportCnt := 0

	for {
		waiting := 0

		// find modules to exec
		for _, m := range modules {
			switch m.readyToStop() {
			case statusNothingToDo:
			case statusWaiting:
				waiting++
			case statusReady:
				execCnt++
				m.stop(reports)
			}
		}

		if reportCnt < execCnt {
			// wait for reports
			rep := <-reports
			if rep.err != nil {
				errs = multierror.Append(errs, fmt.Errorf("could not stop module %s: %w", rep.module.Name, rep.err))
			}
			reportCnt++
			log.Debugf("modules: stop %s complete", rep.module.Name)
		} else {
			if waiting > 0 {
				errs = multierror.Append(errs, errors.New("modules: dependency loop detected while stopping"))
			}
			return errs.ErrorOrNil()
		}
	}
}
