package modules

import (
	"errors"
	"fmt"
	"os"

	"github.com/tevino/abool"

	"github.com/safing/portcrypt/log"
)

var (
	initialStartCompleted = abool.NewBool(false)
	globalPrepFn          func() error
)

// SetGlobalPrepFn sets a global prep function that is run before all modules.
// This can be used to pre-initialize modules, such as setting the data root
// or api addresses.
func SetGlobalPrepFn(fn func() error) {
	if globalPrepFn == nil {
		globalPrepFn = fn
	}
}

// IsStarting returns whether the initial global start is still in progress.
func IsStarting() bool {
	return !initialStartCompleted.IsSet()
}

// Start prepares and starts all modules in dependency order. On error, the
// caller is expected to call Shutdown to stop the modules that did start.
func Start() error {
	if !modulesLocked.SetToIf(false, true) {
		return errors.New("module system already started")
	}

	modulesLock.Lock()
	err := prepareModules()
	modulesLock.Unlock()
	if err != nil {
		if !errors.Is(err, ErrCleanExit) {
			fmt.Fprintf(os.Stderr, "CRITICAL ERROR: %s\n", err)
		}
		return err
	}

	// start logging
	err = log.Start()
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: failed to start logging: %s\n", err)
		return err
	}

	// start modules
	log.Info("modules: initiating...")
	modulesLock.RLock()
	err = startModules()
	modulesLock.RUnlock()
	if err != nil {
		log.Critical(err.Error())
		return err
	}

	// complete startup
	log.Infof("modules: started %d modules", len(modules))
	initialStartCompleted.Set()

	return nil
}

func prepareModules() error {
	// inter-link modules
	err := initDependencies()
	if err != nil {
		return fmt.Errorf("failed to initialize modules: %w", err)
	}

	// parse flags
	err = parseFlags()
	if err != nil {
		if errors.Is(err, ErrCleanExit) {
			return err
		}
		return fmt.Errorf("failed to parse flags: %w", err)
	}

	// execute global prep fn
	if globalPrepFn != nil {
		err = globalPrepFn()
		if err != nil {
			if errors.Is(err, ErrCleanExit) {
				return err
			}
			return fmt.Errorf("global prep function failed: %w", err)
		}
	}

	// prep modules
	err = runModuleTasks("prep", (*Module).readyToPrep, (*Module).prep)
	if err != nil {
		if errors.Is(err, ErrCleanExit) {
			return err
		}
		return fmt.Errorf("failed to prep module: %w", err)
	}
	return nil
}

func startModules() error {
	return runModuleTasks("start", (*Module).readyToStart, (*Module).start)
}

type report struct {
	module *Module
	err    error
}

// runModuleTasks executes a lifecycle step on all modules, respecting
// dependencies. It must be called with the modules lock held.
func runModuleTasks(step string, readyFn func(*Module) uint8, execFn func(*Module, chan *report)) error {
	var rep *report
	reports := make(chan *report, len(modules))
	execCnt := 0
	reportCnt := 0

	for {
		waiting := 0

		// find modules to exec
		for _, m := range modules {
			switch readyFn(m) {
			case statusNothingToDo:
			case statusWaiting:
				waiting++
			case statusReady:
				execCnt++
				execFn(m, reports)
			}
		}

		if reportCnt < execCnt {
			// wait for reports
			rep = <-reports
			if rep.err != nil {
				if errors.Is(rep.err, ErrCleanExit) {
					return rep.err
				}
				return fmt.Errorf("could not %s module %s: %w", step, rep.module.Name, rep.err)
			}
			reportCnt++
			log.Debugf("modules: %s %s complete", step, rep.module.Name)
		} else {
			// finished
			if waiting > 0 {
				// check for dep loop
				return fmt.Errorf("modules: dependency loop detected, cannot continue")
			}
			return nil
		}
	}
}
