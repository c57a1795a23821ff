package modules

import "flag"

var (
	// HelpFlag is set by -help. Start returns ErrCleanExit when it is set.
	HelpFlag bool

	exitStatusCode int
)

func init() {
	flag.BoolVar(&HelpFlag, "help", false, "print help")
}

func parseFlags() error {
	if !flag.Parsed() {
		flag.Parse()
	}

	if HelpFlag {
		flag.Usage()
		return ErrCleanExit
	}
	return nil
}

// SetExitStatusCode sets the exit code the program returns after shutdown.
func SetExitStatusCode(n int) {
	exitStatusCode = n
}

// GetExitStatusCode waits for the shutdown to complete and then returns the
// exit code.
func GetExitStatusCode() int {
	<-shutdownCompleteSignal
	return exitStatusCode
}
