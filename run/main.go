package run

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/safing/portcrypt/log"
	"github.com/safing/portcrypt/modules"
)

const (
	forceExitAfter  = 3
	shutdownTimeout = time.Minute
)

var printStackOnExit bool

func init() {
	flag.BoolVar(&printStackOnExit, "print-stack-on-exit", false, "prints the stack before shutting down")
}

// Run executes a full program lifecycle (including signal handling) based on
// modules. Empty-import the required packages and do os.Exit(run.Run()).
func Run() int {
	err := modules.Start()
	if err != nil {
		if errors.Is(err, modules.ErrCleanExit) {
			return 0
		}

		if printStackOnExit {
			printStackTo(os.Stdout)
		}

		modules.SetExitStatusCode(1)
		_ = modules.Shutdown()
		return modules.GetExitStatusCode()
	}

	// catch interrupt for clean shutdown
	signalCh := make(chan os.Signal, 1)
	signal.Notify(
		signalCh,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)

	select {
	case sig := <-signalCh:
		fmt.Printf(" <%s>\n", sig)
		log.Warningf("main: received %s, shutting down", sig)

		go forceExitOnRepeatedSignal(signalCh)
		go func() {
			time.Sleep(shutdownTimeout)
			fmt.Fprintln(os.Stderr, "===== TAKING TOO LONG FOR SHUTDOWN =====")
			printStackTo(os.Stderr)
			os.Exit(1)
		}()

		if printStackOnExit {
			printStackTo(os.Stdout)
		}

		if err := modules.Shutdown(); err != nil {
			modules.SetExitStatusCode(1)
		}

	case <-modules.ShuttingDown():
		// shutdown was triggered from within
	}

	// wait for shutdown to complete, then exit
	return modules.GetExitStatusCode()
}

func forceExitOnRepeatedSignal(signalCh chan os.Signal) {
	remaining := forceExitAfter
	for range signalCh {
		remaining--
		if remaining > 0 {
			fmt.Printf(" <INTERRUPT> again, but already shutting down. %d more to force.\n", remaining)
			continue
		}
		fmt.Fprintln(os.Stderr, "===== FORCED EXIT =====")
		printStackTo(os.Stderr)
		os.Exit(1)
	}
}

func printStackTo(writer io.Writer) {
	fmt.Fprintln(writer, "=== PRINTING TRACES ===")
	fmt.Fprintln(writer, "=== GOROUTINES ===")
	_ = pprof.Lookup("goroutine").WriteTo(writer, 1)
	fmt.Fprintln(writer, "=== BLOCKING ===")
	_ = pprof.Lookup("block").WriteTo(writer, 1)
	fmt.Fprintln(writer, "=== END TRACES ===")
}
