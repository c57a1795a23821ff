package modules

import (
	"errors"
	"fmt"
	"runtime/debug"
)

var errorReportingChannel chan *ModuleError

// Worker types recorded in a ModuleError.
const (
	TypeWorker  = "worker"
	TypeControl = "module-control"
)

// ModuleError wraps a panic that occurred in a worker or a module control
// function, so it can be reported.
type ModuleError struct {
	Message string

	ModuleName string
	WorkerName string
	WorkerType string

	PanicValue interface{}
	StackTrace string
}

func (m *Module) newPanicError(workerName, workerType string, panicValue interface{}) *ModuleError {
	return &ModuleError{
		Message:    fmt.Sprintf("%s: %s %s panicked: %v", m.Name, workerType, workerName, panicValue),
		ModuleName: m.Name,
		WorkerName: workerName,
		WorkerType: workerType,
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
	}
}

// Error returns the string representation of the error.
func (me *ModuleError) Error() string {
	return me.Message
}

// Unwrap returns the panic value if it is an error.
func (me *ModuleError) Unwrap() error {
	err, _ := me.PanicValue.(error)
	return err
}

// Report sends the error to the reporting channel, if one is set and it has
// room.
func (me *ModuleError) Report() {
	if errorReportingChannel != nil {
		select {
		case errorReportingChannel <- me:
		default:
		}
	}
}

// IsPanic returns whether err is or wraps a recovered panic and returns it.
func IsPanic(err error) (bool, *ModuleError) {
	var me *ModuleError
	if errors.As(err, &me) {
		return true, me
	}
	return false, nil
}

// SetErrorReportingChannel sets the channel recovered panics are reported
// through. It can only be set once.
func SetErrorReportingChannel(reportingChannel chan *ModuleError) {
	if errorReportingChannel == nil {
		errorReportingChannel = reportingChannel
	}
}
