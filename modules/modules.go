package modules

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tevino/abool"

	"github.com/safing/portcrypt/log"
)

var (
	modulesLock   sync.RWMutex
	modules       = make(map[string]*Module)
	modulesLocked = abool.New()

	moduleStopTimeout = 3 * time.Second

	// ErrCleanExit is returned by Start() when the program is interrupted before starting. This can happen for example, when using the "--help" flag.
	ErrCleanExit = errors.New("clean exit requested")
)

// Module represents a module.
type Module struct { //nolint:maligned
	sync.RWMutex

	Name string

	// status mgmt
	status uint8

	// failure status
	failureStatus uint8
	failureID     string
	failureTitle  string
	failureMsg    string

	// lifecycle callback functions
	prepFn  func() error
	startFn func() error
	stopFn  func() error

	// lifecycle mgmt
	// start
	startComplete chan struct{}
	// stop
	Ctx          context.Context
	cancelCtx    func()
	stopFlag     *abool.AtomicBool
	stopComplete chan struct{}

	// workers
	workerCnt       *int32
	ctrlFuncRunning *abool.AtomicBool

	// events
	eventHooks     map[string][]*eventHook
	eventHooksLock sync.RWMutex

	// dependency mgmt
	depNames   []string
	depModules []*Module
	depReverse []*Module
}

// StartCompleted returns a channel read that triggers when the module has finished starting.
func (m *Module) StartCompleted() <-chan struct{} {
	m.RLock()
	defer m.RUnlock()
	return m.startComplete
}

// Stopping returns a channel read that triggers when the module has initiated the stop procedure.
func (m *Module) Stopping() <-chan struct{} {
	m.RLock()
	defer m.RUnlock()
	return m.Ctx.Done()
}

// IsStopping returns whether the module has started shutting down. In most cases, you should use Stopping instead.
func (m *Module) IsStopping() bool {
	return m.stopFlag.IsSet()
}

func (m *Module) checkIfStopComplete() {
	if m.stopFlag.IsSet() &&
		atomic.LoadInt32(m.workerCnt) == 0 {
		m.Lock()
		defer m.Unlock()

		if m.stopComplete != nil {
			close(m.stopComplete)
			m.stopComplete = nil
		}
	}
}

func (m *Module) setStatus(status uint8) {
	m.Lock()
	defer m.Unlock()
	m.status = status
}

func (m *Module) prep(reports chan *report) {
	// check and set intermediate status
	m.Lock()
	if m.status != StatusDead {
		m.Unlock()
		go func() {
			reports <- &report{
				module: m,
				err:    fmt.Errorf("module already prepped"),
			}
		}()
		return
	}
	m.status = StatusPreparing
	m.Unlock()

	// run prep function
	go func() {
		err := m.runCtrlFnWithTimeout("prep module", 10*time.Second, m.prepFn)
		if err == nil {
			m.setStatus(StatusOffline)
		}
		reports <- &report{
			module: m,
			err:    err,
		}
	}()
}

func (m *Module) start(reports chan *report) {
	// check and set intermediate status
	m.Lock()
	if m.status != StatusOffline {
		m.Unlock()
		go func() {
			reports <- &report{
				module: m,
				err:    fmt.Errorf("module not offline"),
			}
		}()
		return
	}
	m.status = StatusStarting

	// reset stop management
	if m.cancelCtx != nil {
		// trigger cancel just to be sure
		m.cancelCtx()
	}
	m.Ctx, m.cancelCtx = context.WithCancel(context.Background())
	m.stopFlag.UnSet()
	m.Unlock()

	// run start function
	go func() {
		err := m.runCtrlFnWithTimeout("start module", 60*time.Second, m.startFn)
		m.Lock()
		if err != nil {
			m.status = StatusOffline
		} else {
			m.status = StatusOnline
			// signal start completion
			close(m.startComplete)
		}
		m.Unlock()

		reports <- &report{
			module: m,
			err:    err,
		}
	}()
}

func (m *Module) stop(reports chan *report) {
	// check and set intermediate status
	m.Lock()
	if m.status != StatusOnline {
		m.Unlock()
		go func() {
			reports <- &report{
				module: m,
				err:    fmt.Errorf("module not online"),
			}
		}()
		return
	}
	m.status = StatusStopping

	// reset start management
	m.startComplete = make(chan struct{})
	// init stop management
	m.stopComplete = make(chan struct{})
	stopComplete := m.stopComplete
	m.stopFlag.Set()
	m.cancelCtx()
	m.Unlock()

	go m.stopAllTasks(reports, stopComplete)
}

func (m *Module) stopAllTasks(reports chan *report, stopComplete chan struct{}) {
	// wait for workers
	m.checkIfStopComplete()
	var err error
	select {
	case <-stopComplete:
		// call shutdown function
		err = m.runCtrlFnWithTimeout("stop module", moduleStopTimeout, m.stopFn)
	case <-time.After(moduleStopTimeout):
		log.Warningf(
			"%s: timed out while waiting for workers: workers=%d",
			m.Name,
			atomic.LoadInt32(m.workerCnt),
		)
		err = errors.New("timed out while waiting for module workers to finish")
	}

	// update status
	m.setStatus(StatusOffline)

	// send report
	reports <- &report{
		module: m,
		err:    err,
	}
}

// Register registers a new module. The control functions `prep`, `start` and `stop` are technically optional. `stop` is called _after_ all added module workers finished.
func Register(name string, prep, start, stop func() error, dependencies ...string) *Module {
	if modulesLocked.IsSet() {
		return nil
	}

	newModule := initNewModule(name, prep, start, stop, dependencies...)

	modulesLock.Lock()
	defer modulesLock.Unlock()
	// check for already existing module
	_, ok := modules[name]
	if ok {
		panic(fmt.Sprintf("modules: module %s is already registered", name))
	}
	// add new module
	modules[name] = newModule

	return newModule
}

func initNewModule(name string, prep, start, stop func() error, dependencies ...string) *Module {
	ctx, cancelCtx := context.WithCancel(context.Background())
	var workerCnt int32

	newModule := &Module{
		Name:            name,
		status:          StatusDead,
		prepFn:          prep,
		startFn:         start,
		stopFn:          stop,
		startComplete:   make(chan struct{}),
		Ctx:             ctx,
		cancelCtx:       cancelCtx,
		stopFlag:        abool.NewBool(false),
		workerCnt:       &workerCnt,
		ctrlFuncRunning: abool.NewBool(false),
		eventHooks:      make(map[string][]*eventHook),
		depNames:        dependencies,
	}

	return newModule
}

func initDependencies() error {
	for _, m := range modules {
		for _, depName := range m.depNames {

			// get dependency
			depModule, ok := modules[depName]
			if !ok {
				return fmt.Errorf("module %s declares dependency \"%s\", but this module has not been registered", m.Name, depName)
			}

			// link together
			m.depModules = append(m.depModules, depModule)
			depModule.depReverse = append(depModule.depReverse, m)

		}
	}

	return nil
}
