package modules

import (
	"context"
	"fmt"

	"github.com/safing/portcrypt/log"
)

type eventHookFn func(context.Context, interface{}) error

type eventHook struct {
	description   string
	hookingModule *Module
	hookFn        eventHookFn
}

func (h *eventHook) name(source *Module, event string) string {
	return fmt.Sprintf("event hook %s/%s -> %s/%s", source.Name, event, h.hookingModule.Name, h.description)
}

// TriggerEvent executes all hook functions registered to the specified event.
// Nothing happens while the module is offline or stopping.
func (m *Module) TriggerEvent(event string, data interface{}) {
	if m.OnlineSoon() {
		go m.processEventTrigger(event, data)
	}
}

func (m *Module) processEventTrigger(event string, data interface{}) {
	m.eventHooksLock.RLock()
	defer m.eventHooksLock.RUnlock()

	hooks, ok := m.eventHooks[event]
	if !ok {
		log.Warningf(`%s: tried to trigger non-existent event "%s"`, m.Name, event)
		return
	}

	log.Tracef("%s: triggering event %s for %d hooks", m.Name, event, len(hooks))
	for _, hook := range hooks {
		if hook.hookingModule.OnlineSoon() {
			go m.runEventHook(hook, event, data)
		}
	}
}

// waitForStart waits until target is online. It returns false if either
// module stops first.
func waitForStart(target, other *Module) bool {
	if target.Status() == StatusOnline {
		return true
	}
	select {
	case <-target.StartCompleted():
		return true
	case <-target.Stopping():
	case <-other.Stopping():
	}
	return false
}

func (m *Module) runEventHook(hook *eventHook, event string, data interface{}) {
	if !waitForStart(m, hook.hookingModule) ||
		!waitForStart(hook.hookingModule, m) {
		return
	}

	err := hook.hookingModule.RunWorker(hook.name(m, event), func(ctx context.Context) error {
		return hook.hookFn(ctx, data)
	})
	if err != nil {
		log.Warningf("%s: failed to execute %s: %s", hook.hookingModule.Name, hook.name(m, event), err)
	}
}

// RegisterEvent registers a new event to allow for registering hooks.
func (m *Module) RegisterEvent(event string) {
	m.eventHooksLock.Lock()
	defer m.eventHooksLock.Unlock()

	if _, ok := m.eventHooks[event]; !ok {
		m.eventHooks[event] = make([]*eventHook, 0, 1)
	}
}

// RegisterEventHook registers a hook function with an event of this or
// another module. Hooks of modules that have not fully started yet are delayed
// until the start completed.
func (m *Module) RegisterEventHook(module string, event string, description string, fn func(context.Context, interface{}) error) error {
	eventModule := m
	if module != m.Name {
		// called from prep functions, while Start holds modulesLock
		target, ok := modules[module]
		if !ok {
			return fmt.Errorf(`module "%s" does not exist`, module)
		}
		eventModule = target
	}

	eventModule.eventHooksLock.Lock()
	defer eventModule.eventHooksLock.Unlock()

	hooks, ok := eventModule.eventHooks[event]
	if !ok {
		return fmt.Errorf(`event "%s/%s" does not exist`, eventModule.Name, event)
	}
	eventModule.eventHooks[event] = append(hooks, &eventHook{
		description:   description,
		hookingModule: m,
		hookFn:        fn,
	})
	return nil
}
