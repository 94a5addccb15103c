package benchrunner

import (
	"context"
	"sync"

	"github.com/mongodb/jasper"
	"github.com/pkg/errors"
)

var globalEnv *envState

func init()                       { resetEnv() }
func GetEnvironment() Environment { return globalEnv }

func SetEnvironment(env Environment) { globalEnv = env.(*envState) }

func resetEnv() { globalEnv = &envState{name: "global"} }

// Environment objects provide access to the shared configuration and the
// process manager used to invoke all external tools, in a way that you can
// isolate and test for.
type Environment interface {
	Configure(*RunConfiguration) error

	GetConf() (*RunConfiguration, error)
	Jasper() (jasper.Manager, error)
	Runner() (ProcessRunner, error)
	Close(context.Context) error
}

type envState struct {
	name    string
	conf    *RunConfiguration
	manager jasper.Manager
	runner  ProcessRunner
	mutex   sync.RWMutex
}

func (e *envState) Configure(conf *RunConfiguration) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if err := conf.Validate(); err != nil {
		return errors.WithStack(err)
	}
	e.conf = conf

	manager, err := jasper.NewSynchronizedManager(false)
	if err != nil {
		return errors.Wrap(err, "problem constructing process manager")
	}
	e.manager = manager
	e.runner = NewProcessRunner(manager)

	return nil
}

func (e *envState) GetConf() (*RunConfiguration, error) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	if e.conf == nil {
		return nil, errors.New("configuration is not set")
	}

	// copy the struct so callers cannot mutate the cached configuration
	conf := *e.conf
	return &conf, nil
}

func (e *envState) Jasper() (jasper.Manager, error) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	if e.manager == nil {
		return nil, errors.New("environment is not configured")
	}
	return e.manager, nil
}

func (e *envState) Runner() (ProcessRunner, error) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	if e.runner == nil {
		return nil, errors.New("environment is not configured")
	}
	return e.runner, nil
}

func (e *envState) Close(ctx context.Context) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if e.manager == nil {
		return nil
	}
	return errors.Wrap(e.manager.Close(ctx), "problem closing process manager")
}
