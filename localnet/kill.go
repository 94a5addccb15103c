package localnet

import (
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"
)

// KillResult distinguishes the expected "nothing to kill" condition from a
// termination that actually happened.
type KillResult int

const (
	// ProcessNotRunning means no process with the given name existed.
	ProcessNotRunning KillResult = iota
	// ProcessKilled means at least one matching process was terminated.
	ProcessKilled
)

func (r KillResult) String() string {
	switch r {
	case ProcessKilled:
		return "killed"
	case ProcessNotRunning:
		return "not-running"
	default:
		return "unknown"
	}
}

// KillByName forcefully terminates every process with the given executable
// name. A name that matches nothing is not an error; it reports
// ProcessNotRunning.
func KillByName(name string) (KillResult, error) {
	procs, err := process.Processes()
	if err != nil {
		return ProcessNotRunning, errors.Wrap(err, "problem listing processes")
	}

	catcher := grip.NewBasicCatcher()
	result := ProcessNotRunning
	for _, p := range procs {
		procName, err := p.Name()
		if err != nil {
			// the process may have exited between listing and inspection
			continue
		}
		if procName != name {
			continue
		}

		if err := p.Kill(); err != nil {
			catcher.Add(errors.Wrapf(err, "problem killing pid %d", p.Pid))
			continue
		}
		result = ProcessKilled
	}

	return result, catcher.Resolve()
}
