package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-ps"
)

// DoctorCmd runs basic health checks: data file accessibility and whether
// another habitflow process is already running. The store assumes
// single-process access, so a second instance risks lost writes.
type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("habitflow doctor")
	fmt.Println()

	path := ctx.Store.Path()
	if info, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("  data file: %s (not created yet, will be written on first change)\n", path)
		} else {
			fmt.Printf("  data file: %s (UNREADABLE: %v)\n", path, err)
		}
	} else {
		fmt.Printf("  data file: %s (%d bytes)\n", path, info.Size())
	}

	others, err := otherInstances()
	if err != nil {
		ctx.Logger.Warn("process scan failed", "err", err)
		fmt.Printf("  process check: skipped (%v)\n", err)
		return nil
	}
	if len(others) == 0 {
		fmt.Println("  process check: no other habitflow instance running")
	} else {
		fmt.Printf("  process check: WARNING, %d other instance(s) running (pids %v)\n", len(others), others)
		fmt.Println("  concurrent instances can overwrite each other's saves")
	}
	return nil
}

// otherInstances finds habitflow processes other than this one.
func otherInstances() ([]int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return nil, err
	}

	self := filepath.Base(os.Args[0])
	var pids []int
	for _, p := range procs {
		if p.Pid() == os.Getpid() {
			continue
		}
		name := p.Executable()
		if name == self || strings.HasPrefix(name, "habitflow") {
			pids = append(pids, p.Pid())
		}
	}
	return pids, nil
}
