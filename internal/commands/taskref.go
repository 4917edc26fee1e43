package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"todos/internal/service"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Raw     string       // the argument as given
	ID      string       // literal task ID, empty for numbered refs
	Num     int          // 1-based task number
	Mode    service.Mode // list the number refers to, when HasMode
	HasMode bool         // true if a w/t prefix was given
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from the first arg.
//
// Parsing rules:
// 1. All digits → N-th task of the current mode
// 2. w<digits> / t<digits> → N-th task of the Work / Travel list
// 3. Blank or containing whitespace → error: invalid task reference: <ref>
// 4. Otherwise → literal task ID
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}

	arg := args[0]
	if arg == "" || strings.ContainsFunc(arg, unicode.IsSpace) {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
	}

	if isAllDigits(arg) {
		num, err := strconv.Atoi(arg)
		if err != nil {
			// Too long for an int; only a literal ID can match.
			return TaskRef{Raw: arg, ID: arg}, nil
		}
		return TaskRef{Raw: arg, Num: num}, nil
	}

	if len(arg) > 1 && isAllDigits(arg[1:]) {
		var mode service.Mode
		switch arg[0] {
		case 'w':
			mode = service.Work
		case 't':
			mode = service.Travel
		default:
			return TaskRef{Raw: arg, ID: arg}, nil
		}
		num, err := strconv.Atoi(arg[1:])
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{Raw: arg, Num: num, Mode: mode, HasMode: true}, nil
	}

	return TaskRef{Raw: arg, ID: arg}, nil
}

// ResolveTaskRef finds the task a reference points to.
// Numbers count the tasks of a list in collection order. A plain number that
// is out of range is retried as a literal ID, so numeric IDs stay reachable.
func ResolveTaskRef(svc service.Service, ref TaskRef) (service.Task, error) {
	if ref.ID != "" {
		return lookupID(svc, ref.ID)
	}

	var tasks []service.Task
	if ref.HasMode {
		tasks = svc.Tasks().Filter(ref.Mode)
	} else {
		tasks = svc.Visible()
	}
	if ref.Num >= 1 && ref.Num <= len(tasks) {
		return tasks[ref.Num-1], nil
	}
	if !ref.HasMode {
		if task, ok := svc.Get(ref.Raw); ok {
			return task, nil
		}
	}
	return service.Task{}, fmt.Errorf("task number out of range: %d", ref.Num)
}

func lookupID(svc service.Service, id string) (service.Task, error) {
	task, ok := svc.Get(id)
	if !ok {
		return service.Task{}, fmt.Errorf("%w: %s", service.ErrNotFound, id)
	}
	return task, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
