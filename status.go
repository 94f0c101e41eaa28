package framenest

import (
	"fmt"
	"sort"
	"strings"
)

// Status is a diagnostic tool that returns a string describing the state of
// the injector. The result is one line per provider key: its instantiation
// state, how many factories it carries, and whether it is a multi provider.
// Parent injector sections follow, separated by "----".
func (inj *Injector) Status() string {
	lines := make([]string, 0, len(inj.providers))
	for _, rp := range inj.providers {
		state := "uninstantiated"
		if _, busy, ok := inj.cachedInstance(rp.Key); ok {
			if busy {
				state = "instantiating"
			} else {
				state = "instantiated"
			}
		}
		line := fmt.Sprintf("%s - %s - factories: %d", rp.Key.String(), state, len(rp.Factories))
		if rp.Multi {
			line += " - multi"
		}
		lines = append(lines, line)
	}
	sort.Strings(lines)

	result := strings.Builder{}
	result.WriteString(strings.Join(lines, "\n"))

	if inj.parent != nil {
		result.WriteString("\n----\nparent injector:\n")
		result.WriteString(inj.parent.Status())
	}

	return result.String()
}
