package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// errorLog gathers failure messages per owner and writes them as
// <owner>.error files once the batch is done.
type errorLog struct {
	mu     sync.Mutex
	owners map[string][]string
}

func newErrorLog() *errorLog {
	return &errorLog{owners: make(map[string][]string)}
}

func (l *errorLog) add(owner, runID, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.owners[owner] = append(l.owners[owner], fmt.Sprintf("[%s] %s", runID, msg))
}

// flush writes one file per owner. Lines are sorted so the files do not
// depend on worker scheduling.
func (l *errorLog) flush(dir string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.owners) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for owner, lines := range l.owners {
		sort.Strings(lines)
		data := strings.Join(lines, "\n") + "\n"
		if err := os.WriteFile(filepath.Join(dir, owner+".error"), []byte(data), 0o644); err != nil {
			return err
		}
	}
	return nil
}
