// Package snapshot compares JSON projections against files under testdata/
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// UpdateEnv rewrites every snapshot instead of comparing when set to "1"
const UpdateEnv = "PRS_UPDATE_SNAPSHOTS"

var (
	funcCountLock sync.Mutex
	funcCount     = make(map[string]int)
)

// ValidateSnapshot compares the JSON encoding of obj with the next snapshot
// file recorded for the calling test. Missing snapshots are written.
// depth is the number of helper frames between the test and this call.
func ValidateSnapshot(t *testing.T, obj interface{}, depth int, msgAndArgs ...interface{}) {
	t.Helper()
	filename := nextFilename(1 + depth)

	expects, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			create(t, filename, obj)
			return
		}

		t.Fatalf("could not read snapshot %s: %v", filename, err)
	}

	if os.Getenv(UpdateEnv) == "1" {
		create(t, filename, obj)
		return
	}

	objJSON, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatalf("could not encode snapshot: %v", err)
	}

	if !assert.Equal(t, strings.Trim(string(expects), "\n"), strings.Trim(string(objJSON), "\n"), msgAndArgs...) {
		t.Logf("snapshot %s", filename)
	}
}

func nextFilename(skip int) string {
	pc, _, _, _ := runtime.Caller(skip + 1)
	funcName := filepath.Base(runtime.FuncForPC(pc).Name())

	funcCountLock.Lock()
	call := funcCount[funcName]
	funcCount[funcName] = call + 1
	funcCountLock.Unlock()

	return filepath.Join("testdata", fmt.Sprintf("%s-%d.json", funcName, call))
}

func create(t *testing.T, filename string, obj interface{}) {
	t.Helper()
	logrus.WithField("filename", filename).Info("writing snapshot file")

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		t.Fatalf("could not create snapshot directory: %v", err)
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		t.Fatalf("could not create snapshot %s: %v", filename, err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(obj); err != nil {
		t.Fatalf("could not write snapshot: %v", err)
	}
}
