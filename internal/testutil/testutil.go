package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/geopulse/timeline/internal/osutil"
)

// GoldenTest is a test case whose output is compared against a file in
// testdata.
type GoldenTest interface {
	Output() ([]byte, string)
}

// Golden is a ready-made GoldenTest.
type Golden struct {
	Name     string
	Snapshot []byte
}

func (g Golden) Output() ([]byte, string) {
	return g.Snapshot, g.Name
}

// CompareGoldenFile verifies that the output of an operation matches
// the expected output. Run tests with -update to rewrite golden files.
func CompareGoldenFile(t *testing.T, tc GoldenTest) {
	t.Helper()

	if runtime.GOOS == osutil.Windows {
		// TODO: need to sort out line endings
		t.Skip("skipping golden file test in Windows")
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir("testdata"),
	)

	snap, golden := tc.Output()

	if snap != nil {
		g.Assert(t, golden, snap)
		return
	}

	f := filepath.Join("testdata", golden+".golden")
	if _, err := os.Stat(f); err == nil || errors.Is(err, os.ErrExist) {
		t.Fatalf("expected no output, but golden file exists: %s", f)
	}
}
