// Package snaptest supports the use of ariasnap in your Go tests. A test
// captures a subject tree, Record writes it as reference text under
// testdata and later runs of Error or Fatal compare fresh captures against
// that file:
//
//	func TestSettingsPage(t *testing.T) {
//		tree := captureSettingsPage(t)
//		snaptest.Fatal(t, "", tree)
//	}
package snaptest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/ariasnap/ariasnap"
)

// When this environment variable is set to a regexp and the name of the
// current test matches, calls to Error or Fatal will record the subject
// tree as new reference data instead of comparing it. E.g.
//
//	ARIASNAP_RECORD=TestSettingsPage go test .
const RecordEnv = "ARIASNAP_RECORD"

// GoTestdataDir is the name of Go's default directory for testdata (see go
// help test).
const GoTestdataDir = "testdata"

const StdSuffix = ".ariasnap"

func Error(t *testing.T, hint string, subj *ariasnap.AXNode) error {
	return defaultConfig.Error(t, hint, subj)
}

func Fatal(t *testing.T, hint string, subj *ariasnap.AXNode) {
	defaultConfig.Fatal(t, hint, subj)
}

func Record(t *testing.T, hint string, subj *ariasnap.AXNode) {
	defaultConfig.Record(t, hint, subj)
}

// RefRepo maps tests to the reference files they compare against.
type RefRepo struct {
	Dir    string
	Suffix string
}

func (rr RefRepo) Filename(t *testing.T, hint string) string {
	suffix := rr.Suffix
	if suffix == "" {
		suffix = StdSuffix
	}
	if hint == "" {
		return filepath.Join(rr.Dir, t.Name()+suffix)
	}
	if strings.HasSuffix(hint, suffix) {
		return filepath.Join(rr.Dir, t.Name(), hint)
	}
	return filepath.Join(rr.Dir, t.Name(), hint+suffix)
}

type Config struct {
	RefFileName     func(t *testing.T, hint string) string
	RecordOverwrite bool
	Snapshot        ariasnap.Snapshot
}

var defaultConfig = Config{
	RefFileName: RefRepo{Dir: GoTestdataDir}.Filename,
}

func (cfg Config) Error(t *testing.T, hint string, subj *ariasnap.AXNode) error {
	if recordTest(t) {
		cfg.Record(t, hint, subj)
		return nil
	}
	err := cfg.compare(t, hint, subj)
	if err != nil {
		t.Error(err)
	}
	return err
}

func (cfg Config) Fatal(t *testing.T, hint string, subj *ariasnap.AXNode) {
	if recordTest(t) {
		cfg.Record(t, hint, subj)
		return
	}
	if err := cfg.compare(t, hint, subj); err != nil {
		t.Fatal(err)
	}
}

func recordTest(t *testing.T) bool {
	rec := os.Getenv(RecordEnv)
	if rec == "" {
		return false
	}
	r, err := regexp.Compile(rec)
	if err != nil {
		t.Logf("snaptest: invalid regexp '%s' in %s, not recording: %s", rec, RecordEnv, err)
		return false
	}
	return r.MatchString(t.Name())
}

func (cfg Config) compare(t *testing.T, hint string, subj *ariasnap.AXNode) error {
	reffile := cfg.RefFileName(t, hint)
	if _, err := os.Stat(reffile); os.IsNotExist(err) {
		t.Logf("to record a reference file run '%[1]s=%[2]s go test -run %[2]s'",
			RecordEnv,
			t.Name(),
		)
		return fmt.Errorf("reference file %s does not exist", reffile)
	}
	ref, err := ariasnap.OpenRefFile(reffile)
	if err != nil {
		return err
	}
	res, err := ariasnap.Match(ref, subj)
	if err != nil {
		return err
	}
	if !res.OK {
		if hint == "" {
			hint = "subject"
		}
		return fmt.Errorf("%s: %s", hint, res)
	}
	return nil
}

func (cfg Config) Record(t *testing.T, hint string, subj *ariasnap.AXNode) {
	reffile := cfg.RefFileName(t, hint)
	if _, err := os.Stat(reffile); !os.IsNotExist(err) && !cfg.RecordOverwrite {
		t.Fatalf("record: reference file '%s' already exists", reffile)
	}
	dir := filepath.Dir(reffile)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err = os.MkdirAll(dir, 0777); err != nil {
			t.Fatal(err)
		}
	}
	wr, err := os.Create(reffile)
	if err != nil {
		t.Fatal(err)
	}
	defer wr.Close()
	if err = cfg.Snapshot.Write(wr, subj); err != nil {
		t.Error(err)
	}
	t.Errorf("snaptest recorder wrote: %s", reffile)
}
