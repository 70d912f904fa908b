package snaptest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.fractalqb.de/fractalqb/testerr"

	"github.com/ariasnap/ariasnap"
)

func TestRefRepo_Filename(t *testing.T) {
	rr := RefRepo{Dir: GoTestdataDir}
	if f := rr.Filename(t, ""); f != filepath.Join("testdata", t.Name()+StdSuffix) {
		t.Errorf("no-hint filename '%s'", f)
	}
	if f := rr.Filename(t, "after-save"); f != filepath.Join("testdata", t.Name(), "after-save"+StdSuffix) {
		t.Errorf("hint filename '%s'", f)
	}
	if f := rr.Filename(t, "after-save"+StdSuffix); !strings.HasSuffix(f, filepath.Join(t.Name(), "after-save"+StdSuffix)) {
		t.Errorf("suffixed hint filename '%s'", f)
	}
}

func TestFatal_Example(t *testing.T) {
	subj := &ariasnap.AXNode{Children: []*ariasnap.AXNode{
		{Role: "heading", Name: "User Settings", Attrs: map[string]ariasnap.AttrValue{
			"level": ariasnap.NumAttr(1),
		}},
		{Role: "list", Name: "Main Features", Children: []*ariasnap.AXNode{
			{Role: "listitem", Text: "Feature 1"},
			{Role: "listitem", Text: "Feature 2"},
		}},
		{Role: "button", Name: "Save draft 2026-08-29"},
	}}
	// Used to create the initial reference:
	// Record(t, "", subj)
	// Now here comes the test:
	Fatal(t, "", subj)
}

func TestError_missingReference(t *testing.T) {
	cfg := Config{RefFileName: RefRepo{Dir: t.TempDir()}.Filename}
	err := cfg.compare(t, "", &ariasnap.AXNode{})
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("expect missing-reference error, have %v", err)
	}
}

func TestCompare_mismatchCarriesReport(t *testing.T) {
	repo := RefRepo{Dir: t.TempDir()}
	cfg := Config{RefFileName: repo.Filename}
	reffile := repo.Filename(t, "checked page")
	testerr.Shall(os.MkdirAll(filepath.Dir(reffile), 0777)).BeNil(t)
	err := os.WriteFile(reffile, []byte(`- heading "Other"`), 0666)
	testerr.Shall(err).BeNil(t)
	err = cfg.compare(t, "checked page", &ariasnap.AXNode{Children: []*ariasnap.AXNode{
		{Role: "heading", Name: "Wrong"},
	}})
	if err == nil {
		t.Fatal("expect mismatch")
	}
	if !strings.Contains(err.Error(), "checked page") ||
		!strings.Contains(err.Error(), "heading[0]") {
		t.Errorf("report misses context: %s", err)
	}
}
