package java

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"github.com/broady/jbind/jbindgen/ir"
	"github.com/broady/jbind/jbindgen/sink"
	"github.com/broady/jbind/jbindgen/typemap"
)

const testdataImportPath = "github.com/broady/jbind/jbindgen/java/testdata"

// renderTestdataGlue generates the glue for the enums under testdata/enums
// and returns it with the path it is overlaid at, inside testdata/glue.
func renderTestdataGlue(t *testing.T) (string, []byte) {
	t.Helper()
	rgb := func() []ir.EnumItem {
		return []ir.EnumItem{{Name: "Red"}, {Name: "Green"}, {Name: "Blue"}}
	}
	defs := []*ir.EnumDefinition{
		{
			Name:   "Color",
			Native: ir.NativeType{ImportPath: testdataImportPath + "/enums/example", Name: "Color"},
			Items:  rgb(),
		},
		{
			Name:   "Shade",
			Native: ir.NativeType{ImportPath: testdataImportPath + "/enums/item", Name: "Color"},
			Items:  rgb(),
		},
	}

	c := NewContext("com.example", "glue", sink.NewWriteCache(sink.NewMemorySink()), typemap.RejectDuplicates)
	for _, def := range defs {
		_, err := GenerateEnum(context.Background(), c, def)
		require.NoError(t, err)
	}
	src, err := c.Native.Render("jni_glue.go")
	require.NoError(t, err)

	dir, err := filepath.Abs(filepath.Join("testdata", "glue"))
	require.NoError(t, err)
	return filepath.Join(dir, "jni_glue.go"), src
}

func TestGeneratedGlue_TypeChecks(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}
	target, src := renderTestdataGlue(t)

	cfg := &packages.Config{
		Dir: filepath.Dir(target),
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedImports |
			packages.NeedDeps |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
		Overlay: map[string][]byte{target: src},
	}
	pkgs, err := packages.Load(cfg, ".")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	pkg := pkgs[0]
	for _, e := range pkg.Errors {
		t.Errorf("%v", e)
	}
	if t.Failed() {
		t.Logf("generated glue:\n%s", src)
		return
	}
	for _, name := range []string{"ordinalsColor", "ordinalsShade", "objectFromColor", "objectFromShade", "handlesShade"} {
		assert.NotNil(t, pkg.Types.Scope().Lookup(name), name)
	}
}

func TestGeneratedGlue_Runs(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the go command")
	}
	goTool, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go command not found")
	}
	target, src := renderTestdataGlue(t)

	tmp := t.TempDir()
	glue := filepath.Join(tmp, "jni_glue.go")
	require.NoError(t, os.WriteFile(glue, src, 0o644))
	overlay, err := json.Marshal(map[string]map[string]string{"Replace": {target: glue}})
	require.NoError(t, err)
	overlayFile := filepath.Join(tmp, "overlay.json")
	require.NoError(t, os.WriteFile(overlayFile, overlay, 0o644))

	cmd := exec.Command(goTool, "test", "-count=1", "-overlay", overlayFile, "./testdata/glue")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "go test on generated glue:\n%s\nglue:\n%s", out, src)
}
