package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/orderguide/internal/config"
	"github.com/jask/orderguide/internal/table"
	"github.com/jask/orderguide/internal/testdata"
)

func setupAssemble(t *testing.T) (string, *bytes.Buffer, *cobra.Command) {
	t.Helper()
	logger = zap.NewNop()
	dir := t.TempDir()
	cfg = config.Config{Export: config.ExportConfig{Dir: filepath.Join(dir, "exports"), Format: "csv"}}
	assembleOpts = assembleOptions{}
	demo = false
	t.Cleanup(func() {
		assembleOpts = assembleOptions{}
		demo = false
	})
	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	return dir, out, cmd
}

func TestParseSheetSpec(t *testing.T) {
	s, err := parseSheetSpec(" GFS | $50 minimum | gfs.csv ")
	if err != nil {
		t.Fatalf("parseSheetSpec: %v", err)
	}
	if s.name != "GFS" || s.minOrder != "$50 minimum" || s.path != "gfs.csv" {
		t.Fatalf("spec = %+v", s)
	}

	s, err = parseSheetSpec("Sysco|sysco.csv")
	if err != nil || s.minOrder != "" || s.path != "sysco.csv" {
		t.Fatalf("two-part spec = %+v, %v", s, err)
	}

	for _, bad := range []string{"gfs.csv", "|$5|x.csv", "GFS|$5|", "a|b|c|d"} {
		if _, err := parseSheetSpec(bad); err == nil {
			t.Errorf("parseSheetSpec(%q) should fail", bad)
		}
	}
}

func TestRunAssembleCSV(t *testing.T) {
	dir, out, cmd := setupAssemble(t)
	paths, err := testdata.WriteSheets(dir)
	if err != nil {
		t.Fatal(err)
	}
	assembleOpts.sheets = []string{
		"GFS|$50 minimum|" + paths["GFS"],
		"Sysco|$250 minimum|" + paths["Sysco"],
	}
	assembleOpts.category = "Dairy"
	assembleOpts.sortColumn = "Price"
	assembleOpts.descending = true

	if err := runAssemble(cmd, nil); err != nil {
		t.Fatalf("runAssemble: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || lines[1] != "2 rows" {
		t.Fatalf("output = %q", out.String())
	}
	raw, err := os.ReadFile(lines[0])
	if err != nil {
		t.Fatal(err)
	}
	got, err := table.ParseCSV(raw)
	if err != nil {
		t.Fatal(err)
	}
	if got.Value(0, "Product name") != "Shredded mozzarella" || got.Value(1, "Vendor") != "Sysco" {
		t.Fatalf("unexpected rows: %v", got.Rows)
	}
	if got.Value(0, "Min Order") != "$50 minimum" {
		t.Fatalf("min order = %q", got.Value(0, "Min Order"))
	}
}

func TestRunAssembleDemoSQLite(t *testing.T) {
	dir, out, cmd := setupAssemble(t)
	demo = true
	assembleOpts.format = "sqlite"
	assembleOpts.outDir = filepath.Join(dir, "snapshots")

	if err := runAssemble(cmd, nil); err != nil {
		t.Fatalf("runAssemble: %v", err)
	}
	if !strings.Contains(out.String(), "11 rows") {
		t.Fatalf("output = %q", out.String())
	}
	path := strings.SplitN(out.String(), "\n", 2)[0]
	if filepath.Dir(path) != assembleOpts.outDir || filepath.Ext(path) != ".db" {
		t.Fatalf("export path = %q", path)
	}
}

func TestRunAssembleReplacesRepeatedVendor(t *testing.T) {
	dir, out, cmd := setupAssemble(t)
	first := filepath.Join(dir, "a.csv")
	second := filepath.Join(dir, "b.csv")
	if err := os.WriteFile(first, []byte("Item\nx\ny\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte("Item\nz\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	assembleOpts.sheets = []string{"GFS|" + first, "GFS|" + second}

	if err := runAssemble(cmd, nil); err != nil {
		t.Fatalf("runAssemble: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out.String()), "1 rows") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunAssembleDemoSheetReplacesSeededVendor(t *testing.T) {
	dir, out, cmd := setupAssemble(t)
	demo = true
	sheet := filepath.Join(dir, "gfs.csv")
	if err := os.WriteFile(sheet, []byte("Product name,Price\nBrisket,$5.10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	assembleOpts.sheets = []string{"GFS|" + sheet}
	assembleOpts.vendor = "GFS"

	if err := runAssemble(cmd, nil); err != nil {
		t.Fatalf("runAssemble: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out.String()), "\n1 rows") {
		t.Fatalf("seeded GFS sheet should be replaced, output = %q", out.String())
	}
}

func TestRunAssembleErrors(t *testing.T) {
	dir, _, cmd := setupAssemble(t)
	if err := runAssemble(cmd, nil); err == nil {
		t.Fatal("expected error without sheets")
	}

	bad := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(bad, []byte("a,b\n1,2,3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	assembleOpts.sheets = []string{"GFS|" + bad}
	if err := runAssemble(cmd, nil); err == nil || !strings.Contains(err.Error(), "bad.csv") {
		t.Fatalf("expected parse error naming the file, got %v", err)
	}

	assembleOpts.sheets = []string{"GFS|" + filepath.Join(dir, "missing.csv")}
	if err := runAssemble(cmd, nil); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestRootCommandWiresAssemble(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ORDERGUIDE_CONFIG", "")
	_, _, _ = setupAssemble(t)
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"assemble", "--demo", "--vendor", "Sysco", "--out", filepath.Join(home, "out")})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "4 rows") {
		t.Fatalf("output = %q", out.String())
	}
	if cfg.Export.Format != "csv" {
		t.Fatalf("config not loaded: %+v", cfg.Export)
	}
}

func TestConfigInitWritesLoadableFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ORDERGUIDE_CONFIG", "")
	logger = zap.NewNop()
	var err error
	cfg, err = config.Load()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Export.Format = "sqlite"

	cfgPath = filepath.Join(home, "conf", "orderguide.toml")
	forceInit = false
	t.Cleanup(func() { cfgPath, forceInit = "", false })

	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	if err := runConfigInit(cmd, nil); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if strings.TrimSpace(out.String()) != cfgPath {
		t.Fatalf("output = %q", out.String())
	}
	loaded, err := config.LoadFile(cfgPath)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if loaded.Export.Format != "sqlite" || loaded.UI.GridHeight != cfg.UI.GridHeight {
		t.Fatalf("loaded = %+v", loaded)
	}

	if err := runConfigInit(cmd, nil); err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("expected refusal to overwrite, got %v", err)
	}
	forceInit = true
	if err := runConfigInit(cmd, nil); err != nil {
		t.Fatalf("config init --force: %v", err)
	}
}
