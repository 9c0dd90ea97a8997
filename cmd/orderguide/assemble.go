package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/orderguide/internal/export"
	"github.com/jask/orderguide/internal/guide"
	"github.com/jask/orderguide/internal/testdata"
)

type assembleOptions struct {
	sheets     []string
	search     string
	vendor     string
	category   string
	sortColumn string
	descending bool
	format     string
	outDir     string
}

var assembleOpts assembleOptions

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Merge price sheets into an order guide and export it without the wizard",
	Long: `Registers one vendor per --sheet, uploads its CSV, assembles the order
guide, applies the optional filters and sort, and exports the result.

Each --sheet is "NAME|MIN ORDER|path.csv" or "NAME|path.csv". Repeating a
vendor name uploads a replacement sheet for that vendor.`,
	Example: `  orderguide assemble --sheet "GFS|$50 minimum|gfs.csv" --sheet "Sysco|$250 minimum|sysco.csv" --category Meat --sort Price`,
	Args:    cobra.NoArgs,
	RunE:    runAssemble,
}

func init() {
	f := assembleCmd.Flags()
	f.StringArrayVar(&assembleOpts.sheets, "sheet", nil, `Vendor price sheet as "NAME|MIN ORDER|path.csv" (repeatable)`)
	f.StringVar(&assembleOpts.search, "search", "", "Keep rows with a cell containing this text (case-insensitive)")
	f.StringVar(&assembleOpts.vendor, "vendor", "", "Keep only this vendor's rows")
	f.StringVar(&assembleOpts.category, "category", "", "Keep only this category")
	f.StringVar(&assembleOpts.sortColumn, "sort", "", "Sort by this column")
	f.BoolVar(&assembleOpts.descending, "desc", false, "Sort descending")
	f.StringVar(&assembleOpts.format, "format", "", "Export format: csv or sqlite (default from config)")
	f.StringVar(&assembleOpts.outDir, "out", "", "Export directory (default from config)")
}

type sheetSpec struct {
	name     string
	minOrder string
	path     string
}

func parseSheetSpec(raw string) (sheetSpec, error) {
	parts := strings.Split(raw, "|")
	var s sheetSpec
	switch len(parts) {
	case 2:
		s = sheetSpec{name: parts[0], path: parts[1]}
	case 3:
		s = sheetSpec{name: parts[0], minOrder: parts[1], path: parts[2]}
	default:
		return sheetSpec{}, fmt.Errorf("--sheet %q: want NAME|MIN ORDER|path.csv", raw)
	}
	s.name = strings.TrimSpace(s.name)
	s.minOrder = strings.TrimSpace(s.minOrder)
	s.path = strings.TrimSpace(s.path)
	if s.name == "" || s.path == "" {
		return sheetSpec{}, fmt.Errorf("--sheet %q: vendor name and path are required", raw)
	}
	return s, nil
}

func runAssemble(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	opts := assembleOpts
	if len(opts.sheets) == 0 && !demo {
		return errors.New("at least one --sheet is required (or use --demo)")
	}

	sess := newSession()
	if demo {
		if err := testdata.Seed(sess); err != nil {
			return err
		}
	}
	ids := make(map[string]int)
	for _, v := range sess.Vendors() {
		ids[v.Name] = v.ID
	}
	for _, raw := range opts.sheets {
		spec, err := parseSheetSpec(raw)
		if err != nil {
			return err
		}
		id, ok := ids[spec.name]
		if !ok {
			v, _, err := sess.AddVendor(spec.name, spec.minOrder, "")
			if err != nil {
				return err
			}
			id = v.ID
			ids[spec.name] = id
		}
		if _, err := sess.UploadPriceSheetFile(id, spec.path); err != nil {
			return fmt.Errorf("%s: %w", spec.path, err)
		}
	}

	if _, err := sess.GenerateGuide(); err != nil {
		return err
	}
	criteria := guide.Criteria{Search: opts.search, Vendor: opts.vendor, Category: opts.category}
	view, err := sess.View(criteria, opts.sortColumn, opts.descending)
	if err != nil {
		return err
	}

	format, dir := opts.format, opts.outDir
	if format == "" {
		format = cfg.Export.Format
	}
	if dir == "" {
		dir = cfg.Export.Dir
	}
	exporter, err := export.New(format, dir, logger)
	if err != nil {
		return err
	}
	path, err := exporter.Export(ctx, export.Snapshot{
		SessionID:  sess.ID,
		Vendors:    sess.Vendors(),
		Table:      view,
		Criteria:   criteria,
		SortColumn: opts.sortColumn,
		Descending: opts.descending,
		ExportedAt: time.Now(),
	})
	if err != nil {
		return err
	}
	logger.Debug("assemble finished", zap.String("path", path), zap.Int("rows", view.Len()))
	fmt.Fprintln(cmd.OutOrStdout(), path)
	fmt.Fprintf(cmd.OutOrStdout(), "%d rows\n", view.Len())
	return nil
}
