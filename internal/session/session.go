// Package session owns every piece of state of one interactive wizard run:
// the vendor registry, the uploaded price sheets and the generated guide.
// A Session is created when the app starts and dropped when it exits.
package session

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/orderguide/internal/guide"
	"github.com/jask/orderguide/internal/pricesheet"
	"github.com/jask/orderguide/internal/table"
	"github.com/jask/orderguide/internal/vendor"
)

// ErrNoPriceSheets is returned when a guide is requested before any upload.
var ErrNoPriceSheets = errors.New("no price sheets uploaded")

// Options tunes a Session. Zero values are usable.
type Options struct {
	Logger             *zap.Logger
	MaxUploadBytes     int64
	InvalidateOnUpload bool
	SimilarityDistance int
	Now                func() time.Time
}

// Session is not safe for concurrent use; the UI drives it from one goroutine.
type Session struct {
	ID        string
	StartedAt time.Time

	opts    Options
	log     *zap.Logger
	vendors *vendor.Registry
	sheets  *pricesheet.Store

	guide       *table.Table
	generatedAt time.Time
	stale       bool
}

func New(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Session{opts: opts}
	s.start()
	return s
}

func (s *Session) start() {
	s.ID = uuid.NewString()
	s.StartedAt = s.opts.Now()
	s.log = s.opts.Logger.With(zap.String("session", s.ID))
	s.vendors = vendor.NewRegistry()
	s.sheets = pricesheet.NewStore()
	s.guide = nil
	s.generatedAt = time.Time{}
	s.stale = false
	s.log.Info("session started")
}

// Reset throws away all vendors, sheets and the guide and starts a new session.
func (s *Session) Reset() {
	s.log.Info("session reset",
		zap.Int("vendors", s.vendors.Len()),
		zap.Int("price_sheets", s.sheets.Len()),
	)
	s.start()
}

// AddVendor registers a vendor. The second result lists already-registered
// vendors with a near-identical name, as a hint for the operator.
func (s *Session) AddVendor(name, minOrder, email string) (vendor.Vendor, []vendor.Vendor, error) {
	v, err := s.vendors.Add(name, minOrder, email)
	if err != nil {
		s.log.Debug("vendor rejected", zap.Error(err))
		return vendor.Vendor{}, nil, err
	}
	similar := s.vendors.Similar(v.Name, v.ID, s.opts.SimilarityDistance)
	s.log.Info("vendor added",
		zap.Int("vendor_id", v.ID),
		zap.String("vendor", v.Name),
		zap.Int("similar", len(similar)),
	)
	return v, similar, nil
}

func (s *Session) Vendors() []vendor.Vendor { return s.vendors.List() }

func (s *Session) Vendor(id int) (vendor.Vendor, bool) { return s.vendors.Get(id) }

func (s *Session) VendorCount() int { return s.vendors.Len() }

func (s *Session) VendorNames() []string { return s.vendors.Names() }

// UploadPriceSheet parses raw as the vendor's price sheet, replacing any
// earlier one. A parse failure leaves the session untouched.
func (s *Session) UploadPriceSheet(vendorID int, raw []byte) (table.Table, error) {
	v, ok := s.vendors.Get(vendorID)
	if !ok {
		return table.Table{}, &guide.UnknownVendorError{VendorID: vendorID}
	}
	if limit := s.opts.MaxUploadBytes; limit > 0 && int64(len(raw)) > limit {
		return table.Table{}, fmt.Errorf("price sheet is %d bytes, limit is %d", len(raw), limit)
	}
	sheet, err := s.sheets.Upload(vendorID, raw)
	if err != nil {
		s.log.Warn("price sheet rejected", zap.Int("vendor_id", vendorID), zap.Error(err))
		return table.Table{}, err
	}
	s.log.Info("price sheet uploaded",
		zap.Int("vendor_id", vendorID),
		zap.String("vendor", v.Name),
		zap.Int("rows", sheet.Len()),
		zap.Int("columns", len(sheet.Columns)),
	)
	if s.guide != nil {
		if s.opts.InvalidateOnUpload {
			s.guide = nil
			s.stale = false
			s.log.Info("order guide discarded after upload")
		} else {
			s.stale = true
		}
	}
	return sheet, nil
}

// UploadPriceSheetFile reads the file at path fully and uploads it.
func (s *Session) UploadPriceSheetFile(vendorID int, path string) (table.Table, error) {
	raw, err := s.ReadPriceSheetFile(path)
	if err != nil {
		return table.Table{}, err
	}
	return s.UploadPriceSheet(vendorID, raw)
}

// ReadPriceSheetFile loads a candidate upload without touching session state,
// so it may run off the UI goroutine.
func (s *Session) ReadPriceSheetFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open price sheet: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if limit := s.opts.MaxUploadBytes; limit > 0 && info.Size() > limit {
		return nil, fmt.Errorf("price sheet is %d bytes, limit is %d", info.Size(), limit)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read price sheet: %w", err)
	}
	return raw, nil
}

func (s *Session) HasPriceSheet(vendorID int) bool { return s.sheets.Has(vendorID) }

func (s *Session) PriceSheetSize(vendorID int) int { return s.sheets.SizeOf(vendorID) }

func (s *Session) PriceSheetCount() int { return s.sheets.Len() }

// GenerateGuide rebuilds the order guide from scratch from every stored sheet.
func (s *Session) GenerateGuide() (table.Table, error) {
	if s.sheets.Len() == 0 {
		return table.Table{}, ErrNoPriceSheets
	}
	g, err := guide.Assemble(s.vendors, s.sheets)
	if err != nil {
		s.log.Error("order guide assembly failed", zap.Error(err))
		return table.Table{}, fmt.Errorf("generate order guide: %w", err)
	}
	s.guide = &g
	s.generatedAt = s.opts.Now()
	s.stale = false
	s.log.Info("order guide generated",
		zap.Int("rows", g.Len()),
		zap.Int("columns", len(g.Columns)),
		zap.Int("price_sheets", s.sheets.Len()),
	)
	return g, nil
}

// Guide returns the last generated guide. Callers must not modify it.
func (s *Session) Guide() (table.Table, bool) {
	if s.guide == nil {
		return table.Table{}, false
	}
	return *s.guide, true
}

func (s *Session) HasGuide() bool { return s.guide != nil }

// GuideStale reports whether a sheet was uploaded after the guide was generated.
func (s *Session) GuideStale() bool { return s.stale }

func (s *Session) GeneratedAt() time.Time { return s.generatedAt }

// View filters the guide and, when sortColumn is set, sorts the result.
func (s *Session) View(c guide.Criteria, sortColumn string, descending bool) (table.Table, error) {
	g, ok := s.Guide()
	if !ok {
		return table.Table{}, errors.New("order guide has not been generated")
	}
	out := guide.Filter(g, c)
	if sortColumn == "" {
		return out, nil
	}
	return guide.Sort(out, sortColumn, descending)
}

// Categories lists the category choices of the current guide.
func (s *Session) Categories() []string {
	g, ok := s.Guide()
	if !ok {
		return nil
	}
	return guide.Categories(g)
}
