package testdata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jask/orderguide/internal/table"
	"github.com/jask/orderguide/internal/vendor"
)

// Sample is a vendor with the price sheet the demo uploads for it.
type Sample struct {
	Name     string
	MinOrder string
	Email    string
	Sheet    string
}

// Samples returns the demo vendors in registration order. The sheets differ
// in columns on purpose so the assembled guide shows the column union.
func Samples() []Sample {
	return []Sample{
		{
			Name:     "GFS",
			MinOrder: "$50 minimum",
			Email:    "orders@gfs.example",
			Sheet: `Product name,Category,Pack,Price
Flank steak choice 193 raw ref,Meat,2/6 lb,$12.40
Chicken thigh boneless skinless,Meat,4/10 lb,$2.89
Yellow onion jumbo,Produce,50 lb,$28.50
Shredded mozzarella,Dairy,4/5 lb,$13.15
`,
		},
		{
			Name:     "Sysco",
			MinOrder: "$250 minimum",
			Email:    "orders@sysco.example",
			Sheet: `Product name,Category,Price,Brand
Romaine hearts,Produce,$31.00,Sysco Imperial
Canola oil,Dry Goods,$42.75,Sysco Classic
"Flour, all purpose",Dry Goods,$18.20,Sysco Classic
Heavy cream 40%,Dairy,$4.95,Block & Barrel
`,
		},
		{
			Name:     "Restaurant Depot",
			MinOrder: "No minimum",
			Sheet: `Product name,Category,Price,Unit
Ground beef 80/20,Meat,$3.79,lb
Roma tomatoes,Produce,$1.29,lb
Parmesan wedge,Dairy,$8.99,lb
`,
		},
	}
}

// Seeder is the part of a session the demo seed needs.
type Seeder interface {
	AddVendor(name, minOrder, email string) (vendor.Vendor, []vendor.Vendor, error)
	UploadPriceSheet(vendorID int, raw []byte) (table.Table, error)
}

// Seed registers every sample vendor and uploads its sheet.
func Seed(s Seeder) error {
	for _, sample := range Samples() {
		v, _, err := s.AddVendor(sample.Name, sample.MinOrder, sample.Email)
		if err != nil {
			return fmt.Errorf("seed vendor %s: %w", sample.Name, err)
		}
		if _, err := s.UploadPriceSheet(v.ID, []byte(sample.Sheet)); err != nil {
			return fmt.Errorf("seed price sheet %s: %w", sample.Name, err)
		}
	}
	return nil
}

// WriteSheets writes each sample sheet to dir as <name>.csv and returns the paths.
func WriteSheets(dir string) (map[string]string, error) {
	out := make(map[string]string)
	for _, sample := range Samples() {
		path := filepath.Join(dir, strings.ReplaceAll(strings.ToLower(sample.Name), " ", "-")+".csv")
		if err := os.WriteFile(path, []byte(sample.Sheet), 0o644); err != nil {
			return nil, err
		}
		out[sample.Name] = path
	}
	return out, nil
}
