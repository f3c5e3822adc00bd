package invoicepdf

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fasehq/invoicepdf/layout"
)

// ColumnWidths are the fixed widths of the line-item table columns in
// points. Column layout is never content-driven.
type ColumnWidths struct {
	Description float64 `yaml:"description"`
	Quantity    float64 `yaml:"quantity"`
	UnitPrice   float64 `yaml:"unitPrice"`
	Total       float64 `yaml:"total"`
}

func (c ColumnWidths) total() float64 {
	return c.Description + c.Quantity + c.UnitPrice + c.Total
}

// Theme holds every layout constant of the engine: margins, font sizes,
// colors, and block dimensions. The defaults match the association's
// letterhead; admin tooling can override individual values from YAML.
type Theme struct {
	Margins layout.Margins `yaml:"margins"`

	FontFamily   string  `yaml:"fontFamily"`
	TitleSize    float64 `yaml:"titleSize"`
	SubtitleSize float64 `yaml:"subtitleSize"`
	BodySize     float64 `yaml:"bodySize"`
	SmallSize    float64 `yaml:"smallSize"`

	HeaderFill    layout.RGB `yaml:"headerFill"`
	DiscountColor layout.RGB `yaml:"discountColor"`
	MutedColor    layout.RGB `yaml:"mutedColor"`

	Columns     ColumnWidths `yaml:"columns"`
	RowHeight   float64      `yaml:"rowHeight"`
	BillToWidth float64      `yaml:"billToWidth"`
	MetaWidth   float64      `yaml:"metaWidth"`

	TotalsWidth      float64 `yaml:"totalsWidth"`
	TotalsHeight     float64 `yaml:"totalsHeight"`
	TotalsDualHeight float64 `yaml:"totalsDualHeight"`
}

// DefaultTheme returns the stock letterhead layout.
func DefaultTheme() Theme {
	return Theme{
		Margins:      layout.Margins{Top: 96, Right: 54, Bottom: 72, Left: 54},
		FontFamily:   "Helvetica",
		TitleSize:    18,
		SubtitleSize: 12,
		BodySize:     10,
		SmallSize:    8,

		HeaderFill:    layout.RGB{R: 235, G: 238, B: 245},
		DiscountColor: layout.RGB{R: 0, G: 128, B: 64},
		MutedColor:    layout.RGB{R: 110, G: 110, B: 110},
		Columns: ColumnWidths{
			Description: 250,
			Quantity:    50,
			UnitPrice:   100,
			Total:       100,
		},
		RowHeight:        28,
		BillToWidth:      250,
		MetaWidth:        150,
		TotalsWidth:      220,
		TotalsHeight:     35,
		TotalsDualHeight: 55,
	}
}

// LoadTheme reads YAML overrides on top of the default theme. Values not
// present in the file keep their defaults.
func LoadTheme(path string) (Theme, error) {
	t := DefaultTheme()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("invoicepdf: reading theme: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("invoicepdf: parsing theme %s: %w", path, err)
	}
	return t, nil
}

// body and bold build fonts in the theme family.
func (t Theme) body(size float64) layout.Font {
	return layout.Font{Family: t.FontFamily, Size: size}
}

func (t Theme) bold(size float64) layout.Font {
	return layout.Font{Family: t.FontFamily, Style: "B", Size: size}
}
