// Package sheet places print units on fixed-size pages, nine cards to a
// Letter page, and hands each placement to a rendering primitive.
package sheet

import (
	"fmt"

	"github.com/arcanaland/proxyprint/internal/deck"
)

// Grid geometry in inches. These match standard proxy print dimensions and
// must not drift, or existing printed sheets stop lining up.
const (
	Columns = 3
	Rows    = 3
	PerPage = Columns * Rows

	CardWidth  = 2.5
	CardHeight = 3.5
	OriginX    = 0.5
	OriginY    = 0.25
)

// Renderer is the page-rendering primitive.
type Renderer interface {
	AddPage() error
	PlaceImage(path string, x, y, w, h float64) error
}

// Placement is where one unit lands. Page is 1-based.
type Placement struct {
	Unit   deck.PrintUnit
	Path   string
	Page   int
	Column int
	Row    int
	X, Y   float64
	W, H   float64
}

// Cell returns the 1-based page and grid cell of the i-th unit (0-based).
func Cell(i int) (page, column, row int) {
	return i/PerPage + 1, i % Columns, (i / Columns) % Rows
}

// Plan computes placements for units; paths[i] is the local image of units[i].
func Plan(units []deck.PrintUnit, paths []string) ([]Placement, error) {
	if len(units) != len(paths) {
		return nil, fmt.Errorf("have %d units but %d image paths", len(units), len(paths))
	}
	out := make([]Placement, len(units))
	for i, u := range units {
		page, col, row := Cell(i)
		out[i] = Placement{
			Unit:   u,
			Path:   paths[i],
			Page:   page,
			Column: col,
			Row:    row,
			X:      OriginX + CardWidth*float64(col),
			Y:      OriginY + CardHeight*float64(row),
			W:      CardWidth,
			H:      CardHeight,
		}
	}
	return out, nil
}

// Layout plans units and drives r, starting a page every PerPage units.
func Layout(units []deck.PrintUnit, paths []string, r Renderer) ([]Placement, error) {
	placements, err := Plan(units, paths)
	if err != nil {
		return nil, err
	}
	for i, p := range placements {
		if i%PerPage == 0 {
			if err := r.AddPage(); err != nil {
				return nil, fmt.Errorf("add page %d: %w", p.Page, err)
			}
		}
		if err := r.PlaceImage(p.Path, p.X, p.Y, p.W, p.H); err != nil {
			return nil, fmt.Errorf("place %q on page %d: %w", p.Unit.DisplayName, p.Page, err)
		}
	}
	return placements, nil
}

// Pages returns how many pages n units fill.
func Pages(n int) int {
	return (n + PerPage - 1) / PerPage
}
