package sheet

import (
	"bytes"

	"github.com/go-pdf/fpdf"

	"github.com/arcanaland/proxyprint/internal/fault"
	"github.com/arcanaland/proxyprint/internal/util"
)

// PDF renders placements into a portrait Letter document measured in inches.
type PDF struct {
	doc *fpdf.Fpdf
}

// NewPDF returns an empty document.
func NewPDF() *PDF {
	doc := fpdf.New("P", "in", "Letter", "")
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	return &PDF{doc: doc}
}

// AddPage starts a new page.
func (p *PDF) AddPage() error {
	p.doc.AddPage()
	return p.doc.Error()
}

// PlaceImage draws the image file at path into the given rectangle. The same
// path is embedded once no matter how often it is placed.
func (p *PDF) PlaceImage(path string, x, y, w, h float64) error {
	p.doc.ImageOptions(path, x, y, w, h, false, fpdf.ImageOptions{}, 0, "")
	return p.doc.Error()
}

// PageCount returns the number of pages added so far.
func (p *PDF) PageCount() int {
	return p.doc.PageCount()
}

// WriteFile closes the document and writes it to path atomically.
func (p *PDF) WriteFile(path string) error {
	var buf bytes.Buffer
	if err := p.doc.Output(&buf); err != nil {
		return fault.Wrap(fault.CodeIO, "render pdf", err)
	}
	if err := util.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return fault.Wrap(fault.CodeIO, "write "+path, err)
	}
	return nil
}
