// Package letterhead loads the fixed background page that every generated
// document is drawn on.
//
// The letterhead is a single-page PDF kept at a fixed path in the deployment.
// It is imported once to read its page geometry; each render then stamps a
// pristine copy of it onto every page of the working document, so that page
// two of a long invoice starts from a clean background rather than from the
// already-annotated first page.
package letterhead

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"
	"github.com/jung-kurt/gofpdf/contrib/gofpdi"
)

var pdfMagic = []byte("%PDF-")

// Template is a loaded letterhead: its source path and page geometry in
// points. A Template is immutable and safe to share between concurrent
// renders; each render obtains its own Stamper.
type Template struct {
	path   string
	width  float64
	height float64
}

// LoadError reports a missing or unreadable letterhead file. This is fatal
// for every render that needs the template and usually indicates a
// deployment or packaging defect.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("letterhead: loading %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads the letterhead at path and returns its template. It fails with
// a *LoadError if the file is missing, unreadable, or not a parsable PDF.
func Load(path string) (*Template, error) {
	header := make([]byte, len(pdfMagic))
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	_, err = io.ReadFull(f, header)
	f.Close()
	if err != nil || !bytes.Equal(header, pdfMagic) {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("not a PDF file")}
	}

	w, h, err := probeGeometry(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if w <= 0 || h <= 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("page has no /MediaBox dimensions")}
	}
	return &Template{path: path, width: w, height: h}, nil
}

// PageWidth returns the letterhead page width in points.
func (t *Template) PageWidth() float64 { return t.width }

// PageHeight returns the letterhead page height in points.
func (t *Template) PageHeight() float64 { return t.height }

// Path returns the backing file path.
func (t *Template) Path() string { return t.path }

// Stamper returns a function that stamps the letterhead onto the current
// page of pdf. The returned function holds its own importer, so every render
// call must take a fresh Stamper; the Template itself stays untouched.
func (t *Template) Stamper() func(pdf *gofpdf.Fpdf) {
	imp := gofpdi.NewImporter()
	tplID := 0
	return func(pdf *gofpdf.Fpdf) {
		defer func() {
			if r := recover(); r != nil {
				pdf.SetError(fmt.Errorf("letterhead: stamping %s: %v", t.path, r))
			}
		}()
		if tplID == 0 {
			tplID = imp.ImportPage(pdf, t.path, 1, "/MediaBox")
		}
		imp.UseImportedTemplate(pdf, tplID, 0, 0, t.width, t.height)
	}
}

// probeGeometry imports page 1 into a throwaway document to read the page
// size. gofpdi panics on malformed input, so the panic is converted into an
// error here.
func probeGeometry(path string) (w, h float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parsing PDF: %v", r)
		}
	}()

	probe := gofpdf.New("P", "pt", "A4", "")
	imp := gofpdi.NewImporter()
	imp.ImportPage(probe, path, 1, "/MediaBox")
	sizes := imp.GetPageSizes()
	if dims, ok := sizes[1]; ok {
		if mb, ok := dims["/MediaBox"]; ok {
			w = mb["w"]
			h = mb["h"]
		}
	}
	return w, h, probe.Error()
}
