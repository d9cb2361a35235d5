package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/matzehuels/wordcloud/pkg/fonts"
)

// PDFOption configures [RenderPDF].
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	style  Style
	title  string
	author string
}

// WithPDFStyle sets background and palette.
func WithPDFStyle(s Style) PDFOption { return func(r *pdfRenderer) { r.style = s } }

// WithPDFTitle sets the document title metadata.
func WithPDFTitle(title string) PDFOption { return func(r *pdfRenderer) { r.title = title } }

// WithPDFAuthor sets the document author metadata.
func WithPDFAuthor(author string) PDFOption { return func(r *pdfRenderer) { r.author = author } }

// pdfFamily is the name the embedded Go font is registered under.
const pdfFamily = "go"

// RenderPDF renders l on a single page the size of the canvas, one point per
// canvas unit. Text is set in the embedded Go font so any Unicode word
// renders; the layout's family is recorded only as metadata.
func RenderPDF(l Layout, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{style: DefaultStyle(), title: "Word cloud", author: "wordcloud"}
	for _, opt := range opts {
		opt(&r)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return nil, fmt.Errorf("pdf: empty canvas %dx%d", l.Width, l.Height)
	}

	w, h := float64(l.Width), float64(l.Height)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetTitle(r.title, true)
	pdf.SetAuthor(r.author, true)
	pdf.SetSubject(l.FontFamily, true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddUTF8FontFromBytes(pdfFamily, "", fonts.BuiltinTTF(fonts.FamilyGo, fonts.Regular))
	pdf.AddUTF8FontFromBytes(pdfFamily, "B", fonts.BuiltinTTF(fonts.FamilyGo, fonts.Bold))
	pdf.AddPage()

	if bg, ok := r.style.background(); ok {
		pdf.SetFillColor(rgb255(bg))
		pdf.Rect(0, 0, w, h, "F")
	}

	style := ""
	if fonts.ParseWeight(l.FontWeight) == fonts.Bold {
		style = "B"
	}
	for i, word := range l.Words {
		pdf.SetFont(pdfFamily, style, word.Size)
		pdf.SetTextColor(rgb255(r.style.wordColor(i, word.Color)))
		tw := pdf.GetStringWidth(word.Text)

		pdf.TransformBegin()
		// gofpdf rotates counter-clockwise for positive angles.
		pdf.TransformRotate(-degrees(word.Rotate), word.X, word.Y)
		// Baseline sits about a third of the size below the center.
		pdf.Text(word.X-tw/2, word.Y+word.Size*0.35, word.Text)
		pdf.TransformEnd()
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: write: %w", err)
	}
	return buf.Bytes(), nil
}
