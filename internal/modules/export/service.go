// README: Export service renders an itinerary as plain text or PDF for download.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/phpdave11/gofpdf"

	"wanderplan/internal/modules/markup"
)

const (
	FormatText = "txt"
	FormatPDF  = "pdf"
)

var (
	ErrMissingPlan   = errors.New("Plan is required!")
	ErrUnknownFormat = errors.New("Format must be txt or pdf.")
)

// Request describes one export. Source and Destination only name the file.
type Request struct {
	Plan        string
	Format      string
	Source      string
	Destination string
}

// Document is a rendered export ready to be written to the client.
type Document struct {
	ContentType string
	Filename    string
	Body        []byte
}

// ParseFormat normalizes a requested format; empty means plain text.
func ParseFormat(format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "", FormatText, "text":
		return FormatText, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", ErrUnknownFormat
	}
}

// Render converts sanitized itinerary markup into the requested format.
func Render(req Request) (Document, error) {
	if strings.TrimSpace(req.Plan) == "" {
		return Document{}, ErrMissingPlan
	}
	format, err := ParseFormat(req.Format)
	if err != nil {
		return Document{}, err
	}
	name := FileName(req.Source, req.Destination, format)

	switch format {
	case FormatPDF:
		body, err := renderPDF(req.Plan)
		if err != nil {
			return Document{}, err
		}
		return Document{ContentType: "application/pdf", Filename: name, Body: body}, nil
	default:
		text, err := markup.PlainText(req.Plan)
		if err != nil {
			return Document{}, fmt.Errorf("extract plan text: %w", err)
		}
		return Document{ContentType: "text/plain; charset=utf-8", Filename: name, Body: []byte(text + "\n")}, nil
	}
}

// FileName builds "trip-plan-<source>-to-<destination>.<format>". A plan with no
// known source is a rescheduled one.
func FileName(source, destination, format string) string {
	source = strings.TrimSpace(source)
	if source == "" {
		source = "rescheduled"
	}
	destination = strings.TrimSpace(destination)
	if destination == "" {
		destination = "destination"
	}
	return fmt.Sprintf("trip-plan-%s-to-%s.%s", fileSafe(source), fileSafe(destination), format)
}

// fileSafe replaces path separators and control characters in a filename part.
func fileSafe(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || unicode.IsControl(r) {
			return '-'
		}
		return r
	}, s)
}

var headingSizes = map[int]float64{1: 18, 2: 15, 3: 13, 4: 12}

func renderPDF(plan string) ([]byte, error) {
	blocks, err := markup.Blocks(plan)
	if err != nil {
		return nil, fmt.Errorf("extract plan blocks: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AddPage()
	// Core fonts are cp1252; tr maps the remaining runes into it.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, blk := range blocks {
		text := tr(pdfSafe(blk.Text))
		if strings.TrimSpace(text) == "" {
			continue
		}
		if size, ok := headingSizes[blk.Level]; ok {
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", size)
			pdf.MultiCell(0, size*0.5, text, "", "L", false)
			pdf.Ln(1)
			continue
		}
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 5.5, text, "", "L", false)
		pdf.Ln(1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// pdfSafe drops pictographs and variation selectors the core fonts cannot draw,
// and maps a few currency signs to their codes.
func pdfSafe(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '₹':
			b.WriteString("INR ")
		case r == '\u200d' || unicode.Is(unicode.Variation_Selector, r):
		case r > 0xFFFF || unicode.Is(unicode.So, r):
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
