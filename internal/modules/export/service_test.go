package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	cases := map[string]string{"": FormatText, "TXT": FormatText, " text ": FormatText, "pdf": FormatPDF, "PDF": FormatPDF}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("docx"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestRender_MissingPlan(t *testing.T) {
	if _, err := Render(Request{Plan: " \n", Format: FormatPDF}); !errors.Is(err, ErrMissingPlan) {
		t.Fatalf("expected ErrMissingPlan, got %v", err)
	}
}

func TestRender_Text(t *testing.T) {
	doc, err := Render(Request{Plan: "<h2>Day 1</h2><ul><li>Museum</li><li>Dinner</li></ul>", Format: FormatText, Source: "Mumbai", Destination: "Goa"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	body := string(doc.Body)
	if doc.Filename != "trip-plan-Mumbai-to-Goa.txt" || !strings.HasPrefix(doc.ContentType, "text/plain") {
		t.Fatalf("unexpected document %+v", doc)
	}
	for _, want := range []string{"Day 1", "Museum", "Dinner"} {
		if !strings.Contains(body, want) {
			t.Errorf("body %q missing %q", body, want)
		}
	}
}

func TestRender_PDF(t *testing.T) {
	doc, err := Render(Request{Plan: "<h1>Goa 🏖️</h1><p>Breakfast at 8:00 AM, ₹300</p>", Format: FormatPDF})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if doc.Filename != "trip-plan-rescheduled-to-destination.pdf" {
		t.Fatalf("unexpected filename %q", doc.Filename)
	}
	if doc.ContentType != "application/pdf" || !bytes.HasPrefix(doc.Body, []byte("%PDF-")) {
		t.Fatalf("unexpected document %s %q", doc.ContentType, doc.Body[:8])
	}
}

func TestPDFSafe(t *testing.T) {
	cases := []struct{ in, want string }{
		{"🌅 Day 1", "Day 1"},
		{"Tickets ₹500", "Tickets INR 500"},
		{"Beach ☀️ walk", "Beach  walk"},
		{"Café crème", "Café crème"},
		{"👨\u200d👩 family", "family"},
	}
	for _, tc := range cases {
		if got := pdfSafe(tc.in); got != tc.want {
			t.Errorf("pdfSafe(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFileName(t *testing.T) {
	cases := []struct{ source, destination, format, want string }{
		{"Mumbai", "Goa", FormatText, "trip-plan-Mumbai-to-Goa.txt"},
		{" New Delhi ", "Agra", FormatPDF, "trip-plan-New Delhi-to-Agra.pdf"},
		{"", "", FormatText, "trip-plan-rescheduled-to-destination.txt"},
		{"a/b", "c\\d", FormatText, "trip-plan-a-b-to-c-d.txt"},
	}
	for _, tc := range cases {
		if got := FileName(tc.source, tc.destination, tc.format); got != tc.want {
			t.Errorf("FileName(%q, %q) = %q, want %q", tc.source, tc.destination, got, tc.want)
		}
	}
}
