package invoice

import (
	"bytes"
	"testing"
)

func TestPDFRendererRender(t *testing.T) {
	inv := sampleInvoice()

	data, err := NewPDFRenderer(testCompany).Render(&inv)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("Render() output does not start with %%PDF magic")
	}
	if len(data) < 1000 {
		t.Errorf("Render() output suspiciously small: %d bytes", len(data))
	}
}

func TestPDFRendererNilInvoice(t *testing.T) {
	if _, err := NewPDFRenderer(testCompany).Render(nil); err == nil {
		t.Error("Render(nil) expected error, got nil")
	}
}

func TestPDFFilename(t *testing.T) {
	tests := []struct {
		name     string
		facility string
		want     string
	}{
		{"spaces", "Sunshine Healthcare Facility", "INV-202603-4821_Sunshine_Healthcare_Facility.pdf"},
		{"punctuation", "St. Mary's Care & Rehab", "INV-202603-4821_St__Mary_s_Care___Rehab.pdf"},
		{"already clean", "MapleGrove", "INV-202603-4821_MapleGrove.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := sampleInvoice()
			inv.FacilityName = tt.facility
			if got := PDFFilename(&inv); got != tt.want {
				t.Errorf("PDFFilename() = %q, want %q", got, tt.want)
			}
		})
	}
}
