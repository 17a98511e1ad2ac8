package bomio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cdx "github.com/CycloneDX/cyclonedx-go"
)

func minimalBOM() *cdx.BOM {
	bom := cdx.NewBOM()
	bom.Metadata = &cdx.Metadata{
		Component: &cdx.Component{
			Type: cdx.ComponentTypeMachineLearningModel,
			Name: "rf_v1",
		},
	}
	return bom
}

func TestParseSpecVersion(t *testing.T) {
	tcs := []struct {
		in   string
		want cdx.SpecVersion
		ok   bool
	}{
		{"1.4", cdx.SpecVersion1_4, true},
		{"1.5", cdx.SpecVersion1_5, true},
		{" 1.6 ", cdx.SpecVersion1_6, true},
		{"1.3", cdx.SpecVersion1_6, false},
		{"", cdx.SpecVersion1_6, false},
		{"nope", cdx.SpecVersion1_6, false},
	}
	for _, tc := range tcs {
		got, ok := ParseSpecVersion(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseSpecVersion(%q) = (%v,%v), want (%v,%v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestResolveFormat(t *testing.T) {
	tcs := []struct {
		path, format string
		want         cdx.BOMFileFormat
		wantErr      bool
	}{
		{"a.json", "", cdx.BOMFileFormatJSON, false},
		{"a.XML", "auto", cdx.BOMFileFormatXML, false},
		{"a.txt", "auto", cdx.BOMFileFormatJSON, false},
		{"a.json", " XML ", cdx.BOMFileFormatXML, false},
		{"a.json", "yaml", cdx.BOMFileFormatJSON, true},
	}
	for _, tc := range tcs {
		got, err := ResolveFormat(tc.path, tc.format)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("ResolveFormat(%q, %q) = %v, %v", tc.path, tc.format, got, err)
		}
	}
}

func TestWriteBOM_RoundTrip(t *testing.T) {
	for _, name := range []string{"bom.json", "bom.xml"} {
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), name)
			if err := WriteBOM(minimalBOM(), out, "auto", "1.6"); err != nil {
				t.Fatalf("WriteBOM: %v", err)
			}
			got, err := ReadBOM(out, "auto")
			if err != nil {
				t.Fatalf("ReadBOM: %v", err)
			}
			if got.Metadata == nil || got.Metadata.Component == nil || got.Metadata.Component.Name != "rf_v1" {
				t.Fatalf("roundtrip lost metadata.component.name")
			}
		})
	}
}

func TestWriteBOM_Errors(t *testing.T) {
	dir := t.TempDir()
	if err := WriteBOM(minimalBOM(), filepath.Join(dir, "bom.json"), "xml", ""); err == nil {
		t.Fatal("expected extension mismatch error")
	}
	if err := WriteBOM(minimalBOM(), filepath.Join(dir, "bom.json"), "json", "0.9"); err == nil {
		t.Fatal("expected unsupported spec version error")
	}
	if err := WriteBOM(minimalBOM(), filepath.Join(dir, "missing", "bom.json"), "json", ""); err == nil {
		t.Fatal("expected create error")
	}
}

func TestReadBOM_Errors(t *testing.T) {
	if _, err := ReadBOM(filepath.Join(t.TempDir(), "missing.json"), "auto"); err == nil {
		t.Fatal("expected error for missing file")
	}

	p := filepath.Join(t.TempDir(), "bom.json")
	if err := os.WriteFile(p, []byte(`{`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := ReadBOM(p, "json"); err == nil {
		t.Fatal("expected decode error for invalid JSON")
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, minimalBOM(), cdx.BOMFileFormatJSON, ""); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(buf.String(), `"name": "rf_v1"`) {
		t.Fatalf("encoded BOM = %s", buf.String())
	}
}
