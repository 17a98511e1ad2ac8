// Package bomio reads and writes CycloneDX documents.
package bomio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	cdx "github.com/CycloneDX/cyclonedx-go"
)

// ResolveFormat picks json or xml. "" and "auto" follow the extension of
// path, defaulting to json.
func ResolveFormat(path, format string) (cdx.BOMFileFormat, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "auto":
		if strings.EqualFold(filepath.Ext(path), ".xml") {
			return cdx.BOMFileFormatXML, nil
		}
		return cdx.BOMFileFormatJSON, nil
	case "json":
		return cdx.BOMFileFormatJSON, nil
	case "xml":
		return cdx.BOMFileFormatXML, nil
	default:
		return cdx.BOMFileFormatJSON, fmt.Errorf("unsupported BOM format: %q", format)
	}
}

// ReadBOM reads a BOM from a file.
func ReadBOM(path, format string) (*cdx.BOM, error) {
	fileFmt, err := ResolveFormat(path, format)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bom := new(cdx.BOM)
	if err := cdx.NewBOMDecoder(f, fileFmt).Decode(bom); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return bom, nil
}

// Encode writes bom to w, pretty printed. spec selects a CycloneDX version;
// empty means the library default.
func Encode(w io.Writer, bom *cdx.BOM, fileFmt cdx.BOMFileFormat, spec string) error {
	enc := cdx.NewBOMEncoder(w, fileFmt)
	enc.SetPretty(true)
	if spec == "" {
		return enc.Encode(bom)
	}
	sv, ok := ParseSpecVersion(spec)
	if !ok {
		return fmt.Errorf("unsupported CycloneDX spec version: %q", spec)
	}
	return enc.EncodeVersion(bom, sv)
}

// WriteBOM writes bom to outputPath. An explicit format must agree with the
// file extension.
func WriteBOM(bom *cdx.BOM, outputPath, format, spec string) error {
	fileFmt, err := ResolveFormat(outputPath, format)
	if err != nil {
		return err
	}
	want := ".json"
	if fileFmt == cdx.BOMFileFormatXML {
		want = ".xml"
	}
	if ext := filepath.Ext(outputPath); !strings.EqualFold(ext, want) {
		return fmt.Errorf("output path extension %q does not match format %q", ext, strings.TrimPrefix(want, "."))
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	if err := Encode(f, bom, fileFmt, spec); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ParseSpecVersion accepts "1.4", "1.5" and "1.6"; older versions lack the
// model card fields.
func ParseSpecVersion(s string) (cdx.SpecVersion, bool) {
	switch strings.TrimSpace(s) {
	case "1.4":
		return cdx.SpecVersion1_4, true
	case "1.5":
		return cdx.SpecVersion1_5, true
	case "1.6":
		return cdx.SpecVersion1_6, true
	default:
		return cdx.SpecVersion1_6, false
	}
}
