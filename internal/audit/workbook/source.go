package workbook

import (
	"archive/zip"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"path"
	"strings"
)

type Format int

const (
	FormatUnknown Format = iota
	FormatXLSX
	FormatXLSB
	FormatXLS
	FormatCSVBundle
)

var FormatNames = map[Format]string{
	FormatUnknown:   "unknown",
	FormatXLSX:      "xlsx",
	FormatXLSB:      "xlsb",
	FormatXLS:       "xls",
	FormatCSVBundle: "csv-zip",
}

func (f Format) String() string {
	return FormatNames[f]
}

var (
	zipMagic  = []byte("PK\x03\x04")
	ole2Magic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// Source is an immutable workbook snapshot shared by every stage of a run.
type Source struct {
	Name   string
	Digest string
	Format Format
	blob   []byte
}

func NewSource(name string, blob []byte) Source {
	sum := sha256.Sum256(blob)
	return Source{
		Name:   name,
		Digest: hex.EncodeToString(sum[:]),
		Format: detectFormat(blob),
		blob:   blob,
	}
}

func (s Source) Size() int {
	return len(s.blob)
}

func detectFormat(blob []byte) Format {
	if bytes.HasPrefix(blob, ole2Magic) {
		return FormatXLS
	}
	if !bytes.HasPrefix(blob, zipMagic) {
		return FormatUnknown
	}

	r, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return FormatUnknown
	}

	hasCSV := false
	for _, f := range r.File {
		switch {
		case f.Name == "xl/workbook.xml":
			return FormatXLSX
		case f.Name == "xl/workbook.bin":
			return FormatXLSB
		case strings.EqualFold(path.Ext(f.Name), ".csv"):
			hasCSV = true
		}
	}
	if hasCSV {
		return FormatCSVBundle
	}
	return FormatUnknown
}
