// Package excel persists annotated tables to a workbook, one sheet per
// invocation.
package excel

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nvetrov/extrema/pkg/model"
)

// maxSheetName is the workbook format's sheet name length cap
const maxSheetName = 31

// Writer appends annotated tables to a single workbook file. Each call
// writes one new sheet; an existing sheet with the same name is never
// overwritten, the new sheet gets a numeric suffix instead.
type Writer struct {
	path string
}

// NewWriter creates a writer for the given workbook path. The file is
// created on first write.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// WriteSheet writes the full annotated table (original plus derived
// columns) as a new sheet and saves the workbook. Returns the sheet name
// actually used after sanitizing and disambiguation.
func (w *Writer) WriteSheet(name string, a *model.Annotated) (string, error) {
	f, created, err := w.open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	sheet := w.uniqueName(f, sanitizeName(name))
	if _, err := f.NewSheet(sheet); err != nil {
		return "", fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}

	header := a.Header()
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	for i := 0; i < a.Len(); i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		row := a.Row(i)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if created {
		// Drop the default sheet the new workbook started with
		if sheet != "Sheet1" {
			f.DeleteSheet("Sheet1")
		}
		if err := f.SaveAs(w.path); err != nil {
			return "", fmt.Errorf("failed to save workbook: %w", err)
		}
		return sheet, nil
	}

	if err := f.Save(); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return sheet, nil
}

// open loads the workbook, creating a fresh one when the file does not
// exist yet
func (w *Writer) open() (*excelize.File, bool, error) {
	if _, err := os.Stat(w.path); os.IsNotExist(err) {
		return excelize.NewFile(), true, nil
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open workbook: %w", err)
	}
	return f, false, nil
}

// sanitizeName strips characters the sheet name format forbids and caps
// the length
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "/", "")
	if name == "" {
		name = "sheet"
	}
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	return name
}

// uniqueName appends _1, _2, ... until the name is free in the workbook
func (w *Writer) uniqueName(f *excelize.File, base string) string {
	if idx, _ := f.GetSheetIndex(base); idx == -1 {
		return base
	}

	for suffix := 1; ; suffix++ {
		candidate := fmt.Sprintf("%s_%d", base, suffix)
		if len(candidate) > maxSheetName {
			trim := maxSheetName - len(fmt.Sprintf("_%d", suffix))
			candidate = fmt.Sprintf("%s_%d", base[:trim], suffix)
		}
		if idx, _ := f.GetSheetIndex(candidate); idx == -1 {
			return candidate
		}
	}
}
