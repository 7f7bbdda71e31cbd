// Package csvio reads and writes the record spreadsheets: BOM-prefixed CSV
// exports, the student import template, and XLSX through excelize.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
	"github.com/yigit/unirecords/internal/pkg/helpers"
)

// BOM makes spreadsheet programs read the file as UTF-8.
const BOM = "\uFEFF"

// MaxUploadSize is the largest import file accepted.
const MaxUploadSize = 10 << 20

// TemplateFileName is the name of the import template download.
const TemplateFileName = "template_students.csv"

// Format of an export file
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "csv" and "xlsx"; anything else is an error.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", apperrors.NewBadRequestError(fmt.Sprintf("unsupported export format %q", s))
	}
}

// Column headers
var (
	StudentHeader  = []string{"รหัสนักศึกษา", "ชื่อ", "นามสกุล", "คณะ", "สาขา", "ชั้นปี", "อีเมล", "เบอร์โทร", "ที่อยู่", "สถานะ"}
	AlumniHeader   = []string{"รหัส", "ชื่อ", "นามสกุล", "คณะ", "สาขา", "ปีที่จบ", "สถานที่ทำงาน", "ตำแหน่ง", "ติดต่อ"}
	ProjectHeader  = []string{"รหัสโปรเจค", "ชื่อ (TH)", "ชื่อ (EN)", "อาจารย์ที่ปรึกษา", "ปี", "ประเภท", "สถานะ", "รางวัล"}
	TemplateHeader = []string{"รหัสนักศึกษา", "ชื่อ", "นามสกุล", "คณะ", "สาขา", "ชั้นปี", "อีเมล", "เบอร์โทร", "สถานะ", "รหัสผ่าน"}
)

const templateExample = "66100001,สมชาย,ใจดี,คณะวิทยาศาสตร์,สาขาวิทยาการคอมพิวเตอร์,1,somchai@sskru.ac.th,0812345678,Active,123456"

// ExportFileName returns "<kind>_YYYY-MM-DD.<ext>".
func ExportFileName(kind string, format Format, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", kind, helpers.DateStamp(now), format)
}

// StudentRows builds the export table, header first.
func StudentRows(students []models.Student) [][]string {
	rows := [][]string{StudentHeader}
	for _, s := range students {
		rows = append(rows, []string{
			s.StudentID, s.FirstName, s.LastName, s.Faculty, s.Department,
			strconv.Itoa(s.Year), s.Email, s.Phone, s.Address, string(s.Status),
		})
	}
	return rows
}

// AlumniRows builds the export table, header first.
func AlumniRows(alumni []models.Alumni) [][]string {
	rows := [][]string{AlumniHeader}
	for _, a := range alumni {
		rows = append(rows, []string{
			a.AlumniID, a.FirstName, a.LastName, a.Faculty, a.Department,
			strconv.Itoa(a.GraduationYear), a.Workplace, a.Position, a.ContactInfo,
		})
	}
	return rows
}

// ProjectRows builds the export table, header first.
func ProjectRows(projects []models.Project) [][]string {
	rows := [][]string{ProjectHeader}
	for _, p := range projects {
		award := "-"
		if p.HasAward {
			award = "ได้รับรางวัล"
		}
		rows = append(rows, []string{
			p.ProjectID, p.TitleTH, p.TitleEN, p.Advisor, strconv.Itoa(p.Year),
			p.Type.Label(), string(p.Status), award,
		})
	}
	return rows
}

// Write encodes rows in the given format.
func Write(w io.Writer, format Format, sheet string, rows [][]string) error {
	if format == FormatXLSX {
		return WriteXLSX(w, sheet, rows)
	}
	return WriteCSV(w, rows)
}

// WriteCSV writes a BOM followed by rows. Fields containing commas or quotes
// are quoted.
func WriteCSV(w io.Writer, rows [][]string) error {
	if _, err := io.WriteString(w, BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteXLSX writes rows to a single-sheet workbook.
func WriteXLSX(w io.Writer, sheet string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("cell %d,%d: %w", c+1, r+1, err)
			}
			if err := f.SetCellStr(sheet, cell, value); err != nil {
				return fmt.Errorf("set %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// WriteTemplate writes the import template: header and one example row.
func WriteTemplate(w io.Writer) error {
	_, err := io.WriteString(w, BOM+strings.Join(TemplateHeader, ",")+"\n"+templateExample)
	return err
}

// CheckUpload rejects files with the wrong extension or over MaxUploadSize.
func CheckUpload(name string, size int64) error {
	if !AcceptedExtension(name) {
		return apperrors.NewCustomError(apperrors.ErrFileType, "รองรับไฟล์ .csv, .xls, .xlsx เท่านั้น")
	}
	if size > MaxUploadSize {
		return apperrors.NewCustomError(apperrors.ErrFileTooLarge, "ขนาดไฟล์ต้องไม่เกิน 10MB")
	}
	return nil
}

// AcceptedExtension reports whether name ends in .csv, .xls or .xlsx.
func AcceptedExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".xls", ".xlsx":
		return true
	}
	return false
}

// ReadTable reads every row of a CSV or XLSX upload, chosen by extension.
// Values are trimmed and blank lines dropped.
func ReadTable(name string, r io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return readXLSX(r)
	case ".csv":
		return readCSV(r)
	default:
		return nil, apperrors.NewCustomError(apperrors.ErrFileType, "รองรับไฟล์ .csv, .xlsx สำหรับการอ่านข้อมูล")
	}
}

// readCSV decodes UTF-8 (BOM optional) or BOM-marked UTF-16.
func readCSV(r io.Reader) ([][]string, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, apperrors.NewCustomError(fmt.Errorf("%w: %v", apperrors.ErrBadRequest, err), "ไม่สามารถอ่านไฟล์ CSV ได้")
	}
	return cleanRows(records), nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewCustomError(fmt.Errorf("%w: %v", apperrors.ErrBadRequest, err), "ไม่สามารถอ่านไฟล์ Excel ได้")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return cleanRows(rows), nil
}

func cleanRows(records [][]string) [][]string {
	out := make([][]string, 0, len(records))
	for i, rec := range records {
		blank := true
		row := make([]string, len(rec))
		for j, v := range rec {
			v = strings.TrimSpace(v)
			if i == 0 && j == 0 {
				v = strings.TrimPrefix(v, BOM)
			}
			row[j] = v
			if v != "" {
				blank = false
			}
		}
		if !blank {
			out = append(out, row)
		}
	}
	return out
}
