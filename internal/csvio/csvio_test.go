package csvio

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
)

func TestExportStudentsCSV(t *testing.T) {
	var buf bytes.Buffer
	students := []models.Student{{
		StudentID: "66100001", FirstName: "สมชาย", LastName: "ใจดี",
		Faculty: "คณะวิทยาศาสตร์", Department: "เคมี", Year: 2,
		Email: "s@university.ac.th", Phone: "0812345678",
		Address: "12 ถนนสุขุมวิท, กรุงเทพ", Status: models.StatusActive,
	}}
	if err := WriteCSV(&buf, StudentRows(students)); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, BOM+"รหัสนักศึกษา,ชื่อ,นามสกุล,คณะ,สาขา,ชั้นปี,อีเมล,เบอร์โทร,ที่อยู่,สถานะ\n") {
		t.Fatalf("unexpected header: %q", out)
	}
	if !strings.Contains(out, `"12 ถนนสุขุมวิท, กรุงเทพ"`) {
		t.Fatalf("address with comma not quoted: %q", out)
	}

	p, err := PreviewFile("students.csv", strings.NewReader(out))
	if err != nil {
		t.Fatalf("PreviewFile: %v", err)
	}
	if len(p.Rows) != 1 || p.Rows[0]["ที่อยู่"] != "12 ถนนสุขุมวิท, กรุงเทพ" || p.Rows[0]["ชั้นปี"] != "2" {
		t.Fatalf("round trip mismatch: %+v", p)
	}
	if p.Headers[0] != "รหัสนักศึกษา" {
		t.Fatalf("BOM not stripped from header: %q", p.Headers[0])
	}
}

func TestProjectRowsLabels(t *testing.T) {
	rows := ProjectRows([]models.Project{
		{ProjectID: "P1", Type: models.ProjectGroup, HasAward: true, Status: models.ProjectApproved, Year: 2024},
		{ProjectID: "P2", Type: models.ProjectIndividual, Status: models.ProjectDraft},
	})
	if rows[1][5] != "กลุ่ม" || rows[1][7] != "ได้รับรางวัล" {
		t.Fatalf("group/award labels wrong: %v", rows[1])
	}
	if rows[2][5] != "เดี่ยว" || rows[2][7] != "-" {
		t.Fatalf("individual labels wrong: %v", rows[2])
	}
}

func TestTemplate(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTemplate(&buf); err != nil {
		t.Fatal(err)
	}
	want := BOM + "รหัสนักศึกษา,ชื่อ,นามสกุล,คณะ,สาขา,ชั้นปี,อีเมล,เบอร์โทร,สถานะ,รหัสผ่าน\n" +
		"66100001,สมชาย,ใจดี,คณะวิทยาศาสตร์,สาขาวิทยาการคอมพิวเตอร์,1,somchai@sskru.ac.th,0812345678,Active,123456"
	if buf.String() != want {
		t.Fatalf("template mismatch:\n%q\n%q", buf.String(), want)
	}
}

func TestPreviewSkipsBlankLinesAndPadsRows(t *testing.T) {
	in := BOM + "a, b ,c\n\n1,2\n  \n4, 5 ,6\n"
	p, err := PreviewFile("students.csv", strings.NewReader(in))
	if err != nil {
		t.Fatalf("PreviewFile: %v", err)
	}
	if len(p.Headers) != 3 || p.Headers[1] != "b" {
		t.Fatalf("headers = %#v", p.Headers)
	}
	if len(p.Rows) != 2 {
		t.Fatalf("rows = %#v", p.Rows)
	}
	if p.Rows[0]["c"] != "" || p.Rows[1]["b"] != "5" {
		t.Fatalf("unexpected values %#v", p.Rows)
	}
}

func TestPreviewEmpty(t *testing.T) {
	p, err := PreviewFile("students.csv", strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if !p.Empty() {
		t.Fatalf("expected empty preview, got %+v", p)
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	rows := AlumniRows([]models.Alumni{{AlumniID: "A1", FirstName: "สมหญิง", GraduationYear: 2022, Workplace: "ธนาคารกสิกรไทย"}})
	if err := WriteXLSX(&buf, "alumni", rows); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	p, err := PreviewFile("alumni.xlsx", bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("PreviewFile: %v", err)
	}
	if len(p.Rows) != 1 || p.Rows[0]["ปีที่จบ"] != "2022" || p.Rows[0]["สถานที่ทำงาน"] != "ธนาคารกสิกรไทย" {
		t.Fatalf("unexpected preview %+v", p)
	}
}

func TestPreviewLegacyXLSIsEmpty(t *testing.T) {
	p, err := PreviewFile("old.xls", strings.NewReader("binary"))
	if err != nil || !p.Empty() {
		t.Fatalf("expected empty preview, got %+v %v", p, err)
	}
}

func TestCheckUpload(t *testing.T) {
	if err := CheckUpload("students.CSV", 1024); err != nil {
		t.Fatalf("csv rejected: %v", err)
	}
	if err := CheckUpload("students.pdf", 10); !errors.Is(err, apperrors.ErrFileType) {
		t.Fatalf("expected file type error, got %v", err)
	}
	if err := CheckUpload("students.xlsx", MaxUploadSize+1); !errors.Is(err, apperrors.ErrFileTooLarge) {
		t.Fatalf("expected size error, got %v", err)
	}
}

func TestExportFileName(t *testing.T) {
	now := time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)
	if got := ExportFileName("students", FormatCSV, now); got != "students_2025-03-09.csv" {
		t.Fatalf("got %q", got)
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Fatal("pdf should be rejected")
	}
}
