package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yigit/unirecords/internal/app/auth"
	"github.com/yigit/unirecords/internal/app/models/dto"
	"github.com/yigit/unirecords/internal/csvio"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
	"github.com/yigit/unirecords/internal/pkg/notify"
)

// previewLimit caps the rows printed by import preview.
const previewLimit = 20

func (rt *runtime) importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "import students from a CSV or XLSX file",
		Subcommands: []*cli.Command{
			{
				Name:  "template",
				Usage: "write the CSV import template",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "file path, or - for stdout; defaults to " + csvio.TemplateFileName + " in output.dir"},
				},
				Action: rt.importTemplate,
			},
			{
				Name:      "preview",
				Usage:     "show the rows of a file without uploading it",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: previewLimit},
					jsonFlag(),
				},
				Action: rt.importPreview,
			},
			{
				Name:      "upload",
				Usage:     "upload a file to the student import endpoint",
				ArgsUsage: "<file>",
				Flags:     []cli.Flag{jsonFlag()},
				Action:    rt.importUpload,
			},
		},
	}
}

func (rt *runtime) importTemplate(c *cli.Context) error {
	path := c.String("output")
	if path == "-" {
		return csvio.WriteTemplate(c.App.Writer)
	}
	if path == "" {
		path = filepath.Join(rt.cfg.Output.Dir, csvio.TemplateFileName)
	}
	if err := writeFile(path, csvio.WriteTemplate); err != nil {
		return err
	}
	notify.Success(rt.opts.Notifier, "ดาวน์โหลดเทมเพลตสำเร็จ: "+path)
	return nil
}

// openUpload opens path after checking its extension and size.
func openUpload(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperrors.NewResourceNotFoundError("ไม่พบไฟล์ " + path)
	}
	if err := csvio.CheckUpload(info.Name(), info.Size()); err != nil {
		return nil, err
	}
	return os.Open(path)
}

func (rt *runtime) importPreview(c *cli.Context) error {
	path, err := requireArg(c, "ไฟล์")
	if err != nil {
		return err
	}
	f, err := openUpload(path)
	if err != nil {
		return err
	}
	defer f.Close()

	preview, err := csvio.PreviewFile(path, f)
	if err != nil {
		return err
	}
	out := c.App.Writer
	if c.Bool("json") {
		return writeJSON(out, preview)
	}
	if preview.Empty() {
		fmt.Fprintln(out, mutedStyle.Render("ไม่สามารถแสดงตัวอย่างไฟล์นี้ได้ ไฟล์จะถูกอ่านที่เซิร์ฟเวอร์เมื่ออัปโหลด"))
		return nil
	}

	limit := c.Int("limit")
	rows := make([][]string, 0, min(len(preview.Rows), max(limit, 0)))
	for i, record := range preview.Rows {
		if limit > 0 && i >= limit {
			break
		}
		row := make([]string, len(preview.Headers))
		for j, h := range preview.Headers {
			row[j] = record[h]
		}
		rows = append(rows, row)
	}
	renderTable(out, preview.Headers, rows)
	fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("ทั้งหมด %d แถว แสดง %d แถว", len(preview.Rows), len(rows))))
	return nil
}

func (rt *runtime) importUpload(c *cli.Context) error {
	path, err := requireArg(c, "ไฟล์")
	if err != nil {
		return err
	}
	app, _, err := rt.page(c, auth.NavImport, auth.ImportStudents)
	if err != nil {
		return err
	}
	f, err := openUpload(path)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := app.Data.ImportStudents(c.Context, filepath.Base(path), f)
	if err != nil {
		return reported(err)
	}
	rt.lgr.Info().Str("file", path).Int("imported", res.Imported).Int("skipped", res.Skipped).Msg("Students imported")

	out := c.App.Writer
	if c.Bool("json") {
		return writeJSON(out, res)
	}
	renderFields(out, "ผลการนำเข้า", []field{
		{"ทั้งหมด", strconv.Itoa(res.Total)},
		{"นำเข้าสำเร็จ", strconv.Itoa(res.Imported)},
		{"ข้าม", strconv.Itoa(res.Skipped)},
	})
	writeImportIssues(out, res.ValidationErrors, res.SkippedDetails)
	return nil
}

func writeImportIssues(out io.Writer, errs []dto.ImportRowError, skipped []dto.ImportSkipped) {
	if len(errs) > 0 {
		rows := make([][]string, 0, len(errs))
		for _, e := range errs {
			rows = append(rows, []string{strconv.Itoa(e.Row), e.StudentID, strings.Join(e.Errors, ", ")})
		}
		fmt.Fprintln(out, titleStyle.Render("แถวที่ไม่ถูกต้อง"))
		renderTable(out, []string{"แถว", "รหัสนักศึกษา", "ข้อผิดพลาด"}, rows)
	}
	if len(skipped) > 0 {
		rows := make([][]string, 0, len(skipped))
		for _, s := range skipped {
			rows = append(rows, []string{strconv.Itoa(s.Row), s.StudentID, s.Reason})
		}
		fmt.Fprintln(out, titleStyle.Render("แถวที่ข้าม"))
		renderTable(out, []string{"แถว", "รหัสนักศึกษา", "เหตุผล"}, rows)
	}
}
