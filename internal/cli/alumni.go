package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yigit/unirecords/internal/app/auth"
	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/app/views"
	"github.com/yigit/unirecords/internal/bootstrap"
	"github.com/yigit/unirecords/internal/csvio"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
	"github.com/yigit/unirecords/internal/pkg/notify"
	"github.com/yigit/unirecords/internal/portfolio"
)

const msgFontNoThai = "ฟอนต์ที่ใช้ไม่รองรับภาษาไทย ตั้งค่า output.font_path เป็นไฟล์ฟอนต์ไทย (TTF/OTF) เพื่อให้ข้อความแสดงถูกต้อง"

func alumniFilterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "match first name, last name or workplace"},
		&cli.StringFlag{Name: "faculty"},
		&cli.IntFlag{Name: "year", Usage: "graduation year"},
	}
}

func alumniFilter(c *cli.Context) views.AlumniFilter {
	return views.AlumniFilter{
		Search:  c.String("search"),
		Faculty: c.String("faculty"),
		Year:    c.Int("year"),
	}
}

func alumniFormFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "alumni-id"},
		&cli.StringFlag{Name: "first-name"},
		&cli.StringFlag{Name: "last-name"},
		&cli.StringFlag{Name: "faculty"},
		&cli.StringFlag{Name: "department"},
		&cli.IntFlag{Name: "graduation-year"},
		&cli.StringFlag{Name: "employment", Value: string(models.EmploymentSeeking), Usage: "employed or seeking"},
		&cli.StringFlag{Name: "workplace", Usage: "required when employed"},
		&cli.StringFlag{Name: "position"},
		&cli.StringFlag{Name: "contact-info"},
		&cli.StringFlag{Name: "portfolio", Usage: "portfolio website"},
		&cli.StringFlag{Name: "photo-url"},
		&cli.StringFlag{Name: "about"},
		&cli.StringFlag{Name: "email"},
		&cli.StringFlag{Name: "address"},
		&cli.StringFlag{Name: "phone"},
		&cli.StringSliceFlag{Name: "skill", Usage: "repeatable"},
		&cli.StringSliceFlag{Name: "education", Usage: `repeatable "years|institution|address|grade"`},
		&cli.StringSliceFlag{Name: "experience", Usage: `repeatable "years|company|position"`},
		&cli.StringSliceFlag{Name: "field", Usage: `repeatable "label=value" shown on the portfolio`},
	}
}

// pipeParts splits s on "|" into exactly n trimmed parts.
func pipeParts(s string, n int) []string {
	parts := strings.SplitN(s, "|", n)
	for len(parts) < n {
		parts = append(parts, "")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func applyAlumniFlags(c *cli.Context, a *models.Alumni, all bool) {
	set := func(name string) bool { return all || c.IsSet(name) }
	str := func(name string, dst *string) {
		if set(name) {
			*dst = c.String(name)
		}
	}
	str("alumni-id", &a.AlumniID)
	str("first-name", &a.FirstName)
	str("last-name", &a.LastName)
	str("faculty", &a.Faculty)
	str("department", &a.Department)
	str("workplace", &a.Workplace)
	str("position", &a.Position)
	str("contact-info", &a.ContactInfo)
	str("portfolio", &a.Portfolio)
	str("photo-url", &a.PhotoURL)
	str("about", &a.AboutMe)
	str("email", &a.Email)
	str("address", &a.Address)
	str("phone", &a.Phone)
	if set("graduation-year") {
		a.GraduationYear = c.Int("graduation-year")
	}
	if set("employment") {
		a.EmploymentStatus = models.EmploymentStatus(c.String("employment"))
	}
	if set("skill") {
		a.Skills = nil
		for _, s := range c.StringSlice("skill") {
			if s = strings.TrimSpace(s); s != "" {
				a.Skills = append(a.Skills, s)
			}
		}
	}
	if set("education") {
		a.Education = nil
		for _, e := range c.StringSlice("education") {
			p := pipeParts(e, 4)
			a.Education = append(a.Education, models.EducationEntry{Years: p[0], Institution: p[1], Address: p[2], Grade: p[3]})
		}
	}
	if set("experience") {
		a.Experience = nil
		for _, e := range c.StringSlice("experience") {
			p := pipeParts(e, 3)
			a.Experience = append(a.Experience, models.ExperienceEntry{Years: p[0], Company: p[1], Position: p[2]})
		}
	}
	if set("field") {
		a.CustomFields = nil
		for _, f := range c.StringSlice("field") {
			label, value, _ := strings.Cut(f, "=")
			a.CustomFields = append(a.CustomFields, models.CustomField{Label: strings.TrimSpace(label), Value: strings.TrimSpace(value)})
		}
	}
}

func alumniKeys(a models.Alumni) []string { return []string{a.ID, a.AlumniID} }

// lookupAlumni resolves the argument within the records visible to user. An
// alumni user may omit it to get their own record.
func lookupAlumni(c *cli.Context, app *bootstrap.App, user *models.User) (models.Alumni, error) {
	visible := views.ScopeAlumni(user, app.Data.Alumni())
	key := strings.TrimSpace(c.Args().First())
	if key == "" {
		if a, ok := views.MyAlumniRecord(user, visible); ok {
			return a, nil
		}
		return models.Alumni{}, apperrors.NewBadRequestError("กรุณาระบุรหัสศิษย์เก่า")
	}
	return find(visible, key, alumniKeys, "ศิษย์เก่า")
}

func (rt *runtime) alumniCommand() *cli.Command {
	return &cli.Command{
		Name:  "alumni",
		Usage: "browse alumni and their portfolios",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list alumni visible to you",
				Flags:  append(alumniFilterFlags(), jsonFlag()),
				Action: rt.listAlumni,
			},
			{
				Name:      "show",
				Usage:     "show one alumni record; alumni may omit the id to see their own",
				ArgsUsage: "[id|alumni-id]",
				Flags:     []cli.Flag{jsonFlag()},
				Action:    rt.showAlumni,
			},
			{
				Name:   "add",
				Usage:  "add an alumni record",
				Flags:  alumniFormFlags(),
				Action: rt.addAlumni,
			},
			{
				Name:      "edit",
				Usage:     "change the given fields; alumni may edit their own record",
				ArgsUsage: "[id|alumni-id]",
				Flags:     alumniFormFlags(),
				Action:    rt.editAlumni,
			},
			{
				Name:      "delete",
				Usage:     "delete an alumni record",
				ArgsUsage: "<id|alumni-id>",
				Flags:     []cli.Flag{yesFlag()},
				Action:    rt.deleteAlumni,
			},
			{
				Name:   "export",
				Usage:  "export the filtered alumni list",
				Flags:  append(alumniFilterFlags(), exportFlags()...),
				Action: rt.exportAlumni,
			},
			{
				Name:      "portfolio",
				Usage:     "render the portfolio card as PNG",
				ArgsUsage: "[id|alumni-id]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "file path, or - for stdout; defaults to Portfolio_<first>_<last>.png in output.dir"},
					&cli.IntFlag{Name: "scale", Value: portfolio.DefaultScale},
					&cli.BoolFlag{Name: "no-photo", Usage: "use the initials avatar instead of fetching photo_url"},
				},
				Action: rt.alumniPortfolio,
			},
		},
	}
}

func (rt *runtime) listAlumni(c *cli.Context) error {
	app, user, err := rt.page(c, auth.NavAlumni, "")
	if err != nil {
		return err
	}
	f := alumniFilter(c)
	list := views.FilterAlumni(user, app.Data.Alumni(), f)
	out := c.App.Writer
	if c.Bool("json") {
		return writeJSON(out, list)
	}

	rows := make([][]string, 0, len(list))
	for _, a := range list {
		mark := ""
		if auth.IsOwnAlumniRecord(user, a) {
			mark = " *"
		}
		rows = append(rows, []string{
			a.AlumniID, a.FullName() + mark, a.Department, strconv.Itoa(a.GraduationYear),
			a.Workplace, a.EmploymentStatus.Label(),
		})
	}
	renderTable(out, []string{"รหัส", "ชื่อ-นามสกุล", "สาขา", "ปีที่จบ", "สถานที่ทำงาน", "สถานะ"}, rows)
	fmt.Fprintln(out, mutedStyle.Render(views.CountLabel(len(list), "คน", f.Active())))
	return nil
}

func (rt *runtime) showAlumni(c *cli.Context) error {
	app, user, err := rt.page(c, auth.NavAlumni, "")
	if err != nil {
		return err
	}
	a, err := lookupAlumni(c, app, user)
	if err != nil {
		return err
	}
	out := c.App.Writer
	if c.Bool("json") {
		return writeJSON(out, a)
	}

	fields := []field{
		{"รหัส", a.AlumniID},
		{"คณะ", a.Faculty},
		{"สาขา", a.Department},
		{"ปีที่จบ", strconv.Itoa(a.GraduationYear)},
		{"สถานะ", portfolio.EmploymentBadge(a.EmploymentStatus)},
		{"สถานที่ทำงาน", a.Workplace},
		{"ตำแหน่ง", a.Position},
		{"อีเมล", a.Email},
		{"เบอร์โทร", a.Phone},
		{"ที่อยู่", a.Address},
		{"เว็บไซต์", a.Portfolio},
		{"ติดต่อ", a.ContactInfo},
		{"ทักษะ", strings.Join(a.Skills, ", ")},
		{"เกี่ยวกับฉัน", a.AboutMe},
	}
	for _, e := range a.Education {
		fields = append(fields, field{"การศึกษา", strings.Join(nonEmpty(e.Years, e.Institution, e.Address, e.Grade), " · ")})
	}
	for _, e := range a.Experience {
		fields = append(fields, field{"ประสบการณ์", strings.Join(nonEmpty(e.Years, e.Company, e.Position), " · ")})
	}
	for _, f := range a.CustomFields {
		fields = append(fields, field{f.Label, f.Value})
	}
	renderFields(out, a.FullName(), fields)
	return nil
}

func nonEmpty(values ...string) []string {
	out := values[:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func (rt *runtime) addAlumni(c *cli.Context) error {
	app, _, err := rt.page(c, auth.NavAlumni, auth.ManageAlumni)
	if err != nil {
		return err
	}
	var a models.Alumni
	applyAlumniFlags(c, &a, true)
	if err := app.Validator.Alumni(a); err != nil {
		return rt.reportValidation(err)
	}
	return reported(app.Data.AddAlumni(c.Context, a))
}

func (rt *runtime) editAlumni(c *cli.Context) error {
	app, user, err := rt.page(c, auth.NavAlumni, "")
	if err != nil {
		return err
	}
	a, err := lookupAlumni(c, app, user)
	if err != nil {
		return err
	}
	if err := app.Authz.ValidateAlumniEdit(a); err != nil {
		return err
	}
	applyAlumniFlags(c, &a, false)
	if err := app.Validator.Alumni(a); err != nil {
		return rt.reportValidation(err)
	}
	return reported(app.Data.UpdateAlumni(c.Context, a.ID, a))
}

func (rt *runtime) deleteAlumni(c *cli.Context) error {
	key, err := requireArg(c, "รหัสศิษย์เก่า")
	if err != nil {
		return err
	}
	if err := confirmDelete(c); err != nil {
		return err
	}
	app, _, err := rt.page(c, auth.NavAlumni, auth.ManageAlumni)
	if err != nil {
		return err
	}
	a, err := find(app.Data.Alumni(), key, alumniKeys, "ศิษย์เก่า")
	if err != nil {
		return err
	}
	return reported(app.Data.DeleteAlumni(c.Context, a.ID))
}

func (rt *runtime) exportAlumni(c *cli.Context) error {
	app, user, err := rt.page(c, auth.NavAlumni, auth.Export)
	if err != nil {
		return err
	}
	list := views.FilterAlumni(user, app.Data.Alumni(), alumniFilter(c))
	return rt.exportTable(c, "alumni", "Alumni", csvio.AlumniRows(list))
}

func (rt *runtime) alumniPortfolio(c *cli.Context) error {
	app, user, err := rt.page(c, auth.NavAlumni, "")
	if err != nil {
		return err
	}
	a, err := lookupAlumni(c, app, user)
	if err != nil {
		return err
	}

	fonts, err := portfolio.LoadFonts(rt.cfg.Output.FontPath)
	if err != nil {
		return err
	}
	if !fonts.CoversThai() {
		rt.lgr.Warn().Str("font_path", rt.cfg.Output.FontPath).Msg("Portfolio font has no Thai glyphs")
		notify.Warning(rt.opts.Notifier, msgFontNoThai)
	}
	opts := portfolio.Options{Scale: c.Int("scale"), Now: rt.opts.Now()}
	if a.PhotoURL != "" && !c.Bool("no-photo") {
		photo, err := portfolio.LoadPhoto(c.Context, rt.opts.HTTPClient, a.PhotoURL)
		if err != nil {
			rt.lgr.Warn().Err(err).Str("url", a.PhotoURL).Msg("Profile photo unavailable")
			notify.Warning(rt.opts.Notifier, "โหลดรูปโปรไฟล์ไม่สำเร็จ ใช้อักษรย่อแทน")
		} else {
			opts.Photo = photo
		}
	}

	renderer := portfolio.NewRenderer(fonts)
	path := c.String("output")
	if path == "-" {
		return renderer.WritePNG(c.App.Writer, a, opts)
	}
	if path == "" {
		path = filepath.Join(rt.cfg.Output.Dir, portfolio.FileName(a))
	}
	if err := writeFile(path, func(w io.Writer) error { return renderer.WritePNG(w, a, opts) }); err != nil {
		return err
	}
	notify.Success(rt.opts.Notifier, "ดาวน์โหลด Portfolio สำเร็จ: "+path)
	return nil
}
