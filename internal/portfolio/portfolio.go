// Package portfolio renders an alumni profile card to PNG.
package portfolio

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	// Photo decoders
	_ "image/jpeg"

	_ "golang.org/x/image/webp"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/yigit/unirecords/internal/app/models"
	"github.com/yigit/unirecords/internal/pkg/logger"
)

// Card geometry in layout units; the PNG is Width*Scale pixels wide.
const (
	Width        = 1000
	Height       = 1250
	DefaultScale = 2
	headerHeight = Height / 4
	sidebarWidth = Width / 3
	pad          = 32
)

// MaxPhotoBytes caps downloaded profile photos.
const MaxPhotoBytes = 5 << 20

// DefaultPosition is shown when an alumnus has no position.
const DefaultPosition = "ศิษย์เก่า"

var (
	blue600    = hex(0x2563EB)
	indigo700  = hex(0x4338CA)
	purple800  = hex(0x6B21A8)
	blue100    = hex(0xDBEAFE)
	blue200    = hex(0xBFDBFE)
	green500   = hex(0x22C55E)
	yellow500  = hex(0xEAB308)
	gray100    = hex(0xF3F4F6)
	gray200    = hex(0xE5E7EB)
	gray400    = hex(0x9CA3AF)
	gray500    = hex(0x6B7280)
	gray600    = hex(0x4B5563)
	gray700    = hex(0x374151)
	gray800    = hex(0x1F2937)
	gray900    = hex(0x111827)
	purple500  = hex(0xA855F7)
	purple600  = hex(0x9333EA)
	indigo600  = hex(0x4F46E5)
	indigo100  = hex(0xE0E7FF)
	pink600    = hex(0xDB2777)
	emerald50  = hex(0xECFDF5)
	emerald600 = hex(0x059669)
	orange50   = hex(0xFFF7ED)
	orange400  = hex(0xFB923C)
	orange600  = hex(0xEA580C)
	cyan50     = hex(0xECFEFF)
	cyan400    = hex(0x22D3EE)
	cyan600    = hex(0x0891B2)
	white      = hex(0xFFFFFF)
)

// Fonts holds the regular and bold typefaces used on the card
type Fonts struct {
	regular  *opentype.Font
	bold     *opentype.Font
	fallback font.Face
}

// LoadFonts parses a TTF or OTF file for both weights. An empty path selects
// the bundled Go fonts, which have no Thai glyphs.
func LoadFonts(path string) (*Fonts, error) {
	fallback := basicfont.Face7x13
	if path == "" {
		regular, err := opentype.Parse(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("parse regular font: %w", err)
		}
		bold, err := opentype.Parse(gobold.TTF)
		if err != nil {
			return nil, fmt.Errorf("parse bold font: %w", err)
		}
		return &Fonts{regular: regular, bold: bold, fallback: fallback}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return &Fonts{regular: f, bold: f, fallback: fallback}, nil
}

// CoversThai reports whether the regular face has glyphs for Thai letters.
// Without them the card's Thai labels render as empty boxes.
func (f *Fonts) CoversThai() bool {
	var buf sfnt.Buffer
	for _, r := range "กขอ" {
		idx, err := f.regular.GlyphIndex(&buf, r)
		if err != nil || idx == 0 {
			return false
		}
	}
	return true
}

func (f *Fonts) pick(bold bool) *opentype.Font {
	if bold {
		return f.bold
	}
	return f.regular
}

// Options tune one rendering
type Options struct {
	Scale int
	// Photo replaces the initials avatar when set.
	Photo image.Image
	// Now stamps the footer date.
	Now time.Time
}

// Renderer draws portfolio cards
type Renderer struct {
	fonts *Fonts
}

// NewRenderer creates a Renderer using fonts.
func NewRenderer(fonts *Fonts) *Renderer {
	return &Renderer{fonts: fonts}
}

// FileName returns the download name for a's card.
func FileName(a models.Alumni) string {
	return fmt.Sprintf("Portfolio_%s_%s.png", a.FirstName, a.LastName)
}

// WritePNG renders a and encodes it as PNG.
func (r *Renderer) WritePNG(w io.Writer, a models.Alumni, opts Options) error {
	img := r.Render(a, opts)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode portfolio: %w", err)
	}
	return nil
}

// Render draws the card for a.
func (r *Renderer) Render(a models.Alumni, opts Options) *image.RGBA {
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	c := newCanvas(Width, Height, opts.Scale, r.fonts)
	defer c.close()

	c.fill(c.img.Bounds(), white)
	drawHeader(c, a, opts.Photo)
	drawSidebar(c, a)
	drawMain(c, a)

	c.textRight("ระบบจัดการข้อมูลศิษย์เก่า", Width-pad, Height-pad-18, 11, false, gray400)
	c.textRight("Updated: "+thaiDate(opts.Now), Width-pad, Height-pad, 11, true, gray500)
	return c.img
}

// thaiDate formats t the way th-TH locales do: day/month/Buddhist year.
func thaiDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year()+543)
}

// EmploymentBadge is the label on the avatar badge.
func EmploymentBadge(s models.EmploymentStatus) string {
	if s == models.EmploymentEmployed {
		return "✓ มีงานทำ"
	}
	return "◷ หางาน"
}

func initials(a models.Alumni) string {
	var b strings.Builder
	for _, name := range []string{a.FirstName, a.LastName} {
		for _, r := range strings.TrimSpace(name) {
			b.WriteRune(r)
			break
		}
	}
	return strings.ToUpper(b.String())
}

func drawHeader(c *canvas, a models.Alumni, photo image.Image) {
	c.gradient(c.rect(0, 0, Width, headerHeight), blue600, indigo700, purple800)
	translucent := withAlpha(white, 26)
	c.fillCircle(Width, 0, 192, translucent)
	c.fillCircle(0, headerHeight, 144, translucent)
	c.fillCircle(Width/2, headerHeight/2, 128, translucent)

	const avatarX, avatarY, avatarR = 64 + 80, headerHeight / 2, 80
	c.fillCircle(avatarX, avatarY, avatarR, white)
	if photo != nil {
		c.drawPhoto(photo, avatarX, avatarY, avatarR-8)
	} else {
		c.fillCircle(avatarX, avatarY, avatarR-8, indigo100)
		ini := initials(a)
		c.text(ini, avatarX-c.measure(ini, 48, true)/2, avatarY+17, 48, true, indigo700)
	}

	badge := EmploymentBadge(a.EmploymentStatus)
	badgeColor := yellow500
	if a.EmploymentStatus == models.EmploymentEmployed {
		badgeColor = green500
	}
	bw := c.measure(badge, 14, true) + 32
	bx, by := avatarX+avatarR-bw/2, avatarY+avatarR-22
	c.fillRound(c.rect(bx, by, bx+bw, by+30), 15, badgeColor)
	c.text(badge, bx+16, by+21, 14, true, white)

	const textX = 64 + 2*avatarR + 32
	nameWidth := Width - textX - 160
	name := strings.TrimSpace(a.FirstName + " " + a.LastName)
	c.text(fitLine(c, name, nameWidth, 44, true), textX, 130, 44, true, white)
	position := a.Position
	if position == "" {
		position = DefaultPosition
	}
	c.text(fitLine(c, position, nameWidth, 24, false), textX, 172, 24, false, blue100)
	info := a.Department
	if a.GraduationYear != 0 {
		info = strings.TrimSpace(info + "    จบปี " + fmt.Sprint(a.GraduationYear))
	}
	c.text(fitLine(c, info, nameWidth, 15, true), textX, 214, 15, true, blue200)

	c.fillRound(c.rect(Width-64-96, 72, Width-64, 168), 16, withAlpha(white, 51))
	c.fillCircle(Width-64-48, 120, 24, withAlpha(white, 153))
	c.textRight("Portfolio", Width-64, 192, 12, false, blue200)
	c.textRight(a.AlumniID, Width-64, 212, 14, true, white)
}

// fitLine trims s with an ellipsis so it fits width.
func fitLine(c *canvas, s string, width, size int, bold bool) string {
	if c.measure(s, size, bold) <= width {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := string(runes[:n]) + "…"
		if c.measure(candidate, size, bold) <= width {
			return candidate
		}
	}
	return ""
}

// sectionTitle draws an icon chip and a heading and returns the next y.
func sectionTitle(c *canvas, title string, x, y, size int, col color.RGBA) int {
	c.fillRound(c.rect(x, y, x+28, y+28), 6, col)
	c.fillRound(c.rect(x+9, y+9, x+19, y+19), 2, white)
	c.text(title, x+40, y+21, size, true, gray800)
	return y + 44
}

func drawSidebar(c *canvas, a models.Alumni) {
	c.fill(c.rect(0, headerHeight, sidebarWidth, Height), gray100)
	c.fill(c.rect(sidebarWidth-4, headerHeight, sidebarWidth, Height), blue600)

	x := pad
	width := sidebarWidth - 2*pad - 4
	y := headerHeight + pad

	y = sectionTitle(c, "ติดต่อ", x, y, 18, blue600)
	contacts := []struct{ label, value string }{
		{"อีเมล", a.Email},
		{"เบอร์โทร", a.Phone},
		{"ที่อยู่", a.Address},
		{"เว็บไซต์", a.Portfolio},
	}
	for _, item := range contacts {
		if item.value == "" {
			continue
		}
		c.fillCircle(x+6, y+8, 5, blue600)
		c.text(item.label, x+20, y+12, 11, true, gray500)
		valueColor := gray900
		if item.label == "เว็บไซต์" {
			valueColor = blue600
		}
		y = c.paragraph(item.value, x+20, y+12, width-20, 12, 16, false, valueColor) + 12
	}

	if len(a.Skills) > 0 {
		y = sectionTitle(c, "ทักษะ", x, y+12, 18, purple600)
		cx := x
		for _, skill := range a.Skills {
			label := fitLine(c, skill, width-24, 12, true)
			w := c.measure(label, 12, true) + 24
			if cx > x && cx+w > x+width {
				cx = x
				y += 34
			}
			chip := c.rect(cx, y, cx+w, y+26)
			c.fillRound(chip, 13, purple500)
			c.text(label, cx+12, y+18, 12, true, white)
			cx += w + 8
		}
		y += 34
	}

	if len(a.CustomFields) > 0 {
		y = sectionTitle(c, "รางวัล", x, y+12, 18, pink600)
		for _, field := range firstN(a.CustomFields, 3) {
			lines := c.wrap(field.Value, width-20, 12, false)
			h := 10 + 16 + len(lines)*16 + 10
			c.fillRound(c.rect(x-1, y-1, x+width+1, y+h+1), 8, gray200)
			c.fillRound(c.rect(x, y, x+width, y+h), 8, white)
			c.text(field.Label, x+10, y+22, 11, true, gray600)
			c.paragraph(field.Value, x+10, y+26, width-20, 12, 16, false, gray900)
			y += h + 8
		}
	}
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func drawMain(c *canvas, a models.Alumni) {
	x := sidebarWidth + pad
	width := Width - sidebarWidth - 2*pad
	y := headerHeight + pad

	if a.AboutMe != "" {
		y = sectionTitle(c, "เกี่ยวกับฉัน", x, y, 18, indigo600)
		y = c.paragraph(a.AboutMe, x, y-4, width, 14, 22, false, gray700) + 24
	}

	if a.Workplace != "" {
		y = sectionTitle(c, "การทำงานปัจจุบัน", x, y, 18, emerald600)
		c.fillRound(c.rect(x, y, x+width, y+72), 12, emerald50)
		c.fill(c.rect(x, y, x+4, y+72), emerald600)
		c.text(fitLine(c, a.Position, width-32, 16, true), x+20, y+30, 16, true, gray900)
		c.text(fitLine(c, a.Workplace, width-32, 14, false), x+20, y+56, 14, false, gray600)
		y += 72 + 24
	}

	colWidth := (width - 24) / 2
	if len(a.Education) > 0 {
		drawEducation(c, firstN(a.Education, 2), x, y, colWidth)
	}
	if len(a.Experience) > 0 {
		drawExperience(c, firstN(a.Experience, 2), x+colWidth+24, y, colWidth)
	}
}

func drawEducation(c *canvas, entries []models.EducationEntry, x, y, width int) {
	y = sectionTitle(c, "การศึกษา", x, y, 16, orange600)
	for _, e := range entries {
		h := 76
		c.fillRound(c.rect(x, y, x+width, y+h), 8, orange50)
		c.fill(c.rect(x, y, x+4, y+h), orange400)
		c.text(fitLine(c, e.Institution, width-24, 13, true), x+14, y+20, 13, true, gray900)
		c.text(fitLine(c, e.Address, width-24, 11, false), x+14, y+38, 11, false, gray600)
		c.text(e.Years, x+14, y+62, 11, false, gray500)
		if e.Grade != "" {
			gw := c.measure(e.Grade, 11, true) + 16
			c.fillRound(c.rect(x+width-gw-8, y+48, x+width-8, y+68), 10, orange600)
			c.text(e.Grade, x+width-gw, y+62, 11, true, white)
		}
		y += h + 10
	}
}

func drawExperience(c *canvas, entries []models.ExperienceEntry, x, y, width int) {
	y = sectionTitle(c, "ประสบการณ์", x, y, 16, cyan600)
	for _, e := range entries {
		h := 76
		c.fillRound(c.rect(x, y, x+width, y+h), 8, cyan50)
		c.fill(c.rect(x, y, x+4, y+h), cyan400)
		c.text(fitLine(c, e.Position, width-24, 13, true), x+14, y+20, 13, true, gray900)
		c.text(fitLine(c, e.Company, width-24, 11, false), x+14, y+38, 11, false, gray600)
		c.text(e.Years, x+14, y+62, 11, false, gray500)
		y += h + 10
	}
}

// LoadPhoto downloads and decodes a PNG, JPEG or WebP profile photo.
func LoadPhoto(ctx context.Context, client *http.Client, url string) (image.Image, error) {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build photo request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch photo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch photo: status %d", resp.StatusCode)
	}
	img, format, err := image.Decode(io.LimitReader(resp.Body, MaxPhotoBytes))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}
	logger.Debug().Str("format", format).Str("url", url).Msg("Loaded profile photo")
	return img, nil
}
