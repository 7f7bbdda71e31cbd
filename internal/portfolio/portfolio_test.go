package portfolio

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yigit/unirecords/internal/app/models"
)

func sampleAlumni() models.Alumni {
	return models.Alumni{
		AlumniID:         "60000001",
		FirstName:        "Somsri",
		LastName:         "Rakdee",
		Department:       "Computer Science",
		GraduationYear:   2022,
		Workplace:        "Agoda",
		Position:         "Software Engineer",
		EmploymentStatus: models.EmploymentEmployed,
		AboutMe:          strings.Repeat("I build reliable backend services. ", 12),
		Email:            "somsri@example.com",
		Phone:            "0812345678",
		Portfolio:        "https://somsri.dev",
		Skills:           []string{"Go", "PostgreSQL", "Kubernetes", "gRPC", "Terraform"},
		Education: []models.EducationEntry{
			{Years: "2018-2022", Institution: "SSKRU", Address: "Sisaket", Grade: "3.65"},
			{Years: "2015-2018", Institution: "High School", Address: "Sisaket"},
			{Years: "2012-2015", Institution: "Dropped"},
		},
		Experience:   []models.ExperienceEntry{{Years: "2022-now", Company: "Agoda", Position: "Engineer"}},
		CustomFields: []models.CustomField{{Label: "Award", Value: "Hackathon winner"}},
	}
}

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	fonts, err := LoadFonts("")
	if err != nil {
		t.Fatalf("LoadFonts: %v", err)
	}
	return NewRenderer(fonts)
}

func near(got color.Color, want color.RGBA, tol int) bool {
	r, g, b, _ := got.RGBA()
	diff := func(x uint32, y uint8) int {
		d := int(x>>8) - int(y)
		if d < 0 {
			d = -d
		}
		return d
	}
	return diff(r, want.R) <= tol && diff(g, want.G) <= tol && diff(b, want.B) <= tol
}

func TestRenderLayout(t *testing.T) {
	r := testRenderer(t)
	img := r.Render(sampleAlumni(), Options{Scale: 1, Now: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)})

	if img.Bounds().Dx() != Width || img.Bounds().Dy() != Height {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	// 4:5 card
	if img.Bounds().Dx()*5 != img.Bounds().Dy()*4 {
		t.Fatalf("aspect ratio broken: %v", img.Bounds())
	}
	if c := img.At(2, 2); !near(c, blue600, 40) {
		t.Errorf("header top-left = %v, want near blue-600", c)
	}
	if c := img.At(8, Height-8); !near(c, gray100, 2) {
		t.Errorf("sidebar = %v, want gray-100", c)
	}
	if c := img.At(sidebarWidth-2, Height-8); !near(c, blue600, 2) {
		t.Errorf("sidebar border = %v, want blue-600", c)
	}
	if c := img.At(Width-4, Height-4); !near(c, white, 2) {
		t.Errorf("main area = %v, want white", c)
	}
	// Avatar ring is white.
	if c := img.At(64+80, headerHeight/2-79); !near(c, white, 2) {
		t.Errorf("avatar ring = %v, want white", c)
	}
}

func TestRenderScaleAndPNG(t *testing.T) {
	r := testRenderer(t)
	var buf bytes.Buffer
	if err := r.WritePNG(&buf, sampleAlumni(), Options{}); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != Width*DefaultScale || cfg.Height != Height*DefaultScale {
		t.Fatalf("size = %dx%d", cfg.Width, cfg.Height)
	}
}

func TestRenderMinimalRecord(t *testing.T) {
	r := testRenderer(t)
	img := r.Render(models.Alumni{FirstName: "สมศรี"}, Options{Scale: 1})
	if img.Bounds().Dx() != Width {
		t.Fatalf("bounds = %v", img.Bounds())
	}
}

func TestRenderWithPhoto(t *testing.T) {
	photo := image.NewRGBA(image.Rect(0, 0, 40, 60))
	red := color.RGBA{R: 0xff, A: 0xff}
	for y := 0; y < 60; y++ {
		for x := 0; x < 40; x++ {
			photo.SetRGBA(x, y, red)
		}
	}
	img := testRenderer(t).Render(sampleAlumni(), Options{Scale: 1, Photo: photo})
	if c := img.At(64+80, headerHeight/2-30); !near(c, red, 10) {
		t.Fatalf("photo center = %v, want red", c)
	}
}

func TestWrap(t *testing.T) {
	fonts, err := LoadFonts("")
	if err != nil {
		t.Fatal(err)
	}
	c := newCanvas(10, 10, 1, fonts)
	defer c.close()

	width := max(c.measure("alpha beta", 12, false), c.measure("gamma delta", 12, false))
	lines := c.wrap("alpha beta gamma delta", width, 12, false)
	if len(lines) != 2 || lines[0] != "alpha beta" || lines[1] != "gamma delta" {
		t.Fatalf("lines = %q", lines)
	}
	long := strings.Repeat("x", 50)
	for _, line := range c.wrap(long, 60, 12, false) {
		if c.measure(line, 12, false) > 60 {
			t.Fatalf("line %q wider than 60", line)
		}
	}
	if got := c.wrap("a\nb", 100, 12, false); len(got) != 2 {
		t.Fatalf("newlines should break: %q", got)
	}
}

func TestFileNameAndBadge(t *testing.T) {
	if got := FileName(models.Alumni{FirstName: "สมศรี", LastName: "รักดี"}); got != "Portfolio_สมศรี_รักดี.png" {
		t.Fatalf("FileName = %q", got)
	}
	if EmploymentBadge(models.EmploymentEmployed) != "✓ มีงานทำ" || EmploymentBadge("") != "◷ หางาน" {
		t.Fatal("unexpected badge labels")
	}
	if got := thaiDate(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)); got != "16/10/2569" {
		t.Fatalf("thaiDate = %q", got)
	}
	if got := initials(models.Alumni{FirstName: "somsri", LastName: " rakdee"}); got != "SR" {
		t.Fatalf("initials = %q", got)
	}
}

func TestLoadFontsMissingFile(t *testing.T) {
	if _, err := LoadFonts(filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Fatal("expected error for a missing font")
	}
}

func TestLoadPhoto(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var encoded bytes.Buffer
	if err := png.Encode(&encoded, src); err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(encoded.Bytes())
	}))
	defer srv.Close()

	img, err := LoadPhoto(context.Background(), srv.Client(), srv.URL+"/a.png")
	if err != nil {
		t.Fatalf("LoadPhoto: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if _, err := LoadPhoto(context.Background(), srv.Client(), srv.URL+"/missing.png"); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestBundledFontsLackThai(t *testing.T) {
	fonts, err := LoadFonts("")
	if err != nil {
		t.Fatalf("LoadFonts: %v", err)
	}
	if fonts.CoversThai() {
		t.Fatal("the bundled Go fonts should not report Thai coverage")
	}
}
