package sprite

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-slots/internal/core"
)

func TestSymbolOrder(t *testing.T) {
	tests := []struct {
		name  string
		index int
	}{
		{"cherry", 0},
		{"strawberry", 1},
		{"seven", 2},
		{"lemon", 3},
		{"banana", 4},
		{"bell", 5},
		{"watermelon", 6},
		{"green_apple", 7},
		{"clover", 8},
		{"unknown", 9},
		{"rainbow", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := Parse(tt.name); !ok || int(got) != tt.index {
				t.Errorf("Parse(%q) = %d, %v, expected %d", tt.name, got, ok, tt.index)
			}
			if got := Symbol(tt.index).String(); got != tt.name {
				t.Errorf("Symbol(%d).String() = %q, expected %q", tt.index, got, tt.name)
			}
		})
	}

	if Count != len(tests) {
		t.Errorf("Count = %d, expected %d", Count, len(tests))
	}
}

func TestUnknownNameMapsToPlaceholder(t *testing.T) {
	got, ok := Parse("joker")
	if ok {
		t.Error("Parse(joker) should fail")
	}
	if got != Placeholder {
		t.Errorf("Parse(joker) = %d, expected %d", got, Placeholder)
	}
}

func TestSymbolClamp(t *testing.T) {
	tests := []struct {
		in, want Symbol
	}{
		{-1, Placeholder},
		{0, Cherry},
		{10, Rainbow},
		{11, Placeholder},
		{99, Placeholder},
	}
	for _, tt := range tests {
		if got := tt.in.Clamp(); got != tt.want {
			t.Errorf("Symbol(%d).Clamp() = %d, expected %d", tt.in, got, tt.want)
		}
	}

	if !Rainbow.IsWild() || Seven.IsWild() {
		t.Error("only rainbow should be wild")
	}
}

func TestCatalogLookup(t *testing.T) {
	c := Builtin()
	if c.Len() != Count {
		t.Fatalf("Len() = %d, expected %d", c.Len(), Count)
	}

	for i := range Count {
		tex := c.Lookup(i)
		if tex.Symbol != Symbol(i) {
			t.Errorf("Lookup(%d).Symbol = %d", i, tex.Symbol)
		}
		if tex.Image.Bounds().Dx() != ArtSize {
			t.Errorf("Lookup(%d) image width = %d, expected %d", i, tex.Image.Bounds().Dx(), ArtSize)
		}
	}

	for _, i := range []int{-5, 11, 1000} {
		if got := c.Lookup(i).Symbol; got != Placeholder {
			t.Errorf("Lookup(%d) = %v, expected placeholder", i, got)
		}
	}
}

func TestBuiltinArtIsVisible(t *testing.T) {
	c := Builtin()
	for i := range Count {
		r := c.Lookup(i).Fit(core.Size{W: 10, H: 4})
		if r.Opaque() == 0 {
			t.Errorf("symbol %s rasterizes to nothing", Symbol(i))
		}
	}
}

func TestFitZeroSize(t *testing.T) {
	tex := Builtin().Lookup(int(Seven))

	scale := tex.Scale(core.Size{})
	if scale != (core.Vec{}) {
		t.Errorf("Scale(zero) = %v, expected zero", scale)
	}

	r := tex.Fit(core.Size{})
	if r.W != 0 || r.H != 0 || len(r.Cells) != 0 {
		t.Errorf("Fit(zero) = %dx%d, expected empty", r.W, r.H)
	}
	if r.At(0, 0) != core.ColorDefault {
		t.Error("At() on empty raster should be ColorDefault")
	}
}

func TestFitSolidColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	tex := &Texture{Symbol: Cherry, Image: img}

	scale := tex.Scale(core.Size{W: 4, H: 2})
	if scale.X != 0.5 || scale.Y != 0.25 {
		t.Errorf("Scale = %v, expected {0.5 0.25}", scale)
	}

	r := tex.Fit(core.Size{W: 4, H: 2})
	if r.W != 4 || r.H != 2 {
		t.Fatalf("Fit size = %dx%d, expected 4x2", r.W, r.H)
	}
	for i, c := range r.Cells {
		if c != core.ColorBrightRed {
			t.Errorf("cell %d = %v, expected bright red", i, c)
		}
	}
}

func TestFitTransparent(t *testing.T) {
	tex := &Texture{Image: image.NewRGBA(image.Rect(0, 0, 8, 8))}
	r := tex.Fit(core.Size{W: 3, H: 3})
	if r.Opaque() != 0 {
		t.Errorf("transparent image produced %d opaque cells", r.Opaque())
	}
}

func TestExportAndLoadDir(t *testing.T) {
	dir := t.TempDir()

	paths, err := Builtin().Export(dir)
	if err != nil {
		t.Fatalf("Export() failed: %v", err)
	}
	if len(paths) != Count {
		t.Errorf("Export() wrote %d files, expected %d", len(paths), Count)
	}

	// override one symbol with a 4x4 image
	custom := image.NewRGBA(image.Rect(0, 0, 4, 4))
	f, err := os.Create(filepath.Join(dir, "bell.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, custom); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	c, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() failed: %v", err)
	}
	if got := c.Lookup(int(Bell)).Image.Bounds().Dx(); got != 4 {
		t.Errorf("bell width = %d, expected override width 4", got)
	}
	if got := c.Lookup(int(Seven)).Image.Bounds().Dx(); got != ArtSize {
		t.Errorf("seven width = %d, expected %d", got, ArtSize)
	}
}

func TestLoadDirMatchesNames(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for _, name := range []string{"Cherry.png", "joker.png", "rainbow.png"} {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, img); err != nil {
			t.Fatal(err)
		}
		_ = f.Close()
	}

	c, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() failed: %v", err)
	}
	for _, s := range []Symbol{Cherry, Rainbow} {
		if got := c.Lookup(int(s)).Image.Bounds().Dx(); got != 2 {
			t.Errorf("%s width = %d, expected override width 2", s, got)
		}
	}
	if got := c.Lookup(int(Placeholder)).Image.Bounds().Dx(); got != ArtSize {
		t.Errorf("unknown file replaced the placeholder (width %d)", got)
	}
	if got := c.Skipped(); len(got) != 1 || got[0] != "joker.png" {
		t.Errorf("Skipped() = %v, expected [joker.png]", got)
	}
}

func TestLoadDirMissing(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("LoadDir() should fail for a missing directory")
	}
}

func TestLoadDirPartial(t *testing.T) {
	c, err := LoadDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadDir(empty) failed: %v", err)
	}
	if c.Len() != Count {
		t.Errorf("Len() = %d, expected %d", c.Len(), Count)
	}
}

func TestFitIsCached(t *testing.T) {
	tex := Builtin().Lookup(int(Bell))
	a := tex.Fit(core.Size{W: 10, H: 4})
	b := tex.Fit(core.Size{W: 10, H: 4})
	if a != b {
		t.Error("Fit() should reuse the raster for the same size")
	}
	if c := tex.Fit(core.Size{W: 6, H: 3}); c == a || c.W != 6 {
		t.Error("Fit() should resample for a new size")
	}
}
