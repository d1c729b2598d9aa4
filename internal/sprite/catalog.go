package sprite

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Catalog is the ordered symbol set. Index i holds the texture for Symbol(i).
type Catalog struct {
	textures [Count]*Texture
	skipped  []string
}

// Builtin returns a catalog of procedurally drawn symbols.
func Builtin() *Catalog {
	c := &Catalog{}
	for i := range c.textures {
		s := Symbol(i)
		c.textures[i] = &Texture{Symbol: s, Image: drawSymbol(s)}
	}
	return c
}

// LoadDir returns the built-in catalog with the <name>.png files found in dir
// substituted. Names match symbol names case-insensitively; files that name
// no symbol are skipped and listed by Skipped. A missing directory is an
// error; missing files are not.
func LoadDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("sprite: sprites dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("sprite: %s is not a directory", dir)
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.png"))
	if err != nil {
		return nil, fmt.Errorf("sprite: sprites glob: %w", err)
	}
	sort.Strings(paths)

	c := Builtin()
	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".png")
		s, ok := Parse(strings.ToLower(name))
		if !ok {
			c.skipped = append(c.skipped, filepath.Base(path))
			continue
		}
		img, err := readPNG(path)
		if err != nil {
			return nil, err
		}
		c.textures[s] = &Texture{Symbol: s, Image: img}
	}
	return c, nil
}

// Skipped returns the files LoadDir ignored because they name no symbol.
func (c *Catalog) Skipped() []string {
	return c.skipped
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("sprite: decode %s: %w", path, err)
	}
	return img, nil
}

// Len returns the number of symbols.
func (c *Catalog) Len() int {
	return len(c.textures)
}

// Lookup returns the texture at index i. Out-of-range indices return the
// placeholder.
func (c *Catalog) Lookup(i int) *Texture {
	return c.textures[Symbol(i).Clamp()]
}

// Export writes every texture as <name>.png into dir and returns the paths.
func (c *Catalog) Export(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("sprite: create export dir: %w", err)
	}

	paths := make([]string, 0, len(c.textures))
	for _, t := range c.textures {
		path := filepath.Join(dir, t.Name()+".png")
		if err := writePNG(path, t.Image); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sprite: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("sprite: encode %s: %w", path, err)
	}
	return f.Close()
}
