package diorama

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func solidSprite(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	fillRect(img, 0, 0, w-1, h-1, c)
	return img
}

func TestComposeImageDimensions(t *testing.T) {
	img, err := ComposeImage(DefaultGridConfig(), 3, nil, ComposeOptions{})
	if err != nil {
		t.Fatalf("ComposeImage: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 1840 || b.Dy() != 1840 {
		t.Errorf("image = %dx%d, want 1840x1840", b.Dx(), b.Dy())
	}
}

func TestComposeImagePaintsTileCenters(t *testing.T) {
	img, err := ComposeImage(DefaultGridConfig(), 2, nil, ComposeOptions{})
	if err != nil {
		t.Fatalf("ComposeImage: %v", err)
	}
	w := img.Bounds().Dx()
	positions, err := TilePositions(2, w, DefaultGridConfig())
	if err != nil {
		t.Fatalf("TilePositions: %v", err)
	}
	wantTop := colorGrassTop.toNRGBA()
	for _, p := range positions {
		got := img.NRGBAAt(p.PixelX, p.PixelY)
		if got.A == 0 {
			t.Errorf("tile (%d,%d) center transparent", p.GridX, p.GridY)
			continue
		}
		if got.G < got.R || got.G < got.B {
			t.Errorf("tile (%d,%d) center = %+v, want greenish near %+v",
				p.GridX, p.GridY, got, wantTop)
		}
	}
}

func TestComposeImageDeterministic(t *testing.T) {
	opts := ComposeOptions{Decorations: true, Filter: "autumn"}
	a, err := ComposeImage(DefaultGridConfig(), 3, nil, opts)
	if err != nil {
		t.Fatalf("ComposeImage: %v", err)
	}
	b, err := ComposeImage(DefaultGridConfig(), 3, nil, opts)
	if err != nil {
		t.Fatalf("ComposeImage: %v", err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("two composes of the same scene differ")
	}
}

func TestComposeDrawsSpriteAboveTile(t *testing.T) {
	sprite := solidSprite(40, 60, color.NRGBA{R: 60, G: 40, B: 30, A: 255})
	placements := []Placement{{GridX: 0, GridY: 0, Sprite: sprite}}
	img, err := ComposeImage(DefaultGridConfig(), 1, placements, ComposeOptions{})
	if err != nil {
		t.Fatalf("ComposeImage: %v", err)
	}

	// gridSize 1 on the default metrics: tile center at (720, 700). The
	// opaque 40x60 sprite stands on the center, so a point well inside its
	// body carries the sprite color.
	got := img.NRGBAAt(720, 660)
	if got.R != 60 || got.G != 40 || got.B != 30 {
		t.Errorf("sprite body pixel = %+v, want the sprite color", got)
	}
}

func TestComposeShadowOnlyUnderSprites(t *testing.T) {
	sprite := solidSprite(40, 60, color.NRGBA{R: 60, G: 40, B: 30, A: 255})
	bare, err := ComposeImage(DefaultGridConfig(), 2, nil, ComposeOptions{})
	if err != nil {
		t.Fatalf("ComposeImage: %v", err)
	}
	occupied, err := ComposeImage(DefaultGridConfig(), 2,
		[]Placement{{GridX: 1, GridY: 0, Sprite: sprite}}, ComposeOptions{})
	if err != nil {
		t.Fatalf("ComposeImage: %v", err)
	}

	positions, _ := TilePositions(2, bare.Bounds().Dx(), DefaultGridConfig())
	var unoccupied GridPosition
	for _, p := range positions {
		if p.GridX == 0 && p.GridY == 1 {
			unoccupied = p
		}
	}
	// The empty tile renders identically in both scenes.
	if bare.NRGBAAt(unoccupied.PixelX, unoccupied.PixelY) !=
		occupied.NRGBAAt(unoccupied.PixelX, unoccupied.PixelY) {
		t.Error("unoccupied tile changed when another tile gained a sprite")
	}
}

func TestComposeAppliesFilter(t *testing.T) {
	plain, err := ComposeImage(DefaultGridConfig(), 1, nil, ComposeOptions{})
	if err != nil {
		t.Fatalf("ComposeImage: %v", err)
	}
	graded, err := ComposeImage(DefaultGridConfig(), 1, nil, ComposeOptions{Filter: "night"})
	if err != nil {
		t.Fatalf("ComposeImage: %v", err)
	}
	p0 := plain.NRGBAAt(720, 700)
	p1 := graded.NRGBAAt(720, 700)
	if p0 == p1 {
		t.Error("night filter left the tile center unchanged")
	}
	if int(p1.R)+int(p1.G)+int(p1.B) >= int(p0.R)+int(p0.G)+int(p0.B) {
		t.Errorf("night filter did not darken: %+v -> %+v", p0, p1)
	}
}

func TestComposeUnknownFilterIsIdentity(t *testing.T) {
	plain, err := ComposeImage(DefaultGridConfig(), 1, nil, ComposeOptions{})
	if err != nil {
		t.Fatalf("ComposeImage: %v", err)
	}
	odd, err := ComposeImage(DefaultGridConfig(), 1, nil, ComposeOptions{Filter: "heat-haze"})
	if err != nil {
		t.Fatalf("ComposeImage: %v", err)
	}
	if !bytes.Equal(plain.Pix, odd.Pix) {
		t.Error("unknown filter name changed the output")
	}
}

func TestComposeRejectsOutOfBoundsPlacement(t *testing.T) {
	sprite := solidSprite(4, 4, color.NRGBA{A: 255})
	_, err := ComposeImage(DefaultGridConfig(), 2,
		[]Placement{{GridX: 2, GridY: 0, Sprite: sprite}}, ComposeOptions{})
	if err == nil {
		t.Error("out-of-bounds placement accepted")
	}
}

func TestComposeRejectsBadGrid(t *testing.T) {
	if _, err := ComposeImage(DefaultGridConfig(), 0, nil, ComposeOptions{}); err == nil {
		t.Error("zero grid size accepted")
	}
	bad := DefaultGridConfig()
	bad.TileWidth = -1
	if _, err := ComposeImage(bad, 2, nil, ComposeOptions{}); err == nil {
		t.Error("invalid config accepted")
	}
}

func TestRenderToBuffer(t *testing.T) {
	res, err := RenderToBuffer(DefaultGridConfig(), 1, nil, ComposeOptions{})
	if err != nil {
		t.Fatalf("RenderToBuffer: %v", err)
	}
	buf, ok := res.Buffer()
	if !ok {
		t.Fatalf("result kind = %v, want ResultBuffer", res.Kind())
	}
	if !bytes.HasPrefix(buf, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("buffer does not start with the PNG signature")
	}
}

func TestRenderToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.png")
	res, err := RenderToFile(path, DefaultGridConfig(), 1, nil, ComposeOptions{})
	if err != nil {
		t.Fatalf("RenderToFile: %v", err)
	}
	got, ok := res.ImagePath()
	if !ok || got != path {
		t.Fatalf("result = %v (%q), want image path %q", res.Kind(), got, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("file does not start with the PNG signature")
	}
}

func TestComposeScene(t *testing.T) {
	sc, err := LoadSceneConfig([]byte(`
gridSize: 2
filter: summer
placements:
  - {gridX: 0, gridY: 0, sprite: pine}
`))
	if err != nil {
		t.Fatalf("LoadSceneConfig: %v", err)
	}
	sprites := map[string]*image.NRGBA{
		"pine": solidSprite(20, 40, color.NRGBA{R: 20, G: 80, B: 20, A: 255}),
	}
	img, err := ComposeScene(sc, sprites, nil)
	if err != nil {
		t.Fatalf("ComposeScene: %v", err)
	}
	if img.Bounds().Dx() == 0 {
		t.Error("empty scene image")
	}
}

func TestComposeSceneUnknownSprite(t *testing.T) {
	sc, err := LoadSceneConfig([]byte(`
gridSize: 2
placements:
  - {gridX: 0, gridY: 0, sprite: ghost}
`))
	if err != nil {
		t.Fatalf("LoadSceneConfig: %v", err)
	}
	if _, err := ComposeScene(sc, map[string]*image.NRGBA{}, nil); err == nil {
		t.Error("unknown sprite name accepted")
	}
}
