package texture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/blackjack/internal/engine/gpu/gputest"
)

func writePNG(t *testing.T, dir, name string, c color.RGBA) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}

func TestCacheUploadsOncePerPath(t *testing.T) {
	dir := t.TempDir()
	stone := writePNG(t, dir, "stone.png", color.RGBA{R: 120, G: 120, B: 120, A: 255})

	dev := gputest.New()
	cache, err := NewCache(dev, "")
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	base := dev.TextureUploads

	first, err := cache.GetOrCreate(stone)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	second, err := cache.GetOrCreate(stone)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}

	if first != second {
		t.Errorf("expected same handle, got %d and %d", first, second)
	}
	if got := dev.TextureUploads - base; got != 1 {
		t.Errorf("expected 1 upload, got %d", got)
	}
	stats := cache.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if cache.Texture(stone) != first {
		t.Error("Texture should return the cached handle")
	}
}

func TestCacheDefaultTexture(t *testing.T) {
	t.Run("synthesized", func(t *testing.T) {
		dev := gputest.New()
		cache, err := NewCache(dev, "")
		if err != nil {
			t.Fatalf("NewCache: %v", err)
		}
		if cache.Default() == 0 {
			t.Fatal("expected a default texture")
		}
		tex, err := cache.GetOrCreate("")
		if err != nil || tex != cache.Default() {
			t.Errorf("empty path should resolve to default, got %d, %v", tex, err)
		}
		if cache.Texture("never-loaded.png") != cache.Default() {
			t.Error("unknown path should resolve to default")
		}
		if dev.TextureUploads != 1 {
			t.Errorf("expected 1 upload, got %d", dev.TextureUploads)
		}
	})

	t.Run("from file", func(t *testing.T) {
		path := writePNG(t, t.TempDir(), "default.png", color.RGBA{R: 255, A: 255})
		dev := gputest.New()
		cache, err := NewCache(dev, path)
		if err != nil {
			t.Fatalf("NewCache: %v", err)
		}
		tex, _ := cache.GetOrCreate(path)
		if tex != cache.Default() {
			t.Error("default path should share the cached handle")
		}
		if dev.TextureUploads != 1 {
			t.Errorf("expected 1 upload, got %d", dev.TextureUploads)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewCache(gputest.New(), filepath.Join(t.TempDir(), "nope.png"))
		if !errors.Is(err, ErrLoad) {
			t.Errorf("expected ErrLoad, got %v", err)
		}
	})
}

func TestCacheLoadErrors(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.png")
	if err := os.WriteFile(corrupt, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	cache, err := NewCache(gputest.New(), "")
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.png"), corrupt} {
		if _, err := cache.GetOrCreate(path); !errors.Is(err, ErrLoad) {
			t.Errorf("%s: expected ErrLoad, got %v", path, err)
		}
	}
	if cache.Len() != 0 {
		t.Errorf("failed loads must not be cached, got %d entries", cache.Len())
	}
}

func TestCacheRelease(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", color.RGBA{A: 255})
	b := writePNG(t, dir, "b.png", color.RGBA{B: 255, A: 255})

	dev := gputest.New()
	cache, err := NewCache(dev, "")
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	cache.GetOrCreate(a)
	cache.GetOrCreate(b)

	cache.Release()
	cache.Release()

	if len(dev.Textures) != 0 {
		t.Errorf("expected all textures released, %d live", len(dev.Textures))
	}
	if dev.TextureDeletes != 3 {
		t.Errorf("expected 3 deletes, got %d", dev.TextureDeletes)
	}
}
