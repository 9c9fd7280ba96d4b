package texture

import (
	"fmt"
	"image"
	"image/color"

	"go.uber.org/zap"

	"github.com/Faultbox/blackjack/internal/engine/gpu"
	"github.com/Faultbox/blackjack/internal/logger"
)

// Stats counts cache activity.
type Stats struct {
	Uploads int
	Hits    int
	Misses  int
}

// Cache maps texture paths to GPU textures, uploading each path once.
// Not safe for concurrent use; it lives on the render thread.
type Cache struct {
	dev         gpu.Device
	textures    map[string]gpu.Texture
	defaultPath string
	defaultTex  gpu.Texture
	stats       Stats
	log         *zap.Logger
}

// NewCache creates a cache and uploads its default texture: the file at
// defaultPath, or a 1x1 white texture when defaultPath is empty.
func NewCache(dev gpu.Device, defaultPath string) (*Cache, error) {
	c := &Cache{
		dev:         dev,
		textures:    make(map[string]gpu.Texture),
		defaultPath: defaultPath,
		log:         logger.Named("texture"),
	}

	if defaultPath != "" {
		tex, err := c.GetOrCreate(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("default texture: %w", err)
		}
		c.defaultTex = tex
		return c, nil
	}

	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	white.SetRGBA(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	tex, err := dev.CreateTexture(white)
	if err != nil {
		return nil, fmt.Errorf("default texture: %w", err)
	}
	c.stats.Uploads++
	c.defaultTex = tex
	return c, nil
}

// GetOrCreate returns the texture for path, decoding and uploading it on
// first use. An empty path yields the default texture.
func (c *Cache) GetOrCreate(path string) (gpu.Texture, error) {
	if path == "" {
		return c.defaultTex, nil
	}
	if tex, ok := c.textures[path]; ok {
		c.stats.Hits++
		return tex, nil
	}
	c.stats.Misses++

	img, err := Load(path)
	if err != nil {
		return 0, err
	}
	tex, err := c.dev.CreateTexture(img)
	if err != nil {
		return 0, fmt.Errorf("upload %s: %w", path, err)
	}
	c.stats.Uploads++
	c.textures[path] = tex

	c.log.Debug("texture uploaded",
		zap.String("path", path),
		zap.Uint32("texture", uint32(tex)),
		zap.Int("width", img.Rect.Dx()),
		zap.Int("height", img.Rect.Dy()),
	)
	return tex, nil
}

// Texture returns the cached texture for path without loading it.
// Unknown and empty paths yield the default texture.
func (c *Cache) Texture(path string) gpu.Texture {
	if tex, ok := c.textures[path]; ok {
		return tex
	}
	return c.defaultTex
}

// Default returns the texture used for untextured materials.
func (c *Cache) Default() gpu.Texture { return c.defaultTex }

// DefaultPath returns the configured default texture file, if any.
func (c *Cache) DefaultPath() string { return c.defaultPath }

// Len returns the number of cached paths.
func (c *Cache) Len() int { return len(c.textures) }

// Stats returns upload and lookup counters.
func (c *Cache) Stats() Stats { return c.stats }

// Release deletes every texture. Safe to call more than once.
func (c *Cache) Release() {
	released := 0
	for path, tex := range c.textures {
		c.dev.DeleteTexture(tex)
		delete(c.textures, path)
		released++
	}
	// A file default lives in the map and was released above.
	if c.defaultTex != 0 && c.defaultPath == "" {
		c.dev.DeleteTexture(c.defaultTex)
		released++
	}
	c.defaultTex = 0
	if released > 0 {
		c.log.Debug("textures released", zap.Int("count", released))
	}
}
