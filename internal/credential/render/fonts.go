package render

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type faceKey struct {
	bold bool
	size float64
}

// fontCache parses the embedded typefaces once and hands out faces by
// weight and point size. Faces are reused; truetype faces are not safe for
// concurrent use, so the renderer holds its drawing lock while one is active.
type fontCache struct {
	regular *truetype.Font
	bold    *truetype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

func newFontCache() (*fontCache, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &fontCache{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

func (c *fontCache) face(bold bool, size float64) font.Face {
	key := faceKey{bold: bold, size: size}

	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.faces[key]; ok {
		return f
	}

	src := c.regular
	if bold {
		src = c.bold
	}
	f := truetype.NewFace(src, &truetype.Options{Size: size})
	c.faces[key] = f
	return f
}
