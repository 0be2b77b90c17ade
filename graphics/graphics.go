// Package graphics owns sprite-sheet loading and caching. Sheets are decoded
// once and shared: every sprite variant built from the same path holds the
// same *ebiten.Image, which is read-only after load.
package graphics

import (
	"bytes"
	"fmt"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	// Sprite sheets ship as BMP; PNG backdrops come through the same loader.
	_ "golang.org/x/image/bmp"
	_ "image/png"
)

// Loader is the image-loading collaborator sprites are built against.
// Repeated loads of the same path with useCache true must return the same
// underlying handle.
type Loader interface {
	LoadImage(path string, useCache bool) (*ebiten.Image, error)
}

// Graphics loads images from a filesystem and caches decoded textures by
// path. It implements Loader.
type Graphics struct {
	fsys  fs.FS
	cache map[string]*ebiten.Image
}

// New returns a Graphics reading from fsys (an embed.FS or os.DirFS both
// work).
func New(fsys fs.FS) *Graphics {
	return &Graphics{
		fsys:  fsys,
		cache: make(map[string]*ebiten.Image),
	}
}

// LoadImage decodes the image at path. With useCache set, the decoded
// texture is retained and later calls for the same path return the identical
// handle.
func (g *Graphics) LoadImage(path string, useCache bool) (*ebiten.Image, error) {
	if useCache {
		if img, ok := g.cache[path]; ok {
			return img, nil
		}
	}

	raw, err := fs.ReadFile(g.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}

	img, _, err := ebitenutil.NewImageFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}

	if useCache {
		g.cache[path] = img
	}
	return img, nil
}
