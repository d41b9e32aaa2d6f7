package engine

import (
	"fmt"

	"github.com/lixenwraith/orrery/asset"
	"github.com/lixenwraith/orrery/body"
)

// Textures holds texture handles parallel to the registry
type Textures struct {
	Surface []asset.Handle
	Ring    []asset.Handle
}

// LoadTextures loads every body and ring texture up front
// Any failure is fatal: the loop must never start with a partial table
func LoadTextures(registry *body.Registry, lib *asset.Library) (Textures, error) {
	t := Textures{
		Surface: make([]asset.Handle, registry.Len()),
		Ring:    make([]asset.Handle, registry.Len()),
	}

	for i, b := range registry.All {
		t.Surface[i] = asset.NoTexture
		t.Ring[i] = asset.NoTexture

		if b.Texture != "" {
			h, err := lib.Load(b.Texture)
			if err != nil {
				return Textures{}, fmt.Errorf("load %s texture: %w", b.Name, err)
			}
			t.Surface[i] = h
		}
		if b.Ring != nil && b.Ring.Texture != "" {
			h, err := lib.Load(b.Ring.Texture)
			if err != nil {
				return Textures{}, fmt.Errorf("load %s ring texture: %w", b.Name, err)
			}
			t.Ring[i] = h
		}
	}
	return t, nil
}

func (t Textures) surface(i int) asset.Handle {
	if i < 0 || i >= len(t.Surface) {
		return asset.NoTexture
	}
	return t.Surface[i]
}

func (t Textures) ring(i int) asset.Handle {
	if i < 0 || i >= len(t.Ring) {
		return asset.NoTexture
	}
	return t.Ring[i]
}
