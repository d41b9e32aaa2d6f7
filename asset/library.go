package asset

import (
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"
)

// ErrAssetNotFound is returned when a path does not resolve in the asset filesystem
var ErrAssetNotFound = errors.New("asset not found")

//go:embed textures
var embedded embed.FS

// Embedded returns the built-in texture set rooted so that "textures/<name>.png" resolves
func Embedded() fs.FS {
	return embedded
}

// Handle indexes a loaded texture
type Handle int

// NoTexture marks a command without a texture
const NoTexture Handle = -1

// Library loads textures once and hands out stable handles
// Not safe for concurrent use; loading happens before the frame loop starts
type Library struct {
	fsys     fs.FS
	textures []*Texture
	paths    []string
	byPath   map[string]Handle
}

// NewLibrary creates an empty library reading from fsys
func NewLibrary(fsys fs.FS) *Library {
	return &Library{
		fsys:   fsys,
		byPath: make(map[string]Handle),
	}
}

// Load decodes the texture at p, returning the cached handle on repeat loads
func (l *Library) Load(p string) (Handle, error) {
	p = path.Clean(p)
	if h, ok := l.byPath[p]; ok {
		return h, nil
	}

	f, err := l.fsys.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return NoTexture, fmt.Errorf("%w: %s", ErrAssetNotFound, p)
		}
		return NoTexture, fmt.Errorf("open %s: %w", p, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return NoTexture, fmt.Errorf("decode %s: %w", p, err)
	}

	h := Handle(len(l.textures))
	l.textures = append(l.textures, newTexture(img))
	l.paths = append(l.paths, p)
	l.byPath[p] = h
	return h, nil
}

// Get returns the texture for h, nil for NoTexture or unknown handles
func (l *Library) Get(h Handle) *Texture {
	if h < 0 || int(h) >= len(l.textures) {
		return nil
	}
	return l.textures[h]
}

// Path returns the source path of h
func (l *Library) Path(h Handle) string {
	if h < 0 || int(h) >= len(l.paths) {
		return ""
	}
	return l.paths[h]
}

// Len returns the number of loaded textures
func (l *Library) Len() int {
	return len(l.textures)
}
