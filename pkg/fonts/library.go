package fonts

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/wordcloud/pkg/errors"
)

// maxCachedFaces bounds the measurement face cache. Sizes are continuous,
// so a long-running server would otherwise keep one face per distinct size.
const maxCachedFaces = 256

type fontKey struct {
	family string
	weight Weight
}

type faceKey struct {
	fontKey
	size float64
}

type entry struct {
	data   []byte
	font   *opentype.Font
	shaped *gotext.Face // parsed lazily for shaping
}

// Library stores OpenType fonts keyed by family and weight.
//
// A Library is safe for concurrent use. Faces returned by [Library.Face]
// are not; create one per goroutine.
type Library struct {
	mu    sync.Mutex
	fonts map[fontKey]*entry
	faces map[faceKey]font.Face // measurement faces, guarded by mu
}

// NewLibrary returns a library with the built-in Go fonts registered.
func NewLibrary() *Library {
	lib := &Library{
		fonts: make(map[fontKey]*entry),
		faces: make(map[faceKey]font.Face),
	}
	for k, data := range builtin {
		// Built-in data is known good.
		_ = lib.Load(k.family, k.weight, data)
	}
	return lib
}

var (
	defaultLib     *Library
	defaultLibOnce sync.Once
)

// Default returns a process-wide library holding only the built-in fonts.
func Default() *Library {
	defaultLibOnce.Do(func() { defaultLib = NewLibrary() })
	return defaultLib
}

// Load registers TTF/OTF data under family and weight, replacing any
// previous registration.
func (l *Library) Load(family string, weight Weight, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse font %s", family)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	key := fontKey{family, weight}
	l.fonts[key] = &entry{data: data, font: f}
	for k := range l.faces {
		if k.fontKey == key {
			delete(l.faces, k)
		}
	}
	return nil
}

// LoadFile reads a font file and registers it under family and weight.
func (l *Library) LoadFile(family string, weight Weight, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	if err := l.Load(family, weight, data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Has reports whether family is registered in any weight.
func (l *Library) Has(family string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for k := range l.fonts {
		if k.family == family {
			return true
		}
	}
	return false
}

// Families lists the registered family names.
func (l *Library) Families() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	seen := make(map[string]bool)
	var out []string
	for k := range l.fonts {
		if !seen[k.family] {
			seen[k.family] = true
			out = append(out, k.family)
		}
	}
	return out
}

// resolve finds the best entry: exact match, then the family in the other
// weight, then the default family. Callers hold mu.
func (l *Library) resolve(family string, weight Weight) (fontKey, *entry) {
	for _, k := range []fontKey{
		{family, weight},
		{family, 1 - weight},
		{DefaultFamily, weight},
		{DefaultFamily, Regular},
	} {
		if e, ok := l.fonts[k]; ok {
			return k, e
		}
	}
	return fontKey{}, nil
}

// Face returns a new face for family at size (in pixels at 72 DPI).
// Unknown families fall back to [DefaultFamily].
func (l *Library) Face(family, weight string, size float64) (font.Face, error) {
	l.mu.Lock()
	_, e := l.resolve(family, ParseWeight(weight))
	l.mu.Unlock()
	if e == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "no font for family %q", family)
	}
	return newFace(e.font, size)
}

// withFace runs fn with a cached measurement face while holding the lock.
func (l *Library) withFace(family, weight string, size float64, fn func(font.Face)) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	key, e := l.resolve(family, ParseWeight(weight))
	if e == nil {
		return errors.New(errors.ErrCodeNotFound, "no font for family %q", family)
	}
	fk := faceKey{key, size}
	face, ok := l.faces[fk]
	if !ok {
		var err error
		if face, err = newFace(e.font, size); err != nil {
			return err
		}
		if len(l.faces) >= maxCachedFaces {
			clear(l.faces)
		}
		l.faces[fk] = face
	}
	fn(face)
	return nil
}

// shapingFace returns the go-text face for family, parsing it on first use.
func (l *Library) shapingFace(family, weight string) (*gotext.Face, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, e := l.resolve(family, ParseWeight(weight))
	if e == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "no font for family %q", family)
	}
	if e.shaped == nil {
		face, err := gotext.ParseTTF(bytes.NewReader(e.data))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse font %s for shaping", family)
		}
		e.shaped = face
	}
	return e.shaped, nil
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return face, nil
}
