// Package importer reads model files into model.Asset descriptions.
package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/blackjack/internal/engine/model"
)

var (
	// ErrLoad is returned when a model file is missing or malformed.
	ErrLoad = errors.New("importer: load failed")
	// ErrUnsupported is returned for file types no importer handles.
	ErrUnsupported = errors.New("importer: unsupported format")
)

// Importer decodes one model file.
type Importer interface {
	Import(path string) (*model.Asset, error)
}

// ForPath picks an importer by file extension.
func ForPath(path string) (Importer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return OBJ{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
}

// Import checks that path exists and decodes it with the matching importer.
func Import(path string) (*model.Asset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: model path does not exist: %s", ErrLoad, path)
	}
	imp, err := ForPath(path)
	if err != nil {
		return nil, err
	}
	return imp.Import(path)
}
