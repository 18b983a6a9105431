// Package storage guarda las fotos adjuntas a las inspecciones.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/spf13/afero"

	"github.com/jhoicas/Calidad-api/internal/application/quality"
	"github.com/jhoicas/Calidad-api/internal/domain"
	"github.com/jhoicas/Calidad-api/pkg/config"
)

var (
	_ quality.ImageStorage = (*Local)(nil)
	_ quality.ImageStorage = Noop{}
)

// New elige el backend según la configuración.
func New(cfg config.StorageConfig) (quality.ImageStorage, error) {
	switch cfg.Backend {
	case "noop":
		return Noop{}, nil
	case "local", "":
		return NewLocal(cfg.Directory, cfg.PublicBaseURL)
	}
	return nil, fmt.Errorf("storage: backend %q no soportado", cfg.Backend)
}

// Local guarda archivos bajo un directorio y los expone con un prefijo de URL.
type Local struct {
	fs      afero.Fs
	root    string
	baseURL string
}

// NewLocal crea el directorio raíz si no existe.
func NewLocal(dir, baseURL string) (*Local, error) {
	osfs := afero.NewOsFs()
	if err := osfs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear %s: %w", dir, err)
	}
	l := NewLocalFs(afero.NewBasePathFs(osfs, dir), baseURL)
	l.root = dir
	return l, nil
}

// NewLocalFs usa un afero.Fs arbitrario (tests con MemMapFs).
func NewLocalFs(fs afero.Fs, baseURL string) *Local {
	return &Local{fs: fs, baseURL: "/" + strings.Trim(baseURL, "/")}
}

// Root directorio servido como estático; vacío si no hay directorio en disco.
func (l *Local) Root() string { return l.root }

// BaseURL prefijo de las URLs públicas.
func (l *Local) BaseURL() string { return l.baseURL }

// Put escribe r en key y devuelve la URL pública.
func (l *Local) Put(ctx context.Context, key, _ string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	if err := l.fs.MkdirAll(path.Dir(clean), 0o755); err != nil {
		return "", fmt.Errorf("storage: crear carpeta: %w", err)
	}
	tmp := clean + ".part"
	if err := afero.WriteReader(l.fs, tmp, r); err != nil {
		_ = l.fs.Remove(tmp)
		return "", fmt.Errorf("storage: escribir %s: %w", clean, err)
	}
	if err := l.fs.Rename(tmp, clean); err != nil {
		_ = l.fs.Remove(tmp)
		return "", fmt.Errorf("storage: renombrar %s: %w", clean, err)
	}
	return l.baseURL + "/" + clean, nil
}

// Delete borra el archivo de url. URLs ajenas o archivos inexistentes no son error.
func (l *Local) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rest, ok := strings.CutPrefix(url, l.baseURL+"/")
	if !ok {
		return nil
	}
	clean, err := cleanKey(rest)
	if err != nil {
		return err
	}
	exists, err := afero.Exists(l.fs, clean)
	if err != nil || !exists {
		return err
	}
	if err := l.fs.Remove(clean); err != nil {
		return fmt.Errorf("storage: borrar %s: %w", clean, err)
	}
	return nil
}

// cleanKey normaliza la clave y rechaza rutas fuera de la raíz.
func cleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return "", fmt.Errorf("%w: clave de archivo %q", domain.ErrInvalidInput, key)
	}
	clean := path.Clean(key)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: clave de archivo %q", domain.ErrInvalidInput, key)
	}
	return clean, nil
}

// Noop backend deshabilitado: rechaza altas y acepta bajas.
type Noop struct{}

func (Noop) Put(context.Context, string, string, io.Reader) (string, error) {
	return "", fmt.Errorf("%w: almacenamiento de imágenes deshabilitado", domain.ErrConflict)
}

func (Noop) Delete(context.Context, string) error { return nil }
