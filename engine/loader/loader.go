package loader

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeOBJ selects the Wavefront OBJ/MTL loader backend.
	BackendTypeOBJ LoaderBackendType = iota
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	source   AssetSource
	backend  loaderBackend
	progress ProgressFunc
	bar      io.Writer

	modelCache map[string]model.Model
}

// Loader fetches a model's material library and geometry from an AssetSource and merges them.
// Loading is two-stage: materials first, then geometry built against those materials.
// Loaders are safe for concurrent use.
type Loader interface {
	// Load runs LoadMaterials for "<name><material ext>" and then LoadGeometry for
	// "<name><geometry ext>" with the loaded materials. The geometry is never fetched
	// when the material stage fails. Successful results are cached by name.
	//
	// Parameters:
	//   - ctx: cancels in-flight fetches
	//   - name: asset path without extension, e.g. "Humvee"
	//
	// Returns:
	//   - model.Model: the merged model
	//   - error: the first stage error, wrapped
	Load(ctx context.Context, name string) (model.Model, error)

	// LoadMaterials fetches and parses a material library, then preloads its textures.
	//
	// Parameters:
	//   - ctx: cancels in-flight fetches
	//   - p: asset path of the library
	//
	// Returns:
	//   - *model.MaterialLibrary: the parsed library with textures decoded where possible
	//   - error: wraps ErrAssetNotFound or ErrMalformed on failure
	LoadMaterials(ctx context.Context, p string) (*model.MaterialLibrary, error)

	// Preload fetches and decodes every texture the library references. Failures are logged
	// and leave the material untextured.
	//
	// Parameters:
	//   - ctx: cancels in-flight fetches
	//   - lib: the library to preload
	Preload(ctx context.Context, lib *model.MaterialLibrary)

	// LoadGeometry fetches and parses geometry against a material library, reporting progress.
	//
	// Parameters:
	//   - ctx: cancels in-flight fetches
	//   - p: asset path of the geometry file
	//   - materials: the preloaded material library; may be nil
	//
	// Returns:
	//   - model.Model: the merged model, named after p without its extension
	//   - error: wraps ErrAssetNotFound or ErrMalformed on failure
	LoadGeometry(ctx context.Context, p string, materials *model.MaterialLibrary) (model.Model, error)

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Source returns the asset source the loader reads from.
	Source() AssetSource
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
// Without WithSource the loader reads from the "models" directory.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeOBJ)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		modelCache: make(map[string]model.Model),
	}

	switch backendType {
	case BackendTypeOBJ:
		l.backend = newOBJLoaderBackend()
	default:
		panic(fmt.Sprintf("loader: unknown backend type %d", backendType))
	}

	for _, option := range options {
		option(l)
	}
	if l.source == nil {
		l.source = NewDirSource("models")
	}
	return l
}

func (l *loader) Load(ctx context.Context, name string) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	materials, err := l.LoadMaterials(ctx, name+l.backend.MaterialExt())
	if err != nil {
		return nil, fmt.Errorf("failed to load materials for %s: %w", name, err)
	}

	mdl, err := l.LoadGeometry(ctx, name+l.backend.GeometryExt(), materials)
	if err != nil {
		return nil, fmt.Errorf("failed to load geometry for %s: %w", name, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.modelCache[name]; ok {
		return cached, nil
	}
	l.modelCache[name] = mdl
	return mdl, nil
}

func (l *loader) LoadMaterials(ctx context.Context, p string) (*model.MaterialLibrary, error) {
	rc, size, err := l.source.Open(ctx, p)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	r, finish := trackProgress(rc, p, size, l.progress, l.bar)
	lib, err := l.backend.ParseMaterials(r, p)
	finish()
	if err != nil {
		return nil, err
	}

	log.Printf("[Loader] %s: %d materials", p, lib.Len())
	l.Preload(ctx, lib)
	return lib, nil
}

func (l *loader) Preload(ctx context.Context, lib *model.MaterialLibrary) {
	decoded := make(map[string]*common.TextureStagingData)
	for _, texPath := range lib.TexturePaths() {
		tex, err := l.loadTexture(ctx, texPath)
		if err != nil {
			log.Printf("[Loader] texture %s unavailable, using diffuse color: %v", texPath, err)
			continue
		}
		decoded[texPath] = tex
	}
	for _, m := range lib.Materials() {
		if m.DiffuseMapPath != "" {
			m.DiffuseMap = decoded[m.DiffuseMapPath]
		}
	}
}

func (l *loader) loadTexture(ctx context.Context, p string) (*common.TextureStagingData, error) {
	rc, _, err := l.source.Open(ctx, p)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return common.DecodeTexture(rc)
}

func (l *loader) LoadGeometry(ctx context.Context, p string, materials *model.MaterialLibrary) (model.Model, error) {
	rc, size, err := l.source.Open(ctx, p)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	name := strings.TrimSuffix(path.Base(p), path.Ext(p))
	r, finish := trackProgress(rc, p, size, l.progress, l.bar)
	meshes, err := l.backend.ParseGeometry(r, name, materials)
	finish()
	if err != nil {
		return nil, err
	}

	mdl := model.NewModel(name, model.WithMeshes(meshes...), model.WithMaterials(materials))
	log.Printf("[Loader] %s: %d meshes, %d triangles", p, len(meshes), mdl.TriangleCount())
	return mdl, nil
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Source() AssetSource {
	return l.source
}
