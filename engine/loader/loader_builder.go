package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithSource sets where the Loader fetches assets from.
//
// Parameters:
//   - src: the asset source
//
// Returns:
//   - LoaderBuilderOption: a function that applies the source option to a loader
func WithSource(src AssetSource) LoaderBuilderOption {
	return func(l *loader) {
		l.source = src
	}
}

// WithProgress sets a callback that receives the byte count of every material and geometry fetch.
// Use LogProgress for a percentage log line per whole-percent step.
//
// Parameters:
//   - fn: the progress callback
//
// Returns:
//   - LoaderBuilderOption: a function that applies the progress option to a loader
func WithProgress(fn ProgressFunc) LoaderBuilderOption {
	return func(l *loader) {
		l.progress = fn
	}
}

// WithProgressBar draws a terminal progress bar to w for every material and geometry fetch.
//
// Parameters:
//   - w: the terminal writer, typically os.Stderr
//
// Returns:
//   - LoaderBuilderOption: a function that applies the progress bar option to a loader
func WithProgressBar(w io.Writer) LoaderBuilderOption {
	return func(l *loader) {
		l.bar = w
	}
}

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - m: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, m model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = m
	}
}
