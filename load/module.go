package load

import (
	"errors"
	"fmt"

	nest "github.com/0xalexb/hjarta-nest"
	yamldecoder "github.com/0xalexb/hjarta-nest/load/decoder/yaml"
	filefetcher "github.com/0xalexb/hjarta-nest/load/fetcher/file"

	"go.uber.org/fx"
)

// ErrEmptyName is returned when a module is created without a name.
var ErrEmptyName = errors.New("module name must not be empty")

// ModuleSettings holds configuration for an Fx document module.
type ModuleSettings struct {
	Path       string
	File       string
	UseYAML    bool
	MapOptions []nest.Option
}

// ModuleOption defines a function type for configuring an Fx document module.
type ModuleOption func(*ModuleSettings)

// WithPath selects the sub-document adopted by the module, using dot-path
// notation. Empty (the default) adopts the entire document.
func WithPath(path string) ModuleOption {
	return func(settings *ModuleSettings) {
		settings.Path = path
	}
}

// WithFile supplies a file-based Fetcher to the module, reading the
// document from fpath. Without it, a Fetcher tagged with the module name
// must be provided externally.
func WithFile(fpath string) ModuleOption {
	return func(settings *ModuleSettings) {
		settings.File = fpath
	}
}

// WithYAML supplies the YAML decoder to the module. Without it, a Decoder
// tagged with the module name must be provided externally.
func WithYAML() ModuleOption {
	return func(settings *ModuleSettings) {
		settings.UseYAML = true
	}
}

// WithMapOptions forwards options to the constructed nest.Map, e.g.
// nest.WithLogger.
func WithMapOptions(opts ...nest.Option) ModuleOption {
	return func(settings *ModuleSettings) {
		settings.MapOptions = append(settings.MapOptions, opts...)
	}
}

// NewModule creates an Fx module for a named document container.
// The name is used as both the module name and the DI named tag for the
// provided *nest.Map, its nest.Lookup form, and the Decoder and Fetcher
// dependencies. Call multiple times with different names to adopt several
// documents in one application.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, opts ...ModuleOption) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	var settings ModuleSettings

	for _, apply := range opts {
		apply(&settings)
	}

	tag := fmt.Sprintf(`name:%q`, name)

	var moduleOpts []fx.Option

	if settings.File != "" {
		moduleOpts = append(moduleOpts, fx.Provide(
			fx.Annotate(
				filefetcher.NewFetcher(settings.File),
				fx.As(new(Fetcher)),
				fx.ResultTags(tag),
			),
		))
	}

	if settings.UseYAML {
		moduleOpts = append(moduleOpts, fx.Provide(
			fx.Annotate(
				yamldecoder.NewDecoder,
				fx.As(new(Decoder)),
				fx.ResultTags(tag),
			),
		))
	}

	moduleOpts = append(moduleOpts, fx.Provide(
		fx.Annotate(
			Provider(settings.Path, settings.MapOptions...),
			fx.ParamTags(tag, tag),
			fx.ResultTags(tag),
		),
		fx.Annotate(
			func(document *nest.Map) *nest.Map { return document },
			fx.ParamTags(tag),
			fx.As(new(nest.Lookup)),
			fx.ResultTags(tag),
		),
	))

	return fx.Module(name, moduleOpts...)
}
