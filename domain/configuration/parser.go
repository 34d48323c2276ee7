package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"rsmconfig/domain/core"
	"rsmconfig/domain/schema"
	"rsmconfig/internal/errors"
	"rsmconfig/ports"
)

const configExtension = ".json"

// Parser builds Configurations through the normalize and validate pipeline
type Parser struct {
	source    ports.ConfigSourcePort
	validator *Validator
	logger    *zap.Logger
}

// NewParser creates a parser. source may be nil if files are never loaded.
func NewParser(source ports.ConfigSourcePort, caps ports.ModelCapabilityPort, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{
		source:    source,
		validator: NewValidator(caps, logger),
		logger:    logger,
	}
}

type options struct {
	configDir string
}

// Option customises FromMapping and FromMap
type Option func(*options)

// WithConfigDir sets the reference directory for relative paths
func WithConfigDir(dir string) Option {
	return func(o *options) { o.configDir = dir }
}

// FromFile loads, normalizes and validates a JSON configuration file.
// Relative paths inside it resolve against the file's directory.
func (p *Parser) FromFile(path string, ctx schema.Context) (*Configuration, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.CodeSourceNotFound, "configuration file %s not found", path)
		}
		return nil, errors.Wrapf(err, "cannot access %s", path)
	}
	if info.IsDir() {
		return nil, errors.Newf(errors.CodeSourceIsDirectory, "%s is a directory, not a configuration file", path)
	}
	if !strings.EqualFold(filepath.Ext(path), configExtension) {
		return nil, errors.Newf(errors.CodeUnsupportedExtension,
			"configuration file %s must have a %s extension", path, configExtension)
	}
	if p.source == nil {
		return nil, errors.InternalError("parser has no configuration source")
	}

	raw, err := p.source.Load(path)
	if err != nil {
		if errors.GetCode(err) == errors.CodeSourceNotFound {
			return nil, err
		}
		return nil, errors.WithCode(errors.CodeMalformedSource, err)
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot resolve directory of %s", path)
	}
	return p.build(raw, ctx, dir)
}

// FromMapping builds a Configuration from an in-memory mapping. Without
// WithConfigDir the reference directory is the working directory.
func (p *Parser) FromMapping(raw *core.Mapping, ctx schema.Context, opts ...Option) (*Configuration, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	dir := o.configDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "cannot determine working directory")
		}
		dir = wd
		p.logger.Info("no reference directory given; relative paths resolve against the working directory",
			zap.String("dir", dir))
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot resolve %s", dir)
	}
	return p.build(raw, ctx, abs)
}

// FromMap is FromMapping for a plain Go map; keys are taken in sorted order
func (p *Parser) FromMap(raw map[string]interface{}, ctx schema.Context, opts ...Option) (*Configuration, error) {
	return p.FromMapping(core.MappingFromMap(raw), ctx, opts...)
}

// Reuse passes an existing Configuration through unchanged
func (p *Parser) Reuse(cfg *Configuration) (*Configuration, error) {
	if cfg == nil {
		return nil, errors.InvalidInput("configuration is nil")
	}
	if cfg.ConfigDir() == "" {
		return nil, errors.New(errors.CodeMissingReferenceDirectory,
			"configuration has no reference directory set")
	}
	return cfg, nil
}

// Revalidate re-runs the pipeline over a Configuration, for example after
// Set, Pop or SetContext.
func (p *Parser) Revalidate(cfg *Configuration) (*Configuration, error) {
	if cfg == nil {
		return nil, errors.InvalidInput("configuration is nil")
	}
	return p.build(cfg.fields, cfg.context, cfg.configDir)
}

// Configure dispatches on the input: a file path, a mapping, a plain map or
// an existing Configuration.
func (p *Parser) Configure(ctx schema.Context, input interface{}) (*Configuration, error) {
	switch in := input.(type) {
	case string:
		return p.FromFile(in, ctx)
	case *core.Mapping:
		return p.FromMapping(in, ctx)
	case map[string]interface{}:
		return p.FromMap(in, ctx)
	case *Configuration:
		return p.Reuse(in)
	default:
		return nil, errors.InvalidInput(fmt.Sprintf(
			"input must be a file path, a mapping or a configuration, got %T", input))
	}
}

func (p *Parser) build(raw *core.Mapping, ctx schema.Context, dir string) (*Configuration, error) {
	normalized, err := Normalize(raw, ctx)
	if err != nil {
		return nil, err
	}
	fields, err := p.validator.Validate(normalized, ctx)
	if err != nil {
		return nil, err
	}
	return newConfiguration(fields, dir, ctx, p.logger.With(zap.String("context", ctx.String()))), nil
}
