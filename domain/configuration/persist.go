package configuration

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"rsmconfig/domain/core"
	"rsmconfig/domain/schema"
	"rsmconfig/internal/errors"
)

// OutputSubdir is where snapshots are written under the output directory
const OutputSubdir = "output"

// OutputPath returns the file Save would write for dir:
// <dir>/output/<id>_<context>.json. An empty dir means the working directory.
func (c *Configuration) OutputPath(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "cannot determine working directory")
		}
		dir = wd
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "cannot resolve %s", dir)
	}

	d, err := schema.Lookup(c.context)
	if err != nil {
		return "", err
	}
	id := c.GetOr(d.IDField(), nil)
	if id == nil {
		return "", errors.MissingRequiredField(d.IDField())
	}
	return filepath.Join(dir, OutputSubdir, fmt.Sprintf("%s_%s.json", core.ToText(id), c.context)), nil
}

// Save writes the canonical form to OutputPath(dir) and returns the path
func (c *Configuration) Save(dir string) (string, error) {
	path, err := c.OutputPath(dir)
	if err != nil {
		return "", err
	}

	outDir := filepath.Dir(path)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", errors.Wrapf(err, "cannot create %s", outDir)
	}

	canonical, err := c.Canonical()
	if err != nil {
		return "", errors.Wrap(err, "cannot encode configuration")
	}
	if err := os.WriteFile(path, canonical, 0o644); err != nil {
		return "", errors.Wrapf(err, "cannot write %s", path)
	}

	c.logger.Debug("configuration saved", zap.String("path", path))
	return path, nil
}
