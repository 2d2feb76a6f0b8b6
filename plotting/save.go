package plotting

import (
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/irisvc/pkg/errors"
	"github.com/YuminosukeSato/irisvc/pkg/log"
)

// Default figure size.
const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

// Save renders p to path, creating parent directories. The format
// (png, svg, pdf, eps, jpg, tif) follows the file extension.
func Save(p *plot.Plot, path string, width, height vg.Length) error {
	if width <= 0 || height <= 0 {
		return errors.NewValidationError("figure size", "must be positive", [2]vg.Length{width, height})
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create figure directory %s", dir)
		}
	}
	if err := p.Save(width, height, path); err != nil {
		return errors.Wrapf(err, "save figure %s", path)
	}

	log.GetLoggerWithName("plotting").Debug("Saved figure",
		log.OperationKey, log.OperationRender,
		log.OutputPathKey, path,
	)
	return nil
}
