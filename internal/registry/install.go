package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/mcm-labs/mcm/internal/installer"
)

// DefaultVendorDir is the installer's vendor directory unless the aggregate
// manifest sets config.vendor-dir.
const DefaultVendorDir = "vendor"

// AutoloadFile is the bootstrap file the installer writes into the vendor
// directory.
const AutoloadFile = "autoload.php"

// Bootstrap locates the installed class-loader entry point.
type Bootstrap struct {
	VendorDir string
	Path      string
}

// Install runs the installer's install verb over the aggregate manifest.
func (r *Registry) Install(ctx context.Context) error {
	return r.run(ctx, installer.VerbInstall)
}

// Update runs the installer's update verb. Package names are passed through
// unmodified; none means every package.
func (r *Registry) Update(ctx context.Context, packageNames ...string) error {
	return r.run(ctx, installer.VerbUpdate, packageNames...)
}

func (r *Registry) run(ctx context.Context, verb installer.Verb, packages ...string) error {
	log := r.log.WithField("verb", verb)
	if len(packages) > 0 {
		log = log.WithField("package", packages)
	}
	log.Debug("running installer")

	if _, err := r.installer.Run(ctx, r.baseDir, verb, packages...); err != nil {
		return fmt.Errorf("%s: %w", verb, err)
	}
	log.Info("installer finished")
	return nil
}

// Autoload returns the bootstrap file produced by a previous install. It
// fails with *MissingInstallError when the file does not exist.
func (r *Registry) Autoload() (*Bootstrap, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	vendorDir := DefaultVendorDir
	if v := doc.Get("config", "vendor-dir").String(); v != "" {
		vendorDir = v
	}

	path := filepath.Join(r.resolve(vendorDir), AutoloadFile)
	info, err := r.fs.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return nil, &MissingInstallError{Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}
	return &Bootstrap{VendorDir: vendorDir, Path: path}, nil
}
