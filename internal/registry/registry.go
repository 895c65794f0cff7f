package registry

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/mcm-labs/mcm/internal/installer"
	"github.com/mcm-labs/mcm/internal/jsondoc"
	"github.com/mcm-labs/mcm/internal/manifest"
)

// LockFileName is the advisory lock taken in the base directory while the
// aggregate manifest is read, modified and written back.
const LockFileName = ".mcm.lock"

const lockRetryDelay = 50 * time.Millisecond

// Registry manages the aggregate manifest of one base directory.
type Registry struct {
	baseDir   string
	fs        afero.Fs
	defaults  *jsondoc.Document
	installer installer.Installer
	log       logrus.FieldLogger
	strict    bool
	locking   bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithDefaults replaces the default aggregate keys. Default keys always come
// first in the written manifest and win over the same keys in the file.
func WithDefaults(doc *jsondoc.Document) Option {
	return func(r *Registry) {
		r.defaults = doc
	}
}

// WithInstaller sets the installer driven by Install and Update.
func WithInstaller(inst installer.Installer) Option {
	return func(r *Registry) {
		r.installer = inst
	}
}

// WithFs sets the filesystem used for every manifest read and write.
func WithFs(fsys afero.Fs) Option {
	return func(r *Registry) {
		r.fs = fsys
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// WithStrictValidation checks members against the member manifest schema
// before registering them.
func WithStrictValidation() Option {
	return func(r *Registry) {
		r.strict = true
	}
}

// WithoutLock disables the advisory lock file.
func WithoutLock() Option {
	return func(r *Registry) {
		r.locking = false
	}
}

// New returns a Registry for the aggregate manifest in baseDir. An empty
// baseDir means the current directory.
func New(baseDir string, opts ...Option) (*Registry, error) {
	if baseDir == "" {
		baseDir = "."
	}
	r := &Registry{
		baseDir: filepath.Clean(baseDir),
		fs:      afero.NewOsFs(),
		locking: true,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		r.log = l
	}
	r.log = r.log.WithField("base_dir", r.baseDir)

	if r.defaults == nil {
		doc, err := DefaultRoot.Document()
		if err != nil {
			return nil, fmt.Errorf("building default manifest: %w", err)
		}
		r.defaults = doc
	}
	if r.installer == nil {
		r.installer = &installer.Exec{
			Command: []string{installer.DefaultCommand},
			Logger:  r.log,
		}
	}
	return r, nil
}

// BaseDir returns the directory holding the aggregate manifest.
func (r *Registry) BaseDir() string {
	return r.baseDir
}

// ManifestPath returns the path of the aggregate manifest.
func (r *Registry) ManifestPath() string {
	return manifest.ConfigPath(r.baseDir)
}

// Manifest returns the effective aggregate manifest (defaults merged with the
// file) without writing it.
func (r *Registry) Manifest() (*jsondoc.Document, error) {
	return r.load()
}

// load reads the aggregate manifest. A missing file yields the defaults.
func (r *Registry) load() (*jsondoc.Document, error) {
	file, err := jsondoc.Load(r.fs, r.ManifestPath())
	if err != nil {
		return nil, fmt.Errorf("loading manifest: %w", err)
	}
	doc := r.defaults.Clone()
	if err := doc.MergeMissing(file); err != nil {
		return nil, fmt.Errorf("merging manifest defaults: %w", err)
	}
	return doc, nil
}

func (r *Registry) save(doc *jsondoc.Document) error {
	if err := jsondoc.Save(r.fs, r.ManifestPath(), doc); err != nil {
		return fmt.Errorf("saving manifest %s: %w", r.ManifestPath(), err)
	}
	return nil
}

// edit runs fn on the loaded manifest and registry state under the lock and
// saves both when fn succeeds. The state is only written when fn changed it.
func (r *Registry) edit(ctx context.Context, fn func(doc, st *jsondoc.Document) error) error {
	unlock, err := r.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}
	st, err := r.loadState()
	if err != nil {
		return err
	}
	before := string(st.Raw())

	if err := fn(doc, st); err != nil {
		return err
	}
	if err := r.save(doc); err != nil {
		return err
	}
	if string(st.Raw()) == before {
		return nil
	}
	return r.saveState(st)
}

// acquire takes the advisory lock. Locking only applies to the OS
// filesystem.
func (r *Registry) acquire(ctx context.Context) (func(), error) {
	noop := func() {}
	if !r.locking {
		return noop, nil
	}
	if _, ok := r.fs.(*afero.OsFs); !ok {
		return noop, nil
	}

	fl := flock.New(filepath.Join(r.baseDir, LockFileName))
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("locking %s: %w", fl.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("locking %s: lock is held by another process", fl.Path())
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			r.log.WithError(err).Warn("releasing lock")
		}
	}, nil
}

// resolve maps a path given relative to the base directory (or absolute) to
// a filesystem path.
func (r *Registry) resolve(p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.baseDir, p)
}

// memberFile returns the manifest file for memberPath. A directory stands for
// the composer.json inside it.
func (r *Registry) memberFile(memberPath string) string {
	if info, err := r.fs.Stat(r.resolve(memberPath)); err == nil && info.IsDir() {
		return filepath.Join(memberPath, manifest.FileName)
	}
	return memberPath
}
