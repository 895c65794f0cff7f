package registry

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/mcm-labs/mcm/internal/jsondoc"
	"github.com/mcm-labs/mcm/internal/manifest"
)

const (
	opRegister   = "register"
	opUnregister = "unregister"
)

var errSchemaMismatch = errors.New("member manifest does not match the schema")

// pathReference is a "path" entry of the aggregate's repositories list.
type pathReference struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Register adds the member manifest at memberPath (a composer.json file, or
// the directory holding one) to the aggregate manifest: a path repository
// pointing at its directory and a "*" requirement on its package name. The
// path is resolved against the base directory unless absolute. The stored
// url is the cleaned directory of memberPath, relative if memberPath was
// ("./ext1/composer.json" becomes "ext1"). With applyChanges the installer
// updates the new package.
func (r *Registry) Register(ctx context.Context, memberPath string, applyChanges bool) error {
	name, err := r.register(ctx, memberPath)
	if err != nil {
		return err
	}
	if applyChanges {
		return r.Update(ctx, name)
	}
	return nil
}

// RegisterAll registers each member in order and stops at the first error.
// With applyChanges a single update covering every registered package runs
// once all of them are in the manifest.
func (r *Registry) RegisterAll(ctx context.Context, applyChanges bool, memberPaths ...string) error {
	names := make([]string, 0, len(memberPaths))
	for _, p := range memberPaths {
		name, err := r.register(ctx, p)
		if err != nil {
			return err
		}
		names = append(names, name)
	}
	if applyChanges && len(names) > 0 {
		return r.Update(ctx, names...)
	}
	return nil
}

func (r *Registry) register(ctx context.Context, memberPath string) (string, error) {
	file := r.memberFile(memberPath)

	m, err := r.readMember(opRegister, file)
	if err != nil {
		return "", err
	}
	if r.strict {
		if err := r.validateMember(file, m); err != nil {
			return "", err
		}
	}

	url := filepath.ToSlash(filepath.Dir(file))
	log := r.log.WithFields(logrus.Fields{"package": m.Name, "url": url})

	err = r.edit(ctx, func(doc, st *jsondoc.Document) error {
		repos := doc.Get("repositories")
		if repos.Exists() && !repos.IsArray() {
			return fmt.Errorf("repositories in %s is not a list", r.ManifestPath())
		}
		if err := r.prepareRequire(doc, st); err != nil {
			return err
		}
		if r.isRegistered(doc, m.Name) {
			return &ValidationError{
				Op:   opRegister,
				Path: file,
				Err:  fmt.Errorf("%w: %s", ErrAlreadyRegistered, m.Name),
			}
		}

		idx := strconv.Itoa(doc.Len("repositories"))
		if err := doc.Set(pathReference{Type: "path", URL: url}, "repositories", idx); err != nil {
			return fmt.Errorf("adding repository %s: %w", url, err)
		}
		if err := doc.Set("*", "require", m.Name); err != nil {
			return fmt.Errorf("adding requirement %s: %w", m.Name, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	log.Info("registered member")
	return m.Name, nil
}

// prepareRequire makes sure require can take a new entry. A missing require
// is recorded as created by registration. An empty list, which PHP tooling
// writes for an empty require, is replaced by an object.
func (r *Registry) prepareRequire(doc, st *jsondoc.Document) error {
	req := doc.Get("require")
	switch {
	case !req.Exists():
		return markCreated(st, "require")
	case req.IsObject():
		return nil
	case req.IsArray() && len(req.Array()) == 0:
		if err := doc.SetRaw([]byte("{}"), "require"); err != nil {
			return fmt.Errorf("replacing empty require list: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("require in %s is not an object", r.ManifestPath())
	}
}

// readMember loads the member manifest at memberPath and checks it declares
// a package name.
func (r *Registry) readMember(op, memberPath string) (*manifest.Member, error) {
	m, err := manifest.Parse(r.fs, r.resolve(memberPath))
	if err != nil {
		return nil, &ValidationError{Op: op, Path: memberPath, Err: err}
	}
	if m.Name == "" {
		return nil, &ValidationError{Op: op, Path: memberPath, Err: ErrEmptyName}
	}
	return m, nil
}

// validateMember runs the schema check. Constraint hints are only logged.
func (r *Registry) validateMember(memberPath string, m *manifest.Member) error {
	res, err := manifest.ValidateFile(r.fs, r.resolve(memberPath))
	if err != nil {
		return &ValidationError{Op: opRegister, Path: memberPath, Err: err}
	}
	if !res.Valid {
		return &ValidationError{Op: opRegister, Path: memberPath, Issues: res.Issues, Err: errSchemaMismatch}
	}
	for _, issue := range manifest.CheckConstraints(m) {
		r.log.WithField("package", m.Name).Warn(issue.String())
	}
	return nil
}
