package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/mcm-labs/mcm/internal/jsondoc"
	"github.com/mcm-labs/mcm/internal/manifest"
)

// UnregisterByName removes packageName from the aggregate manifest: its
// requirement and every path repository whose manifest declares that name.
// Repositories that are not path references, or whose manifest is missing or
// unreadable, are kept. An empty repositories list is dropped, and so is an
// emptied require object that registration created. With applyChanges the installer updates the package.
func (r *Registry) UnregisterByName(ctx context.Context, packageName string, applyChanges bool) error {
	if packageName == "" {
		return fmt.Errorf("%s: %w", opUnregister, ErrEmptyName)
	}

	var removed int
	err := r.edit(ctx, func(doc, st *jsondoc.Document) error {
		var err error
		removed, err = r.removeMember(doc, st, packageName)
		return err
	})
	if err != nil {
		return err
	}

	r.log.WithField("package", packageName).WithField("repositories", removed).Info("unregistered member")

	if applyChanges {
		return r.Update(ctx, packageName)
	}
	return nil
}

// UnregisterByFile reads the package name from the member manifest at
// memberPath and unregisters it. A member that cannot be read or has no name
// is a *ValidationError and leaves the aggregate untouched.
func (r *Registry) UnregisterByFile(ctx context.Context, memberPath string, applyChanges bool) error {
	m, err := r.readMember(opUnregister, r.memberFile(memberPath))
	if err != nil {
		return err
	}
	return r.UnregisterByName(ctx, m.Name, applyChanges)
}

// removeMember edits doc and st in place and returns the number of
// repositories removed.
func (r *Registry) removeMember(doc, st *jsondoc.Document, name string) (int, error) {
	removed := 0
	repos := doc.Get("repositories")
	if repos.IsArray() {
		var kept []string
		for _, entry := range repos.Array() {
			if r.refersTo(entry, name) {
				removed++
				continue
			}
			kept = append(kept, entry.Raw)
		}

		switch {
		case len(kept) == 0:
			if err := doc.Unset("repositories"); err != nil {
				return 0, err
			}
		case removed > 0:
			raw := "[" + strings.Join(kept, ",") + "]"
			if err := doc.SetRaw([]byte(raw), "repositories"); err != nil {
				return 0, err
			}
		}
	}

	if doc.Has("require", name) {
		if err := doc.Unset("require", name); err != nil {
			return 0, err
		}
		if doc.Get("require").IsObject() && doc.Len("require") == 0 && wasCreated(st, "require") {
			if err := doc.Unset("require"); err != nil {
				return 0, err
			}
			if err := clearCreated(st, "require"); err != nil {
				return 0, err
			}
		}
	}
	return removed, nil
}

// isRegistered reports whether a path repository already pulls in name.
func (r *Registry) isRegistered(doc *jsondoc.Document, name string) bool {
	found := false
	doc.Get("repositories").ForEach(func(_, entry gjson.Result) bool {
		found = r.refersTo(entry, name)
		return !found
	})
	return found
}

// refersTo reports whether entry is a path repository whose manifest declares
// name. Unreadable manifests never match.
func (r *Registry) refersTo(entry gjson.Result, name string) bool {
	url, ok := pathURL(entry)
	if !ok {
		return false
	}
	got, err := manifest.PackageName(r.fs, manifest.ConfigPath(r.resolve(url)))
	if err != nil {
		r.log.WithError(err).WithField("url", url).Debug("skipping unreadable path repository")
		return false
	}
	return got == name
}

// pathURL returns the url of a "path" repository entry.
func pathURL(entry gjson.Result) (string, bool) {
	if entry.Get("type").String() != "path" {
		return "", false
	}
	url := entry.Get("url")
	if url.Type != gjson.String || url.String() == "" {
		return "", false
	}
	return url.String(), true
}
