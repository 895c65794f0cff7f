package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/mcm-labs/mcm/internal/jsondoc"
)

// StateFileName records, next to the aggregate manifest, which manifest keys
// were created by registration rather than by the user. Unregistering the
// last member drops such a key only when it is listed here.
const StateFileName = ".mcm.state.json"

const createdKey = "created"

func (r *Registry) statePath() string {
	return filepath.Join(r.baseDir, StateFileName)
}

func (r *Registry) loadState() (*jsondoc.Document, error) {
	st, err := jsondoc.Load(r.fs, r.statePath())
	if err != nil {
		return nil, fmt.Errorf("loading registry state: %w", err)
	}
	return st, nil
}

// saveState writes st, or removes the state file once it holds nothing.
func (r *Registry) saveState(st *jsondoc.Document) error {
	if len(st.Keys()) == 0 {
		if err := r.fs.Remove(r.statePath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing registry state: %w", err)
		}
		return nil
	}
	if err := jsondoc.Save(r.fs, r.statePath(), st); err != nil {
		return fmt.Errorf("saving registry state: %w", err)
	}
	return nil
}

func markCreated(st *jsondoc.Document, key string) error {
	return st.Set(true, createdKey, key)
}

func wasCreated(st *jsondoc.Document, key string) bool {
	return st.Get(createdKey, key).Bool()
}

func clearCreated(st *jsondoc.Document, key string) error {
	if err := st.Unset(createdKey, key); err != nil {
		return err
	}
	if st.Len(createdKey) == 0 {
		return st.Unset(createdKey)
	}
	return nil
}
