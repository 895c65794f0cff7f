package registry

import (
	"errors"
	"io/fs"

	"github.com/tidwall/gjson"

	"github.com/mcm-labs/mcm/internal/manifest"
)

// MemberStatus describes the state of a repository entry.
type MemberStatus string

const (
	StatusOK         MemberStatus = "ok"
	StatusMissing    MemberStatus = "missing"
	StatusUnreadable MemberStatus = "unreadable"
	StatusForeign    MemberStatus = "foreign" // not a path repository
)

// Member is one repositories entry of the aggregate manifest.
type Member struct {
	Index      int
	Type       string
	URL        string
	Name       string // declared package name, empty unless Status is ok
	Constraint string // require entry for Name, if any
	Status     MemberStatus
	Err        error // read failure for missing and unreadable members
}

// Members lists the repositories of the aggregate manifest in order.
func (r *Registry) Members() ([]Member, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	var members []Member
	idx := 0
	doc.Get("repositories").ForEach(func(_, entry gjson.Result) bool {
		m := Member{
			Index: idx,
			Type:  entry.Get("type").String(),
			URL:   entry.Get("url").String(),
		}
		idx++

		url, ok := pathURL(entry)
		if !ok {
			m.Status = StatusForeign
			members = append(members, m)
			return true
		}

		name, err := manifest.PackageName(r.fs, manifest.ConfigPath(r.resolve(url)))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			m.Status = StatusMissing
			m.Err = err
		case err != nil:
			m.Status = StatusUnreadable
			m.Err = err
		case name == "":
			m.Status = StatusUnreadable
			m.Err = ErrEmptyName
		default:
			m.Status = StatusOK
			m.Name = name
			m.Constraint = doc.Get("require", name).String()
		}
		members = append(members, m)
		return true
	})
	return members, nil
}
