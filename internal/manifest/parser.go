package manifest

import (
	"fmt"

	"github.com/mcm-labs/mcm/internal/jsondoc"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

// Parse reads the member manifest at path. Fields with an unexpected JSON type
// are treated as absent rather than failing the whole file.
func Parse(fsys afero.Fs, path string) (*Member, error) {
	data, err := readFile(fsys, path)
	if err != nil {
		return nil, err
	}

	doc, err := jsondoc.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	return &Member{
		Name:        stringField(doc.Get("name")),
		Description: stringField(doc.Get("description")),
		Type:        stringField(doc.Get("type")),
		Version:     stringField(doc.Get("version")),
		Require:     stringMap(doc.Get("require")),
		RequireDev:  stringMap(doc.Get("require-dev")),
	}, nil
}

// PackageName returns the declared name of the manifest at path, or an empty
// string when the file declares none.
func PackageName(fsys afero.Fs, path string) (string, error) {
	m, err := Parse(fsys, path)
	if err != nil {
		return "", err
	}
	return m.Name, nil
}

func stringField(res gjson.Result) string {
	if res.Type != gjson.String {
		return ""
	}
	return res.String()
}

func stringMap(res gjson.Result) map[string]string {
	if !res.IsObject() {
		return nil
	}
	out := make(map[string]string)
	res.ForEach(func(k, v gjson.Result) bool {
		if v.Type == gjson.String {
			out[k.String()] = v.String()
		}
		return true
	})
	return out
}

// readFile reads the contents of a file at the given path.
func readFile(fsys afero.Fs, path string) ([]byte, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
