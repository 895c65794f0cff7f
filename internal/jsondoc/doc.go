// Package jsondoc holds a JSON object as compact raw bytes and edits it by key
// path. Edits never reorder keys: new keys are appended, existing keys are
// replaced where they stand. Marshal renders the document the way Composer
// writes composer.json (four-space indent, unescaped slashes and unicode), so
// files written by mcm stay readable in diffs.
package jsondoc
