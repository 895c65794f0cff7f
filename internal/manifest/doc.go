// Package manifest reads member manifests: the composer.json files of the
// components (an application and its plugins) that get registered into the
// aggregate manifest. It also validates them against an embedded JSON Schema
// and reports version constraints that are not plain semantic-version ranges.
package manifest
