// Package registry maintains the aggregate manifest: the root composer.json in
// a base directory that pulls every registered member manifest (an application
// and its plugins) in through a path repository and a "*" requirement. It
// registers and unregisters members, drives the external installer over the
// merged dependency set, and locates the installed autoload bootstrap.
package registry
