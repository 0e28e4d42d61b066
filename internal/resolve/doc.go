// Package resolve turns a path-or-alias argument into the directory execdir
// changes into.
//
// Resolution is a small decision tree over the alias-usage level and two
// existence checks:
//
//	level 0  target is a directory?  yes → target
//	                                 no  → target (created with -p)
//	level 1  target is a directory?  yes → target
//	                                 no  → alias(target) or PATH_OR_ALIAS_NOT_FOUND
//	level 2                                alias(target) or ALIAS_NOT_FOUND
//
// An alias hit that is not a directory is created when CreateIfAbsent is
// set, and otherwise returned as is: the caller's chdir reports the failure.
//
// Resolution reads aliases but never writes them.
package resolve
