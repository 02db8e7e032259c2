// Package naming parses and renders library image filenames.
//
// Every file in the library follows Model-SetNumber-ImageNumber[_Suffix].ext
// with three-digit set and image numbers and a png or jpg extension. Parsing
// is a pure function; a filename that does not match the convention yields a
// services.ErrParse and is skipped from enumeration rather than failing the
// run.
package naming
