// Package plan resolves library paths into the ordered job list for a run.
//
// ResolveSet walks one set directory and maps every parseable image to its
// destination under the mirrored output hierarchy; Enumerate composes the set
// selector and the resolver into the complete job list plus a structured skip
// report. Enumeration is a read-only pass over the library (destination
// directory creation aside) completed before any upscaling starts, and is
// deterministic: identical inputs always produce an identical ordered list.
package plan
