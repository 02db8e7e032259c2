package naming

import (
	"fmt"
	"regexp"
	"strconv"

	"esrup/internal/services"
)

// ImageName holds the structured identity of one library image file:
// Model-SetNumber-ImageNumber[_Suffix].ext. The extension is kept verbatim so
// String can reproduce the original filename exactly.
type ImageName struct {
	Model  string
	Set    int
	Image  int
	Suffix string
	Ext    string
}

// The hyphen is reserved as the field separator, so model names must not
// contain one. Extensions accept jpeg as an input alias of jpg.
var filePattern = regexp.MustCompile(`^([^-/]+)-(\d{3})-(\d{3})(?:_([^.]+))?\.((?i:png|jpe?g))$`)

// Parse decomposes a filename into its naming fields. Failures carry the
// services.ErrParse marker; callers skip the file and report, they do not
// abort the run.
func Parse(filename string) (ImageName, error) {
	m := filePattern.FindStringSubmatch(filename)
	if m == nil {
		return ImageName{}, services.Wrap(services.ErrParse, "naming", "parse", fmt.Sprintf("%q does not match Model-NNN-NNN[_Suffix].{png,jpg}", filename), nil)
	}

	set, _ := strconv.Atoi(m[2])
	image, _ := strconv.Atoi(m[3])
	if set < 1 || set > 999 {
		return ImageName{}, services.Wrap(services.ErrParse, "naming", "parse", fmt.Sprintf("%q: set number %03d outside 001-999", filename, set), nil)
	}
	if image < 1 || image > 999 {
		return ImageName{}, services.Wrap(services.ErrParse, "naming", "parse", fmt.Sprintf("%q: image number %03d outside 001-999", filename, image), nil)
	}

	return ImageName{
		Model:  m[1],
		Set:    set,
		Image:  image,
		Suffix: m[4],
		Ext:    m[5],
	}, nil
}

// String reconstructs the filename. For any name produced by Parse the result
// is byte-identical to the input.
func (n ImageName) String() string {
	return n.Rename(n.Suffix, n.Ext)
}

// Rename renders the filename with the given output suffix and extension
// substituted. The underscore separating the suffix is injected here; callers
// must not include it. An empty suffix omits the separator entirely.
func (n ImageName) Rename(suffix, ext string) string {
	if suffix != "" {
		return fmt.Sprintf("%s-%03d-%03d_%s.%s", n.Model, n.Set, n.Image, suffix, ext)
	}
	return fmt.Sprintf("%s-%03d-%03d.%s", n.Model, n.Set, n.Image, ext)
}

// FormatSet renders a set number as the zero-padded directory name used at
// the Set level of the library hierarchy.
func FormatSet(set int) string {
	return fmt.Sprintf("%03d", set)
}
