package gpt

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/specialistvlad/gptgrid/internal/faults"
)

var dateToken = regexp.MustCompile(`(\d{4})(\d{2})(\d{2})T(\d{2})(\d{2})(\d{2})`)

var extensions = map[string]string{
	"BEAM-DIMAP":      ".dim",
	"GeoTIFF":         ".tif",
	"GeoTIFF-BigTIFF": ".tif",
	"NetCDF4-CF":      ".nc",
	"NetCDF-CF":       ".nc",
	"NetCDF4-BEAM":    ".nc",
	"NetCDF-BEAM":     ".nc",
	"HDF5":            ".h5",
	"ENVI":            ".hdr",
	"JP2":             ".jp2",
	"CSV":             ".csv",
}

// Extension returns the file extension gpt uses for format, or "" for formats
// it does not know.
func Extension(format string) string {
	return extensions[format]
}

// OutputName derives the output file name for input under the naming policy
// of opts. suffix is the graph suffix, used unless opts.Suffix overrides it.
func OutputName(input, suffix string, opts RunOptions) (string, error) {
	if opts.Suffix != nil {
		suffix = *opts.Suffix
	}
	base := baseName(input)

	var stem string
	if opts.DateOnly || opts.DateTimeOnly {
		m := dateToken.FindStringSubmatch(base)
		if m == nil {
			m = dateToken.FindStringSubmatch(input)
		}
		if m == nil {
			return "", &faults.NamingError{Input: input, Policy: opts.policy()}
		}
		stem = m[1] + "-" + m[2] + "-" + m[3]
		if opts.DateTimeOnly {
			stem += "T" + m[4] + m[5] + m[6]
		}
	} else {
		stem = strings.TrimSuffix(base, path.Ext(base))
	}

	return opts.Prefix + stem + suffix + Extension(opts.Format), nil
}

// OutputPath joins the output folder and OutputName.
func OutputPath(input, suffix string, opts RunOptions) (string, error) {
	name, err := OutputName(input, suffix, opts)
	if err != nil {
		return "", err
	}
	return filepath.Join(opts.OutputFolder, name), nil
}

// baseName is the last element of a local path or remote URL, ignoring a
// trailing slash.
func baseName(input string) string {
	trimmed := strings.TrimRight(input, `/\`)
	if i := strings.LastIndexAny(trimmed, `/\`); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
