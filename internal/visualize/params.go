// internal/visualize/params.go
package visualize

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownProvider is returned when no provider can be inferred from a path.
var ErrUnknownProvider = errors.New("unrecognized provider")

// Params are the experiment-wide settings that name a figure.
type Params struct {
	Provider     string
	Memory       string
	ServiceTime  string
	TransferMode string
}

var (
	memoryPattern      = regexp.MustCompile(`(\d+)MB`)
	serviceTimePattern = regexp.MustCompile(`(?:^|[^A-Za-z0-9])st(\d+(?:\.\d+)?(?:ms|sec|s))\b`)
)

// InferProvider maps a results path to its provider by substring.
func InferProvider(path string) (string, error) {
	switch {
	case strings.Contains(path, "AWS"):
		return "AWS", nil
	case strings.Contains(path, "vhive"), strings.Contains(path, "vHive"):
		return "vHive", nil
	default:
		return "", errors.Wrapf(ErrUnknownProvider, "in path %s", path)
	}
}

// InferParams extracts memory, service time and transfer mode from a
// results path such as "AWS/1536MB memory, st1s imgsize experiment" or
// "providers/AWS/1536MB/st0ms". Unknown values stay empty. Provider is not
// set.
func InferParams(path string) Params {
	var p Params
	if m := memoryPattern.FindStringSubmatch(path); m != nil {
		p.Memory = m[1]
	}
	if m := serviceTimePattern.FindStringSubmatch(path); m != nil {
		p.ServiceTime = m[1]
	}
	for _, elem := range strings.Split(filepath.ToSlash(path), "/") {
		switch strings.ToLower(elem) {
		case "inline":
			p.TransferMode = "inline"
		case "storage", "s3":
			p.TransferMode = "storage"
		}
	}
	return p
}

// FileName turns a figure title into the PNG file name it is saved under.
func FileName(title string) string {
	return strings.NewReplacer("/", "-", string(filepath.Separator), "-").Replace(title) + ".png"
}
