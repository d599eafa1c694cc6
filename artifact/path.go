package artifact

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// IsUnsafeName reports whether an entry name could escape the directory it is extracted to.
// Names with a parent segment, a leading separator or a volume name are unsafe.
func IsUnsafeName(name string) bool {
	if name == "" {
		return true
	}
	if strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return true
	}
	if filepath.VolumeName(name) != "" || (len(name) >= 2 && name[1] == ':') {
		return true
	}
	for _, segment := range strings.FieldsFunc(name, func(r rune) bool { return r == '/' || r == '\\' }) {
		if segment == ".." {
			return true
		}
	}
	return false
}

// SafeJoin joins name to root and fails with ErrUnsafePath if the result would escape root.
func SafeJoin(root, name string) (string, error) {
	if IsUnsafeName(name) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	cleaned := path.Clean(strings.ReplaceAll(name, `\`, "/"))
	if cleaned == "." {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	return filepath.Join(root, filepath.FromSlash(cleaned)), nil
}

// BaseName validates a plain file name without directories.
func BaseName(name string) (string, error) {
	if IsUnsafeName(name) || strings.ContainsAny(name, `/\`) || name == "." {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	return name, nil
}
