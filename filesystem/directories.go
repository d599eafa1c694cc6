// Package filesystem resolves the directories the synchronizer keeps its data in.
package filesystem

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// OwnerReadWriteExec is used for every directory created on behalf of the user.
const OwnerReadWriteExec = 0o700

// GetUserHomeDirectory returns the user home directory if one is set.
func GetUserHomeDirectory() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// GetCanonicalPath returns an os-specific path:
//   - ~ is replaced with the user home directory
//   - ${vars} and $vars are expanded
//   - the result is cleaned
func GetCanonicalPath(p string) string {
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~\\") || p == "~" {
		if home := GetUserHomeDirectory(); home != "" {
			p = home + p[1:]
		}
	}
	return filepath.Clean(os.ExpandEnv(p))
}

// GetFullDirectoryPath returns the canonical path of name and creates the directory if needed.
func GetFullDirectoryPath(name string) (string, error) {
	p := GetCanonicalPath(name)
	if err := os.MkdirAll(p, OwnerReadWriteExec); err != nil {
		return "", fmt.Errorf("create %s: %w", p, err)
	}
	return p, nil
}

// ResolveIn returns p when it is absolute and p joined to base otherwise. Both are canonicalised.
func ResolveIn(base, p string) string {
	p = GetCanonicalPath(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GetCanonicalPath(base), p)
}
