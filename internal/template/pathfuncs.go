package template

import "strings"

// BasenameOf returns the substring after the last '/', or p unchanged
// if it contains no '/'.
func BasenameOf(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}

// DirnameOf returns the substring before the last '/', or "." if p
// contains no '/'.
func DirnameOf(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return "."
}

// RemoveExtensionOf strips a trailing ".ext" suffix from p, guarding
// against stripping from a hidden file/directory name (".hidden") or a
// directory component that itself contains no extension.
func RemoveExtensionOf(p string) string {
	dirIndex := strings.LastIndexByte(p, '/')
	extIndex := strings.LastIndexByte(p, '.')

	if extIndex < 0 {
		return p
	}
	if dirIndex+2 > extIndex {
		return p
	}
	return p[:extIndex]
}

// BaseAndExtOf returns the basename of p with its extension removed.
func BaseAndExtOf(p string) string {
	return BasenameOf(RemoveExtensionOf(p))
}
