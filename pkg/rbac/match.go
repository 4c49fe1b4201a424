package rbac

import "strings"

// matches reports whether a granted permission covers a required one.
// "*" covers everything; "projects.*" covers "projects.read" and any deeper
// segment under projects.
func matches(granted, required string) bool {
	if granted == required || granted == "*" {
		return true
	}
	if prefix, ok := strings.CutSuffix(granted, ".*"); ok {
		return strings.HasPrefix(required, prefix+".")
	}
	return false
}

func hasPermission(granted []string, required string) bool {
	for _, g := range granted {
		if matches(g, required) {
			return true
		}
	}
	return false
}
