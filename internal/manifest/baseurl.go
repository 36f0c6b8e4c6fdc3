package manifest

import (
	"path"
	"strings"
)

// BaseURL derives scheme, host and the directory of the script path, always
// ending in exactly one slash: "/gallery/index.json" becomes "/gallery/".
func BaseURL(req Request) string {
	scheme := "http://"
	if req.Secure {
		scheme = "https://"
	}
	return scheme + req.Host + scriptDir(req.ScriptPath)
}

// NormalizeBaseURL trims trailing slashes from a configured base URL and adds
// exactly one.
func NormalizeBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/") + "/"
}

func scriptDir(scriptPath string) string {
	dir := ""
	if scriptPath != "" {
		dir = path.Dir(scriptPath)
		if dir == "." {
			dir = ""
		}
	}
	return strings.TrimRight(dir, "/") + "/"
}
