package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"
)

// RewriteImageSources converts relative image and link paths to absolute
// file:// URLs so a browser surface can load them. If sourceDir is empty,
// nodes are left unchanged.
//
// Rewrites img[src] and relative a[href]. Anchors, URLs, absolute paths and
// paths escaping sourceDir are left as they are.
func RewriteImageSources(nodes []Node, sourceDir string) error {
	if sourceDir == "" {
		return nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return err
	}

	Walk(nodes, func(n Node) bool {
		el, ok := n.(*Element)
		if !ok {
			return false
		}
		switch el.Tag {
		case "img":
			rewriteAttr(el, "src", absSourceDir)
		case "a":
			rewriteAttr(el, "href", absSourceDir)
		}
		return true
	})
	return nil
}

// rewriteAttr rewrites a single attribute if it's a relative path.
func rewriteAttr(el *Element, attrName, sourceDir string) {
	val, ok := el.Attr(attrName)
	if !ok || !isRelativePath(val) {
		return
	}

	absPath := filepath.Join(sourceDir, val)
	if !isPathUnderDir(absPath, sourceDir) {
		return
	}

	el.SetAttr(attrName, pathToFileURL(absPath))
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(path string) bool {
	if path == "" {
		return false
	}

	// Skip URLs (http, https, file, data, protocol-relative)
	if strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "file://") ||
		strings.HasPrefix(path, "data:") ||
		strings.HasPrefix(path, "//") {
		return false
	}

	// Skip anchors
	if strings.HasPrefix(path, "#") {
		return false
	}

	// Skip absolute paths
	if filepath.IsAbs(path) {
		return false
	}

	return true
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	// Ensure dir ends with separator for correct prefix matching
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	// Path is under dir if it starts with dir/ or equals dir
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
// Handles both Unix and Windows paths correctly.
func pathToFileURL(absPath string) string {
	// filepath.ToSlash handles Windows backslashes
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
