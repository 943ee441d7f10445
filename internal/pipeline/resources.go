package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// linkAttrs names, per element, the attribute that may point at a file next
// to the source page.
var linkAttrs = map[atom.Atom]string{
	atom.Img: "src",
	atom.A:   "href",
}

// ResolveRelativeLinks rewrites relative img src and a href values into
// file:// URLs rooted at sourceDir, so a page written elsewhere still finds
// its images. Targets that would leave sourceDir are left as written. An
// empty sourceDir returns the content unchanged.
func ResolveRelativeLinks(content, sourceDir string) (string, error) {
	if sourceDir == "" {
		return content, nil
	}
	root, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	trimmed := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		if err != nil {
			return "", err
		}
		resolveLinks(doc, root)

		var b strings.Builder
		if err := html.Render(&b, doc); err != nil {
			return "", err
		}
		return b.String(), nil
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, n := range nodes {
		resolveLinks(n, root)
		if err := html.Render(&b, n); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func resolveLinks(n *html.Node, root string) {
	if n.Type == html.ElementNode {
		if key, ok := linkAttrs[n.DataAtom]; ok {
			for i, attr := range n.Attr {
				if attr.Key != key || attr.Namespace != "" || !isLocalRelative(attr.Val) {
					continue
				}
				target := filepath.Join(root, filepath.FromSlash(attr.Val))
				if !within(target, root) {
					continue
				}
				n.Attr[i].Val = fileURL(target)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		resolveLinks(c, root)
	}
}

// isLocalRelative reports whether ref is a relative filesystem path rather
// than an anchor, an absolute path or a URL with a scheme.
func isLocalRelative(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	if filepath.IsAbs(ref) || strings.HasPrefix(ref, "/") {
		return false
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return false
	}
	return true
}

// within reports whether path is dir or lies below it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func fileURL(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
