package label

import (
	"strings"

	"github.com/rohmanhakim/nl-locator/internal/dom"
)

/*
Responsibilities
- Associate form controls with the text of their labels
- Resolve explicit (for=id), structural (wrapping) and aria-labelledby labels

Resolution order for a control, first hit wins:
 1. <label for="id">
 2. <label> wrapping the control
 3. aria-labelledby id references, joined with single spaces
*/

var fieldTags = []string{"input", "select", "textarea"}

// Build walks every <label> once and records both association kinds.
func Build(tree *dom.Tree) Maps {
	maps := Maps{
		ByID:   make(map[string]string),
		ByWrap: make(map[string]string),
	}
	for _, h := range tree.Descendants(tree.Root(), "label") {
		text := tree.VisibleText(h)
		if forID := tree.Attr(h, "for"); forID != "" {
			maps.ByID[forID] = text
		}
		for _, field := range tree.Descendants(h, fieldTags...) {
			maps.ByWrap[WrapKey(tree, field)] = text
		}
	}
	return maps
}

// WrapKey fingerprints a control as tag:id:name:class1|class2.
func WrapKey(tree *dom.Tree, h dom.Handle) string {
	classes := tree.Classes(h)
	if len(classes) > 2 {
		classes = classes[:2]
	}
	return strings.Join([]string{
		tree.Tag(h),
		tree.Attr(h, "id"),
		tree.Attr(h, "name"),
		strings.Join(classes, "|"),
	}, ":")
}

// TextFor returns the label text of h, or "" when no association resolves.
func TextFor(tree *dom.Tree, maps Maps, h dom.Handle) string {
	if id := tree.Attr(h, "id"); id != "" {
		if text, ok := maps.ByID[id]; ok {
			return text
		}
	}

	if text, ok := maps.ByWrap[WrapKey(tree, h)]; ok {
		return text
	}

	refs := strings.Fields(tree.Attr(h, "aria-labelledby"))
	var parts []string
	for _, ref := range refs {
		if target, ok := tree.FindByID(ref); ok {
			parts = append(parts, tree.VisibleText(target))
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	return ""
}
