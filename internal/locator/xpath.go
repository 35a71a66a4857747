package locator

import (
	"fmt"
	"strings"

	"github.com/rohmanhakim/nl-locator/internal/dom"
)

/*
BuildXPath renders an anchored XPath for h.

Anchor search
  - Walk up from the parent of h, at most maxAnchorDepth ancestors.
  - The first ancestor carrying a stable attribute (id, test-id, role,
    aria-label) or a sectioning tag becomes the anchor.

Path construction
  - The anchor renders as an absolute locator: //*[@id=..] and friends.
  - Every level below the anchor down to h renders as a relative step
    made from its own attributes; only the target may use its text.
  - Steps with nothing to say fall back to a class predicate, then to a
    1-based index among same-tag siblings.
  - Result: anchor//step/step/.../target

Without an anchor the target's own step is used alone (//step) when it
carries a predicate, otherwise an absolute indexed path from <html>.
*/
func BuildXPath(tree *dom.Tree, h dom.Handle) string {
	if !tree.IsElement(h) {
		return "//*"
	}

	anchor := findAnchor(tree, h)
	if anchor == dom.NoHandle {
		if step, ok := nodeStep(tree, h, true); ok {
			return "//" + step
		}
		return absolutePath(tree, h)
	}

	return anchorStep(tree, anchor) + "//" + strings.Join(downSteps(tree, anchor, h), "/")
}

func findAnchor(tree *dom.Tree, h dom.Handle) dom.Handle {
	cur := tree.ElementParent(h)
	for depth := 0; cur != dom.NoHandle && depth < maxAnchorDepth; depth++ {
		if isStable(tree, cur) || sectioningTags.Contains(tree.Tag(cur)) {
			return cur
		}
		cur = tree.ElementParent(cur)
	}
	return dom.NoHandle
}

func isStable(tree *dom.Tree, h dom.Handle) bool {
	if tree.HasAttr(h, "id") {
		return true
	}
	if _, _, ok := TestID(tree, h); ok {
		return true
	}
	return tree.HasAttr(h, "role") || tree.HasAttr(h, "aria-label")
}

func anchorStep(tree *dom.Tree, h dom.Handle) string {
	if id := tree.Attr(h, "id"); id != "" {
		return fmt.Sprintf("//*[@id=%s]", XPathLiteral(id))
	}
	if attr, v, ok := TestID(tree, h); ok {
		return fmt.Sprintf("//*[@%s=%s]", attr, XPathLiteral(v))
	}
	if v := tree.Attr(h, "aria-label"); v != "" {
		return fmt.Sprintf("//*[%s]", containsAttr("aria-label", v))
	}
	if v := tree.Attr(h, "role"); v != "" {
		return fmt.Sprintf("//*[@role=%s]", XPathLiteral(v))
	}
	return "//" + tree.Tag(h) + sectionPredicates(tree, h)
}

func sectionPredicates(tree *dom.Tree, h dom.Handle) string {
	var preds []string
	for _, attr := range TestIDAttrs {
		if v := tree.Attr(h, attr); v != "" {
			preds = append(preds, fmt.Sprintf("@%s=%s", attr, XPathLiteral(v)))
		}
	}
	if classes := tree.Classes(h); len(classes) > 0 {
		preds = append(preds, classPredicate(classes[0]))
	}
	if v := tree.Attr(h, "role"); v != "" {
		preds = append(preds, fmt.Sprintf("@role=%s", XPathLiteral(v)))
	}
	if len(preds) == 0 {
		return ""
	}
	return "[" + strings.Join(preds, " and ") + "]"
}

// downSteps renders every level strictly below anchor, down to and
// including target, as child-axis steps.
func downSteps(tree *dom.Tree, anchor, target dom.Handle) []string {
	var chain []dom.Handle
	for cur := target; cur != dom.NoHandle && cur != anchor; cur = tree.ElementParent(cur) {
		chain = append(chain, cur)
	}

	steps := make([]string, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		n := chain[i]
		step, ok := nodeStep(tree, n, n == target)
		if !ok {
			step = indexedStep(tree, n)
		}
		steps = append(steps, step)
	}
	return steps
}

// nodeStep builds tag[pred and pred ...] from the node's own attributes.
// The bool is false when nothing discriminating was found and the bare
// tag name came back.
func nodeStep(tree *dom.Tree, h dom.Handle, allowText bool) (string, bool) {
	var preds []string
	if v := tree.Attr(h, "id"); v != "" {
		preds = append(preds, fmt.Sprintf("@id=%s", XPathLiteral(v)))
	}
	for _, attr := range TestIDAttrs {
		if v := tree.Attr(h, attr); v != "" {
			preds = append(preds, fmt.Sprintf("@%s=%s", attr, XPathLiteral(v)))
		}
	}
	if v := tree.Attr(h, "name"); v != "" {
		preds = append(preds, fmt.Sprintf("@name=%s", XPathLiteral(v)))
	}
	if v := tree.Attr(h, "aria-label"); v != "" {
		preds = append(preds, containsAttr("aria-label", v))
	}
	if v := tree.Attr(h, "placeholder"); v != "" {
		preds = append(preds, containsAttr("placeholder", v))
	}
	if v := tree.Attr(h, "role"); v != "" {
		preds = append(preds, fmt.Sprintf("@role=%s", XPathLiteral(v)))
	}
	if allowText {
		if text := tree.StringValue(h); text != "" {
			short := dom.Truncate(text, maxTextPredicateLen)
			preds = append(preds, fmt.Sprintf("contains(normalize-space(.), %s)", XPathLiteral(short)))
		}
	}

	tag := tree.Tag(h)
	if len(preds) > 0 {
		return tag + "[" + strings.Join(preds, " and ") + "]", true
	}
	if classes := tree.Classes(h); len(classes) > 0 {
		return tag + "[" + classPredicate(classes[0]) + "]", true
	}
	return tag, false
}

func indexedStep(tree *dom.Tree, h dom.Handle) string {
	return fmt.Sprintf("%s[%d]", tree.Tag(h), tree.SiblingIndex(h))
}

func absolutePath(tree *dom.Tree, h dom.Handle) string {
	var parts []string
	for cur := h; cur != dom.NoHandle; cur = tree.ElementParent(cur) {
		parts = append(parts, "/"+indexedStep(tree, cur))
	}
	if len(parts) == 0 {
		return "//*"
	}
	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteString(parts[i])
	}
	return b.String()
}

func containsAttr(attr, value string) string {
	return fmt.Sprintf("contains(@%s, %s)", attr, XPathLiteral(dom.Truncate(value, maxContainsLen)))
}

func classPredicate(class string) string {
	return fmt.Sprintf("contains(concat(' ', normalize-space(@class), ' '), %s)", XPathLiteral(" "+class+" "))
}
