package scorer

import (
	"strings"
	"unicode/utf8"

	"github.com/rohmanhakim/nl-locator/internal/dom"
	"github.com/rohmanhakim/nl-locator/internal/extractor"
	"github.com/rohmanhakim/nl-locator/internal/label"
	"github.com/rohmanhakim/nl-locator/internal/textsim"
	"github.com/rohmanhakim/nl-locator/pkg/set"
)

/*
Responsibilities
- Derive the text views of a candidate (own, attribute, ancestor, label, form)
- Combine their similarity to the query with form context and affordance
- Gate non-field elements away when the query asks for data entry

	score = 420*self + 220*ctx + 340*label + 200*form
	      + 40*[in form] + 120*[form has password]
	      + min(90, 12*fields in form)
	      + min(80, len(visible text)/2)
	      + 30*[clickable]
	if wants field:
	      + 240 if text field or select, else -400
	      + 60*[has placeholder]
	      + 160*sim(query, name+" "+id)

Each weighted similarity term is truncated to an integer on its own.
*/

var (
	textFieldTypes = set.Of("", "text", "email", "password", "search", "tel", "url", "number")
	textFieldRoles = set.Of("textbox", "combobox", "spinbutton", "searchbox")
	clickableRoles = set.Of("button", "link")
	buttonTypes    = set.Of("submit", "button", "reset")
	formFieldTags  = []string{"input", "select", "textarea"}
	attrTextKeys   = []string{"id", "name", "aria-label", "placeholder", "title", "value", "role"}
)

// Context carries everything shared by all candidates of one request.
type Context struct {
	Tree   *dom.Tree
	Labels label.Maps
	Query  string
	Intent Intent
}

func NewContext(tree *dom.Tree, labels label.Maps, query string) Context {
	return Context{
		Tree:   tree,
		Labels: labels,
		Query:  query,
		Intent: DetectIntent(query),
	}
}

// Score computes the signed integer score of one candidate.
func Score(ctx Context, c extractor.Candidate) Breakdown {
	tree := ctx.Tree
	h := c.Handle

	b := Breakdown{WantsField: ctx.Intent.WantsField}

	b.SimSelf = textsim.Similarity(ctx.Query, c.VisibleText+" "+AttrText(tree, h))
	b.SimContext = textsim.Similarity(ctx.Query, AncestorText(tree, h))
	b.SimLabel = textsim.Similarity(ctx.Query, label.TextFor(tree, ctx.Labels, h))

	form := FormOf(tree, h)
	if form != dom.NoHandle {
		b.InForm = true
		b.FormHasPassword = formHasPassword(tree, form)
		b.FormFieldCount = len(tree.Descendants(form, formFieldTags...))
		if text := dom.Truncate(tree.VisibleText(form), formTextCap); text != "" {
			b.SimForm = textsim.Similarity(ctx.Query, text)
		}
	}

	b.TextField = (c.Tag == "input" && textFieldTypes.Contains(c.Type)) ||
		c.Tag == "textarea" ||
		textFieldRoles.Contains(c.Role)
	b.Select = c.Tag == "select"
	b.Clickable = c.Tag == "button" || c.Tag == "a" ||
		clickableRoles.Contains(c.Role) ||
		(c.Tag == "input" && buttonTypes.Contains(c.Type))

	score := 0
	score += int(WeightSelf * b.SimSelf)
	score += int(WeightContext * b.SimContext)
	score += int(WeightLabel * b.SimLabel)
	score += int(WeightForm * b.SimForm)

	if b.InForm {
		score += BonusInForm
	}
	if b.FormHasPassword {
		score += BonusFormPassword
	}
	score += min(FormFieldCap, FormFieldWeight*b.FormFieldCount)

	if c.VisibleText != "" {
		score += min(VisibleTextCap, utf8.RuneCountInString(c.VisibleText)/VisibleTextDivisor)
	}

	if b.Clickable {
		score += BonusClickable
	}

	if b.WantsField {
		if b.TextField || b.Select {
			score += BonusFieldIntent
		} else {
			score += PenaltyFieldIntent
		}
		if tree.HasAttr(h, "placeholder") {
			score += BonusPlaceholder
		}
		nameID := strings.ToLower(tree.Attr(h, "name") + " " + tree.Attr(h, "id"))
		b.SimNameID = textsim.Similarity(ctx.Query, nameID)
		score += int(WeightNameID * b.SimNameID)
	}

	b.Total = score
	return b
}

// AttrText joins the descriptive attribute values of h with up to three
// class tokens.
func AttrText(tree *dom.Tree, h dom.Handle) string {
	var parts []string
	for _, key := range attrTextKeys {
		if v := tree.Attr(h, key); v != "" {
			parts = append(parts, v)
		}
	}
	classes := tree.Classes(h)
	if len(classes) > attrTextClassCap {
		classes = classes[:attrTextClassCap]
	}
	parts = append(parts, classes...)
	return strings.Join(parts, " ")
}

// AncestorText joins the visible text of up to three element ancestors,
// each cut to 200 characters.
func AncestorText(tree *dom.Tree, h dom.Handle) string {
	var parts []string
	cur := tree.ElementParent(h)
	for hops := 0; cur != dom.NoHandle && hops < ancestorLevels; hops++ {
		if text := tree.VisibleText(cur); text != "" {
			parts = append(parts, dom.Truncate(text, ancestorTextCap))
		}
		cur = tree.ElementParent(cur)
	}
	return strings.Join(parts, " ")
}

// FormOf returns the nearest <form> at or above h, looking at most ten
// levels up.
func FormOf(tree *dom.Tree, h dom.Handle) dom.Handle {
	cur := h
	for hops := 0; cur != dom.NoHandle && hops < formSearchDepth; hops++ {
		if tree.Tag(cur) == "form" {
			return cur
		}
		cur = tree.ElementParent(cur)
	}
	return dom.NoHandle
}

func formHasPassword(tree *dom.Tree, form dom.Handle) bool {
	for _, in := range tree.Descendants(form, "input") {
		if strings.EqualFold(tree.Attr(in, "type"), "password") {
			return true
		}
	}
	return false
}
