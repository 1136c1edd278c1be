// Package translate turns one examination-order fragment such as
// "*340-0004 Lt Ankle AP+Lat" into an annotated string carrying its
// localized reading.
//
// Resolution is first-match-wins: exact procedure code, exact phrase,
// phrase synthesized from side/body/view tokens, and finally a per-token
// fallback with fuzzy matching. Translate never fails; a fragment nothing
// recognizes comes back unchanged.
package translate

import (
	"regexp"
	"slices"
	"strings"

	"patientid/internal/dict"
	"patientid/internal/textutil"
)

// Separator joins a fragment and its translation.
const Separator = " -> "

var (
	reLookupSplit = regexp.MustCompile(`[\s+/,]+`)
	reRuleSplit   = regexp.MustCompile(`[\s+/,\-]+`)
	reCodeToken   = regexp.MustCompile(`^\*?\d[\dA-Za-z-]*$`)
	reNonLetter   = regexp.MustCompile(`[^A-Za-z]`)
)

// Vocabulary holds the joining words used by phrase synthesis.
type Vocabulary struct {
	// And joins the last two views ("前後位和側位").
	And string
	// Comma joins earlier views in a list of three or more.
	Comma string
}

// DefaultVocabulary is Traditional Chinese.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{And: "和", Comma: "、"}
}

// Translator resolves fragments against a dictionary store.
type Translator struct {
	store *dict.Store
	vocab Vocabulary
}

// Option configures a Translator.
type Option func(*Translator)

// WithVocabulary overrides the joining words.
func WithVocabulary(v Vocabulary) Option {
	return func(t *Translator) { t.vocab = v }
}

// New returns a translator reading from store.
func New(store *dict.Store, opts ...Option) *Translator {
	t := &Translator{store: store, vocab: DefaultVocabulary()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate annotates fragment with its translation. A fragment that
// already carries a translation is returned unchanged.
func (t *Translator) Translate(fragment string) string {
	if fragment == "" || strings.Contains(fragment, Separator) {
		return fragment
	}

	tokens := splitTokens(reLookupSplit, fragment)
	if len(tokens) > 0 {
		if phrase, ok := t.store.Code(tokens[0]); ok {
			return fragment + Separator + phrase
		}
	}

	if phrase, ok := t.store.Phrase(fragment); ok {
		return fragment + Separator + phrase
	}

	if phrase := t.Synthesize(fragment); phrase != "" {
		return fragment + Separator + phrase
	}

	return t.fallback(tokens)
}

// Synthesize builds side + body part + views from the built-in token
// table. It returns "" when no token is recognized.
func (t *Translator) Synthesize(fragment string) string {
	var (
		side  string
		body  string
		views []string
	)

	for _, tok := range splitTokens(reRuleSplit, fragment) {
		if reCodeToken.MatchString(tok) {
			continue
		}
		key := letterKey(tok)
		if key == "" {
			continue
		}
		entry, ok := t.store.Token(key)
		if !ok {
			continue
		}
		switch entry.Kind {
		case dict.Side:
			side = entry.Term
		case dict.View:
			if !slices.Contains(views, entry.Term) {
				views = append(views, entry.Term)
			}
		case dict.Anatomy:
			if body == "" {
				body = entry.Term
			}
		}
	}

	return side + body + t.joinViews(views)
}

func (t *Translator) joinViews(views []string) string {
	switch len(views) {
	case 0:
		return ""
	case 1:
		return views[0]
	case 2:
		return views[0] + t.vocab.And + views[1]
	}
	last := len(views) - 1
	return strings.Join(views[:last], t.vocab.Comma) + t.vocab.And + views[last]
}

// fallback renders each resolvable token as "token term"; everything else
// passes through. A token already followed by its own term is not
// annotated again.
func (t *Translator) fallback(tokens []string) string {
	out := make([]string, 0, len(tokens)*2)
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		term, ok := t.store.Term(letterKey(tok))
		if !ok {
			out = append(out, tok)
			continue
		}
		n := len(strings.Fields(term))
		if i+n < len(tokens) && strings.Join(tokens[i+1:i+1+n], " ") == term {
			out = append(out, tokens[i:i+1+n]...)
			i += n
			continue
		}
		out = append(out, tok, term)
	}
	return strings.Join(out, " ")
}

// Target returns the translated part of an annotated string: the text
// after the separator, or from the first ideograph on. Strings with
// neither are returned as is.
func Target(annotated string) string {
	if _, after, ok := strings.Cut(annotated, strings.TrimSpace(Separator)); ok {
		return strings.TrimSpace(after)
	}
	if i := textutil.IndexHan(annotated); i >= 0 {
		return annotated[i:]
	}
	return annotated
}

func splitTokens(re *regexp.Regexp, s string) []string {
	parts := re.Split(s, -1)
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func letterKey(tok string) string {
	return strings.ToLower(reNonLetter.ReplaceAllString(tok, ""))
}
