// Package dict holds the lookup tables used to translate examination
// orders: exact procedure codes, whole-fragment phrases and single English
// tokens, plus a supplemental dictionary that a host can replace at
// runtime.
//
// A Store is read-mostly. The built-in tables never change after New; the
// supplemental dictionary is swapped wholesale through an atomic pointer so
// a reader sees either the old or the new table, never a mix.
package dict

import (
	"strings"
	"sync/atomic"
)

// Kind classifies a token entry for phrase synthesis.
type Kind int

const (
	// Anatomy is a body part ("knee" → 膝).
	Anatomy Kind = iota
	// Side is a laterality marker ("rt" → 右).
	Side
	// View is a projection or patient position ("ap" → 前後位).
	View
)

// Entry maps a source string onto its localized phrase.
type Entry struct {
	Key   string
	Value string
}

// Token is a single-word dictionary entry.
type Token struct {
	Key  string
	Term string
	Kind Kind
}

// Store is the dictionary set consulted by the translator.
type Store struct {
	codes   []Entry
	phrases []Entry
	tokens  []Token

	codeIndex   map[string]string
	phraseIndex map[string]string
	tokenIndex  map[string]int

	extra atomic.Pointer[Supplement]
}

// New builds a store from ordered tables. Token keys are matched
// case-insensitively; the first entry wins when two keys fold together.
func New(codes, phrases []Entry, tokens []Token) *Store {
	s := &Store{
		codes:       append([]Entry(nil), codes...),
		phrases:     append([]Entry(nil), phrases...),
		tokens:      append([]Token(nil), tokens...),
		codeIndex:   make(map[string]string, len(codes)),
		phraseIndex: make(map[string]string, len(phrases)),
		tokenIndex:  make(map[string]int, len(tokens)),
	}
	for _, e := range s.codes {
		if _, ok := s.codeIndex[e.Key]; !ok {
			s.codeIndex[e.Key] = e.Value
		}
	}
	for _, e := range s.phrases {
		if _, ok := s.phraseIndex[e.Key]; !ok {
			s.phraseIndex[e.Key] = e.Value
		}
	}
	for i, t := range s.tokens {
		k := strings.ToLower(t.Key)
		if _, ok := s.tokenIndex[k]; !ok {
			s.tokenIndex[k] = i
		}
	}
	s.extra.Store(emptySupplement)
	return s
}

// Default returns a store loaded with the built-in radiology tables.
func Default() *Store {
	return New(defaultCodes, defaultPhrases, defaultTokens)
}

// Code looks up an exact procedure code such as "*340-0020".
func (s *Store) Code(code string) (string, bool) {
	v, ok := s.codeIndex[code]
	return v, ok
}

// Phrase looks up a whole fragment verbatim, first in the built-in phrase
// table and then in the supplemental dictionary.
func (s *Store) Phrase(fragment string) (string, bool) {
	if v, ok := s.phraseIndex[fragment]; ok {
		return v, true
	}
	return s.Supplemental().Exact(fragment)
}

// Token looks up a single word in the built-in token table.
func (s *Store) Token(key string) (Token, bool) {
	i, ok := s.tokenIndex[strings.ToLower(key)]
	if !ok {
		return Token{}, false
	}
	return s.tokens[i], true
}

// Term resolves a cleaned token: built-in table, then supplemental
// dictionary, then the nearest key within MaxDistance edits. An empty key
// never resolves.
func (s *Store) Term(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	if t, ok := s.Token(key); ok {
		return t.Term, true
	}
	sup := s.Supplemental()
	if v, ok := sup.Folded(key); ok {
		return v, true
	}
	return s.fuzzy(key, sup)
}

// Supplemental returns the current supplemental dictionary. It is never nil.
func (s *Store) Supplemental() *Supplement {
	return s.extra.Load()
}

// ReplaceSupplemental swaps in a new supplemental dictionary. A nil
// argument clears it.
func (s *Store) ReplaceSupplemental(sup *Supplement) {
	if sup == nil {
		sup = emptySupplement
	}
	s.extra.Store(sup)
}
