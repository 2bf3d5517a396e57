package parser

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

type commandPhrase struct {
	canonical string
	alias     string
	tokens    []string
}

type Registry struct {
	commands map[string]CommandDef
	phrases  []commandPhrase
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]CommandDef),
	}
}

func (r *Registry) RegisterCommand(c CommandDef) {
	c.Canonical = normaliseInput(c.Canonical)
	if c.Canonical == "" {
		return
	}
	if c.HandlerKey == "" {
		c.HandlerKey = c.Canonical
	}
	r.commands[c.Canonical] = c

	r.phrases = append(r.phrases, commandPhrase{
		canonical: c.Canonical,
		alias:     c.Canonical,
		tokens:    tokenise(c.Canonical),
	})
	for _, a := range c.Aliases {
		n := normaliseInput(a)
		if n == "" {
			continue
		}
		r.phrases = append(r.phrases, commandPhrase{
			canonical: c.Canonical,
			alias:     n,
			tokens:    tokenise(n),
		})
	}
}

func (r *Registry) command(canonical string) (CommandDef, bool) {
	canonical = normaliseInput(canonical)
	cmd, ok := r.commands[canonical]
	return cmd, ok
}

type matchSource string

const (
	sourceExact  matchSource = "exact"
	sourceAlias  matchSource = "alias"
	sourcePrefix matchSource = "prefix"
	sourceFuzzy  matchSource = "lev"
)

type commandCandidate struct {
	Canonical string
	Alias     string
	Consumed  int
	Score     float64
	Source    matchSource
}

const maxAlternatives = 4

// matchCommand scores every registered phrase against the leading tokens
// and returns the best candidate plus up to four alternatives for other
// commands.
func (r *Registry) matchCommand(tokens []string) (commandCandidate, []commandCandidate) {
	if len(tokens) == 0 {
		return commandCandidate{}, nil
	}
	in := strings.Join(tokens, " ")
	cands := make([]commandCandidate, 0, len(r.phrases))
	for _, phrase := range r.phrases {
		if c, ok := scorePhrase(phrase, tokens, in); ok {
			cands = append(cands, c)
		}
	}
	if len(cands) == 0 {
		return commandCandidate{}, nil
	}

	slices.SortStableFunc(cands, func(a, b commandCandidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Consumed, a.Consumed); c != 0 {
			return c
		}
		return strings.Compare(a.Canonical, b.Canonical)
	})

	best := cands[0]
	alts := make([]commandCandidate, 0, maxAlternatives)
	seen := map[string]bool{best.Canonical: true}
	for _, c := range cands[1:] {
		if len(alts) == maxAlternatives {
			break
		}
		if !seen[c.Canonical] {
			seen[c.Canonical] = true
			alts = append(alts, c)
		}
	}
	return best, alts
}

// scorePhrase tries an exact or alias hit, then a single-word prefix, then
// a Levenshtein match within levenshteinLimit.
func scorePhrase(phrase commandPhrase, tokens []string, in string) (commandCandidate, bool) {
	if len(phrase.tokens) == 0 {
		return commandCandidate{}, false
	}
	c := commandCandidate{Canonical: phrase.canonical, Alias: phrase.alias}
	isAlias := phrase.alias != phrase.canonical

	consumed := min(len(tokens), len(phrase.tokens))
	prefix := strings.Join(tokens[:consumed], " ")
	if consumed == len(phrase.tokens) && prefix == phrase.alias {
		c.Consumed, c.Score, c.Source = consumed, 1.0, sourceExact
		if isAlias {
			c.Score, c.Source = 0.97, sourceAlias
		}
		return c, true
	}
	if len(phrase.tokens) == 1 && len(tokens[0]) >= 2 && strings.HasPrefix(phrase.alias, tokens[0]) {
		c.Consumed, c.Score, c.Source = 1, 0.9, sourcePrefix
		return c, true
	}

	cut, compare := consumed, prefix
	if len(phrase.tokens) > 1 && len(tokens) >= len(phrase.tokens) {
		cut = len(phrase.tokens)
		compare = strings.Join(tokens[:cut], " ")
	}
	if len(compare) < 3 {
		return commandCandidate{}, false
	}
	dist := levenshtein.ComputeDistance(compare, phrase.alias)
	if dist > levenshteinLimit(len(phrase.alias)) {
		return commandCandidate{}, false
	}
	c.Consumed, c.Source = cut, sourceFuzzy
	c.Score = 0.72 - 0.08*float64(dist)
	if strings.Contains(in, phrase.alias) {
		c.Score += 0.04
	}
	if isAlias {
		c.Score += 0.03
	}
	return c, true
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func DefaultRegistry() *Registry {
	r := NewRegistry()
	commands := []CommandDef{
		{Canonical: "help", Aliases: []string{"h", "commands", "?"}, HandlerKey: "help"},
		{Canonical: "list", Aliases: []string{"ls", "slots", "files"}, HandlerKey: "list"},
		{Canonical: "status", Aliases: []string{"info", "where am i"}, HandlerKey: "status"},
		{Canonical: "autosave", Aliases: []string{"auto", "auto save", "quicksave"}, HandlerKey: "autosave"},
		{Canonical: "save", Aliases: []string{"write", "save game"}, MinArgs: 1, MaxArgs: 1, SlotArg: true, HandlerKey: "save"},
		{Canonical: "load", Aliases: []string{"restore", "continue", "load game"}, MinArgs: 1, MaxArgs: 1, SlotArg: true, HandlerKey: "load"},
		{Canonical: "go", Aliases: []string{"walk", "move", "travel"}, MinArgs: 1, MaxArgs: 3, HandlerKey: "go"},
		{Canonical: "wait", Aliases: []string{"rest", "sleep"}, MinArgs: 0, MaxArgs: 1, HandlerKey: "wait"},
		{Canonical: "log", Aliases: []string{"history", "messages"}, HandlerKey: "log"},
		{Canonical: "quit", Aliases: []string{"exit", "bye"}, HandlerKey: "quit"},
	}
	for _, cmd := range commands {
		r.RegisterCommand(cmd)
	}
	return r
}

// Verbs lists canonical command names in registration order.
func (r *Registry) Verbs() []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(r.commands))
	for _, phrase := range r.phrases {
		if seen[phrase.canonical] {
			continue
		}
		seen[phrase.canonical] = true
		out = append(out, phrase.canonical)
	}
	return out
}
