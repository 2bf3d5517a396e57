package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type Parser struct {
	registry *Registry
}

func New() *Parser {
	return &Parser{registry: DefaultRegistry()}
}

func (p *Parser) RegisterCommand(c CommandDef) {
	p.registry.RegisterCommand(c)
}

func (p *Parser) Verbs() []string {
	return p.registry.Verbs()
}

func (p *Parser) Parse(ctx ParseContext, raw string) Intent {
	intent := Intent{
		Raw:        raw,
		Normalised: normaliseInput(raw),
		Kind:       Unknown,
		Confidence: 0,
	}
	if intent.Normalised == "" {
		intent.Clarify = &ClarifyQuestion{Prompt: "Enter a command."}
		return intent
	}

	tokens := tokenise(intent.Normalised)
	cmdMatch, alternates := p.registry.matchCommand(tokens)
	if cmdMatch.Canonical == "" || cmdMatch.Score < 0.5 {
		intent.Clarify = &ClarifyQuestion{
			Prompt: "I couldn't map that to a command. Try " + strings.Join(p.Verbs(), ", ") + ".",
		}
		return intent
	}

	if len(alternates) > 0 && (cmdMatch.Score-alternates[0].Score) < 0.05 && alternates[0].Score > 0.65 {
		intent.Clarify = &ClarifyQuestion{
			Prompt: "Did you mean:",
			Options: []Intent{
				{Raw: raw, Normalised: cmdMatch.Canonical, Kind: commandKind(cmdMatch.Canonical), Verb: cmdMatch.Canonical, Confidence: cmdMatch.Score},
				{Raw: raw, Normalised: alternates[0].Canonical, Kind: commandKind(alternates[0].Canonical), Verb: alternates[0].Canonical, Confidence: alternates[0].Score},
			},
		}
		return intent
	}

	intent.Verb = cmdMatch.Canonical
	intent.Kind = commandKind(intent.Verb)
	intent.Confidence = clampScore(cmdMatch.Score)

	argsTokens := tokens
	if cmdMatch.Consumed > 0 && len(tokens) >= cmdMatch.Consumed {
		argsTokens = tokens[cmdMatch.Consumed:]
	}
	def, _ := p.registry.command(intent.Verb)

	switch {
	case def.SlotArg:
		argsTokens = dropFiller(argsTokens, "slot", "file", "to", "from", "into")
		if len(argsTokens) == 0 {
			intent.Clarify = &ClarifyQuestion{Prompt: fmt.Sprintf("%s needs a slot number.", def.Canonical)}
			intent.Confidence = 0.42
			return intent
		}
		slot, ok := parseSlotToken(argsTokens[0], ctx.LastSlot)
		if !ok {
			intent.Clarify = &ClarifyQuestion{Prompt: fmt.Sprintf("%q is not a slot number.", argsTokens[0])}
			intent.Confidence = 0.42
			return intent
		}
		intent.Slot = slot
		intent.Args = []string{fmt.Sprintf("%d", slot)}
	case def.Canonical == "go":
		argsTokens = dropFiller(argsTokens, "to", "the")
		if len(argsTokens) == 0 {
			intent.Clarify = &ClarifyQuestion{Prompt: "Where to?", Options: destinationOptions(ctx, 5)}
			intent.Confidence = 0.42
			return intent
		}
		dest := strings.Join(argsTokens, " ")
		matches, confidence, tie := bestMatches(dest, normaliseAll(ctx.Destinations))
		if tie {
			intent.Clarify = &ClarifyQuestion{
				Prompt: "Which place?",
				Options: []Intent{
					{Kind: Command, Verb: "go", Args: []string{matches[0]}, Confidence: confidence},
					{Kind: Command, Verb: "go", Args: []string{matches[1]}, Confidence: confidence - 0.01},
				},
			}
			intent.Confidence = 0.5
			return intent
		}
		if len(matches) == 1 {
			dest = matches[0]
			intent.Confidence = clampScore((intent.Confidence * 0.75) + (confidence * 0.25))
		}
		intent.Args = []string{dest}
	case def.Canonical == "wait":
		if len(argsTokens) > 0 {
			intent.Quantity = parseQuantityToken(argsTokens[0])
			if intent.Quantity == nil {
				intent.Clarify = &ClarifyQuestion{Prompt: "How many hours?"}
				intent.Confidence = 0.42
				return intent
			}
		}
	default:
		intent.Args = append([]string(nil), argsTokens...)
	}

	if def.MaxArgs > 0 && len(intent.Args) > def.MaxArgs {
		intent.Args = append([]string(nil), intent.Args[:def.MaxArgs]...)
		intent.Confidence = clampScore(intent.Confidence - 0.05)
	}

	if intent.Confidence < 0.52 && intent.Clarify == nil {
		intent.Clarify = &ClarifyQuestion{Prompt: "I have low confidence in that parse. Please rephrase or pick a clearer command."}
	}
	return intent
}

func commandKind(verb string) IntentKind {
	switch verb {
	case "help":
		return Help
	case "list", "status", "log":
		return Query
	default:
		return Command
	}
}

func dropFiller(tokens []string, filler ...string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		skip := false
		for _, f := range filler {
			if t == f {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, t)
		}
	}
	return out
}

func normaliseAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if n := normaliseInput(v); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func destinationOptions(ctx ParseContext, maxOptions int) []Intent {
	pool := normaliseAll(ctx.Destinations)
	sort.Strings(pool)
	options := make([]Intent, 0, maxOptions)
	for _, dest := range pool {
		options = append(options, Intent{Kind: Command, Verb: "go", Args: []string{dest}, Confidence: 0.5})
		if len(options) >= maxOptions {
			break
		}
	}
	return options
}

func bestMatches(token string, all []string) ([]string, float64, bool) {
	if len(all) == 0 {
		return nil, 0, false
	}
	type scored struct {
		val   string
		score float64
	}

	results := make([]scored, 0, len(all))
	for _, cand := range all {
		score := 0.0
		switch {
		case token == cand:
			score = 1.0
		case strings.HasPrefix(cand, token) && len(token) >= 2:
			score = 0.9
		default:
			dist := levenshtein.ComputeDistance(token, cand)
			if dist > levenshteinLimit(len(cand)) {
				continue
			}
			score = 0.72 - (0.08 * float64(dist))
		}
		results = append(results, scored{val: cand, score: clampScore(score)})
	}
	if len(results) == 0 {
		return nil, 0, false
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].val < results[j].val
		}
		return results[i].score > results[j].score
	})

	best := results[0]
	tie := len(results) > 1 && (best.score-results[1].score) < 0.05 && results[1].score > 0.6
	if tie {
		return []string{best.val, results[1].val}, best.score, true
	}
	return []string{best.val}, best.score, false
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func IntentToCommandString(intent Intent) string {
	verb := normaliseInput(intent.Verb)
	if verb == "" {
		return ""
	}
	args := make([]string, 0, len(intent.Args)+1)
	for _, arg := range intent.Args {
		n := normaliseInput(arg)
		if n != "" {
			args = append(args, n)
		}
	}
	if intent.Quantity != nil && intent.Quantity.Raw != "" {
		args = append(args, normaliseInput(intent.Quantity.Raw))
	}
	if len(args) == 0 {
		return verb
	}
	return verb + " " + strings.Join(args, " ")
}
