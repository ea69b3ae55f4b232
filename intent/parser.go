package intent

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/sprintertech/sprinter-gateway/tokens"
)

const (
	HIGH_CONFIDENCE      = 0.9
	DEFAULT_SLIPPAGE_BPS = 50
	MAX_SLIPPAGE_BPS     = 5000
	DEFAULT_STABLECOIN   = "USDC"
	MAX_ADDRESS_DIGITS   = 40
)

const (
	amountExpr = `(\d*\.?\d+)`
	symbolExpr = `\$?([a-z][a-z0-9]*)`
)

var (
	slippagePattern = regexp.MustCompile(`(?i)(\d*\.?\d+)\s*%\s*slippage|slippage\s*(?:of\s*|:\s*)?(\d*\.?\d+)\s*%`)
	wordPattern     = regexp.MustCompile(`[a-z]+`)
	// a direction clause after the swapped token that the swap rule left unread
	counterClausePattern = regexp.MustCompile(`(?i)\b(?:swap|sell|buy)\s+` + amountExpr + `\s+` + symbolExpr +
		`\s+(?:for|to|into|with)\s+\S`)
)

type TokenLookup interface {
	Lookup(symbol string) (tokens.Token, error)
}

// rule is one entry of the grammar: when any keyword is present and the
// pattern matches, build produces the intent from the submatches.
type rule struct {
	name     string
	keywords []string
	pattern  *regexp.Regexp
	build    func(p *Parser, raw string, m []string) (Intent, error)
}

// rules are evaluated in order, first match wins.
var rules = []rule{
	{
		name:     "bridge",
		keywords: []string{"bridge"},
		pattern: regexp.MustCompile(`(?i)\bbridge\s+` + amountExpr + `\s+` + symbolExpr +
			`(?:\s+from\s+([a-z0-9-]+))?\s+(?:to|into|onto)\s+([a-z0-9-]+)`),
		build: (*Parser).buildBridge,
	},
	{
		name:     "transfer",
		keywords: []string{"send", "transfer"},
		pattern: regexp.MustCompile(`(?i)\b(?:send|transfer)\s+` + amountExpr + `\s+` + symbolExpr +
			`\s+to\s+(0x[0-9a-f]+|[a-z0-9-]+(?:\.[a-z0-9-]+)*\.eth)\b`),
		build: (*Parser).buildTransfer,
	},
	{
		name:     "swap",
		keywords: []string{"swap", "buy", "sell"},
		pattern: regexp.MustCompile(`(?i)\b(swap|sell|buy)\s+` + amountExpr + `\s+` + symbolExpr +
			`(?:\s+(for|to|into|with)\s+(?:` + amountExpr + `\s+)?` + symbolExpr + `)?`),
		build: (*Parser).buildSwap,
	},
	{
		name:     "buy-with",
		keywords: []string{"buy"},
		pattern: regexp.MustCompile(`(?i)\bbuy\s+` + symbolExpr + `\s+with\s+(?:` + amountExpr + `\s+)?` + symbolExpr),
		build:    (*Parser).buildBuyWith,
	},
}

func (r rule) triggered(words map[string]struct{}) bool {
	for _, k := range r.keywords {
		if _, ok := words[k]; ok {
			return true
		}
	}
	return false
}

// Parser turns free text into a typed intent. It holds no mutable state and
// is safe for concurrent use.
type Parser struct {
	tokens TokenLookup
}

func NewParser(tokens TokenLookup) *Parser {
	return &Parser{
		tokens: tokens,
	}
}

// Parse never fails; input that cannot be classified or validated is
// returned as *Unknown with the reason.
func (p *Parser) Parse(text string) Intent {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return reject(text, "empty request")
	}

	words := make(map[string]struct{})
	for _, w := range wordPattern.FindAllString(strings.ToLower(trimmed), -1) {
		words[w] = struct{}{}
	}

	triggered := false
	for _, r := range rules {
		if !r.triggered(words) {
			continue
		}
		triggered = true

		m := r.pattern.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}

		i, err := r.build(p, text, m)
		if err != nil {
			return reject(text, err.Error())
		}
		return i
	}

	if triggered {
		return reject(text, "could not extract amount and tokens from request")
	}
	return reject(text, "no recognized action, expected one of swap, buy, sell, send, transfer, bridge")
}

func (p *Parser) buildSwap(raw string, m []string) (Intent, error) {
	verb := strings.ToLower(m[1])
	amount := m[2]
	named := m[3]
	direction := strings.ToLower(m[4])
	counterAmount := m[5]
	counter := m[6]

	if counter == "" && counterClausePattern.MatchString(slippagePattern.ReplaceAllString(raw, "")) {
		return nil, fmt.Errorf("could not read the token after '%s %s %s'", verb, amount, named)
	}

	switch {
	case counter == "" && verb == "buy":
		return p.swap(raw, DEFAULT_STABLECOIN, named, "", amount)
	case counter == "":
		return p.swap(raw, named, DEFAULT_STABLECOIN, amount, "")
	case direction == "with":
		return p.swap(raw, counter, named, counterAmount, amount)
	default:
		return p.swap(raw, named, counter, amount, counterAmount)
	}
}

func (p *Parser) buildBuyWith(raw string, m []string) (Intent, error) {
	out := m[1]
	amount := m[2]
	in := m[3]

	return p.swap(raw, in, out, amount, "")
}

// swap validates a swap candidate. An empty amountIn means the input amount
// was not stated and is recorded as "0".
func (p *Parser) swap(raw, in, out, amountIn, amountOut string) (Intent, error) {
	tokenIn, err := p.tokens.Lookup(in)
	if err != nil {
		return nil, err
	}
	tokenOut, err := p.tokens.Lookup(out)
	if err != nil {
		return nil, err
	}
	if tokenIn.Symbol == tokenOut.Symbol {
		return nil, fmt.Errorf("cannot swap %s for itself", tokenIn.Symbol)
	}

	if amountIn == "" {
		amountIn = "0"
	} else if amountIn, err = validAmount(amountIn, tokenIn); err != nil {
		return nil, err
	}
	if amountOut != "" {
		if amountOut, err = validAmount(amountOut, tokenOut); err != nil {
			return nil, err
		}
	}

	slippage, err := slippageBps(raw)
	if err != nil {
		return nil, err
	}

	return &Swap{
		Common:      Common{RawInput: raw, Confidence: HIGH_CONFIDENCE},
		TokenIn:     tokenIn.Symbol,
		TokenOut:    tokenOut.Symbol,
		AmountIn:    amountIn,
		AmountOut:   amountOut,
		SlippageBps: slippage,
	}, nil
}

func (p *Parser) buildTransfer(raw string, m []string) (Intent, error) {
	token, err := p.tokens.Lookup(m[2])
	if err != nil {
		return nil, err
	}
	amount, err := validAmount(m[1], token)
	if err != nil {
		return nil, err
	}

	recipient := m[3]
	if strings.HasPrefix(strings.ToLower(recipient), "0x") && len(recipient)-2 > MAX_ADDRESS_DIGITS {
		return nil, fmt.Errorf("invalid recipient address %s", recipient)
	}

	return &Transfer{
		Common:    Common{RawInput: raw, Confidence: HIGH_CONFIDENCE},
		Token:     token.Symbol,
		Amount:    amount,
		Recipient: recipient,
	}, nil
}

func (p *Parser) buildBridge(raw string, m []string) (Intent, error) {
	token, err := p.tokens.Lookup(m[2])
	if err != nil {
		return nil, err
	}
	amount, err := validAmount(m[1], token)
	if err != nil {
		return nil, err
	}

	source := m[3]
	if source == "" {
		source = tokens.DEFAULT_CHAIN
	}
	from, err := tokens.ParseChain(source)
	if err != nil {
		return nil, err
	}
	to, err := tokens.ParseChain(m[4])
	if err != nil {
		return nil, err
	}
	if from.Slug == to.Slug {
		return nil, fmt.Errorf("source and destination chain are both %s", from.Slug)
	}

	return &Bridge{
		Common:    Common{RawInput: raw, Confidence: HIGH_CONFIDENCE},
		Token:     token.Symbol,
		Amount:    amount,
		FromChain: from.Slug,
		ToChain:   to.Slug,
	}, nil
}

func validAmount(amount string, token tokens.Token) (string, error) {
	norm, err := tokens.NormalizeDecimal(amount)
	if err != nil {
		return "", err
	}
	if tokens.IsZero(norm) {
		return "", fmt.Errorf("amount must be greater than zero")
	}
	if _, err := tokens.ToBaseUnits(norm, token.Decimals); err != nil {
		return "", err
	}
	return norm, nil
}

func slippageBps(raw string) (uint32, error) {
	m := slippagePattern.FindStringSubmatch(raw)
	if m == nil {
		return DEFAULT_SLIPPAGE_BPS, nil
	}

	value := m[1]
	if value == "" {
		value = m[2]
	}
	percent, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid slippage %s", value)
	}

	bps := math.Round(percent * 100)
	if bps > MAX_SLIPPAGE_BPS {
		return 0, fmt.Errorf("slippage %s%% exceeds maximum of %d%%", value, MAX_SLIPPAGE_BPS/100)
	}
	return uint32(bps), nil
}
