package tokens

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var ErrTokenNotFound = errors.New("token not found")

// NATIVE_TOKEN_ADDRESS is the conventional placeholder for the chain's native asset.
var NATIVE_TOKEN_ADDRESS = common.HexToAddress("0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE")

type Token struct {
	Symbol   string         `json:"symbol"`
	Address  common.Address `json:"address"`
	Decimals uint8          `json:"decimals"`
}

// DefaultTokens is the Base mainnet token table.
var DefaultTokens = []Token{
	{Symbol: "ETH", Address: NATIVE_TOKEN_ADDRESS, Decimals: 18},
	{Symbol: "WETH", Address: common.HexToAddress("0x4200000000000000000000000000000000000006"), Decimals: 18},
	{Symbol: "USDC", Address: common.HexToAddress("0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"), Decimals: 6},
	{Symbol: "USDBC", Address: common.HexToAddress("0xd9aAEc86B65D86f6A7B5B1b0c42FFA531710b6CA"), Decimals: 6},
	{Symbol: "DAI", Address: common.HexToAddress("0x50c5725949A6F0c72E6C4a641F24049A917DB0Cb"), Decimals: 18},
	{Symbol: "CBETH", Address: common.HexToAddress("0x2Ae3F1Ec7F1F5012CFEab0185bfc7aa3cf0DEc22"), Decimals: 18},
	{Symbol: "CBBTC", Address: common.HexToAddress("0xcbB7C0000aB88B473b1f5aFd9ef808440eed33Bf"), Decimals: 8},
	{Symbol: "AERO", Address: common.HexToAddress("0x940181a94A35A4569E4529A3CDfB74e38FD98631"), Decimals: 18},
}

var DefaultAliases = map[string]string{
	"ETHER": "ETH",
	"BTC":   "CBBTC",
	"USD":   "USDC",
}

// Registry is an immutable, case-insensitive symbol table.
type Registry struct {
	tokens  map[string]Token
	aliases map[string]string
}

// NewRegistry builds a registry from the provided table. Duplicate symbols,
// aliases shadowing a symbol and aliases pointing at unknown symbols are rejected.
func NewRegistry(tokens []Token, aliases map[string]string) (*Registry, error) {
	r := &Registry{
		tokens:  make(map[string]Token, len(tokens)),
		aliases: make(map[string]string, len(aliases)),
	}

	for _, t := range tokens {
		symbol := canonical(t.Symbol)
		if symbol == "" {
			return nil, fmt.Errorf("token with address %s has empty symbol", t.Address.Hex())
		}
		if _, ok := r.tokens[symbol]; ok {
			return nil, fmt.Errorf("duplicate token symbol %s", symbol)
		}

		t.Symbol = symbol
		r.tokens[symbol] = t
	}

	for alias, target := range aliases {
		alias = canonical(alias)
		target = canonical(target)
		if _, ok := r.tokens[alias]; ok {
			return nil, fmt.Errorf("alias %s shadows registered token", alias)
		}
		if _, ok := r.tokens[target]; !ok {
			return nil, fmt.Errorf("alias %s points to unknown token %s", alias, target)
		}
		if existing, ok := r.aliases[alias]; ok && existing != target {
			return nil, fmt.Errorf("duplicate alias %s", alias)
		}

		r.aliases[alias] = target
	}

	return r, nil
}

// Normalize returns the canonical symbol for the input. Unknown symbols are
// returned uppercased so callers can report them.
func (r *Registry) Normalize(symbol string) string {
	s := canonical(symbol)
	if target, ok := r.aliases[s]; ok {
		return target
	}
	return s
}

func (r *Registry) Lookup(symbol string) (Token, error) {
	t, ok := r.tokens[r.Normalize(symbol)]
	if !ok {
		return Token{}, fmt.Errorf("%w: %s", ErrTokenNotFound, strings.TrimSpace(symbol))
	}
	return t, nil
}

func (r *Registry) Resolve(symbol string) (common.Address, error) {
	t, err := r.Lookup(symbol)
	if err != nil {
		return common.Address{}, err
	}
	return t.Address, nil
}

// Tokens returns the registered tokens sorted by symbol.
func (r *Registry) Tokens() []Token {
	out := make([]Token, 0, len(r.tokens))
	for _, t := range r.tokens {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

func canonical(symbol string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(symbol), "$"))
}
