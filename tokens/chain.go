package tokens

import (
	"fmt"
	"strings"
)

const DEFAULT_CHAIN = "base"

type Chain struct {
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	ChainID uint64 `json:"chainId"`
}

var chainBySlug = map[string]Chain{
	"base":     {Name: "Base", Slug: "base", ChainID: 8453},
	"ethereum": {Name: "Ethereum", Slug: "ethereum", ChainID: 1},
	"mainnet":  {Name: "Ethereum", Slug: "ethereum", ChainID: 1},
	"eth":      {Name: "Ethereum", Slug: "ethereum", ChainID: 1},
	"optimism": {Name: "Optimism", Slug: "optimism", ChainID: 10},
	"op":       {Name: "Optimism", Slug: "optimism", ChainID: 10},
	"arbitrum": {Name: "Arbitrum", Slug: "arbitrum", ChainID: 42161},
	"arb":      {Name: "Arbitrum", Slug: "arbitrum", ChainID: 42161},
	"polygon":  {Name: "Polygon", Slug: "polygon", ChainID: 137},
	"matic":    {Name: "Polygon", Slug: "polygon", ChainID: 137},
}

// ParseChain resolves a chain slug or alias.
func ParseChain(input string) (Chain, error) {
	norm := strings.ToLower(strings.TrimSpace(input))
	if norm == "" {
		return Chain{}, fmt.Errorf("chain is required")
	}

	chain, ok := chainBySlug[norm]
	if !ok {
		return Chain{}, fmt.Errorf("unsupported chain: %s", input)
	}
	return chain, nil
}
