package tokens

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

type tokenFile struct {
	Tokens []struct {
		Symbol   string `yaml:"symbol"`
		Address  string `yaml:"address"`
		Decimals uint8  `yaml:"decimals"`
	} `yaml:"tokens"`
	Aliases map[string]string `yaml:"aliases"`
}

// LoadRegistry reads a YAML token table. An empty path yields the default table.
func LoadRegistry(path string) (*Registry, error) {
	if path == "" {
		return NewRegistry(DefaultTokens, DefaultAliases)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}
	return ParseRegistry(data)
}

func ParseRegistry(data []byte) (*Registry, error) {
	var f tokenFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse token file: %w", err)
	}
	if len(f.Tokens) == 0 {
		return nil, fmt.Errorf("token file contains no tokens")
	}

	tokens := make([]Token, 0, len(f.Tokens))
	for _, t := range f.Tokens {
		if !common.IsHexAddress(t.Address) {
			return nil, fmt.Errorf("token %s has invalid address %s", t.Symbol, t.Address)
		}
		tokens = append(tokens, Token{
			Symbol:   t.Symbol,
			Address:  common.HexToAddress(t.Address),
			Decimals: t.Decimals,
		})
	}

	return NewRegistry(tokens, f.Aliases)
}
