package tokens_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sprintertech/sprinter-gateway/tokens"
	"github.com/stretchr/testify/suite"
)

type TokenFileTestSuite struct {
	suite.Suite
}

func TestRunTokenFileTestSuite(t *testing.T) {
	suite.Run(t, new(TokenFileTestSuite))
}

func (s *TokenFileTestSuite) Test_LoadRegistry_EmptyPathUsesDefaults() {
	registry, err := tokens.LoadRegistry("")

	s.Nil(err)
	s.Len(registry.Tokens(), len(tokens.DefaultTokens))
}

func (s *TokenFileTestSuite) Test_LoadRegistry_ValidFile() {
	path := filepath.Join(s.T().TempDir(), "tokens.yaml")
	err := os.WriteFile(path, []byte(`
tokens:
  - symbol: usdc
    address: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"
    decimals: 6
  - symbol: weth
    address: "0x4200000000000000000000000000000000000006"
    decimals: 18
aliases:
  eth: weth
`), 0600)
	s.Nil(err)

	registry, err := tokens.LoadRegistry(path)

	s.Nil(err)
	token, err := registry.Lookup("ETH")
	s.Nil(err)
	s.Equal("WETH", token.Symbol)
}

func (s *TokenFileTestSuite) Test_ParseRegistry_InvalidAddress() {
	_, err := tokens.ParseRegistry([]byte(`
tokens:
  - symbol: usdc
    address: "not-an-address"
    decimals: 6
`))

	s.NotNil(err)
	s.Contains(err.Error(), "invalid address")
}

func (s *TokenFileTestSuite) Test_ParseRegistry_Duplicate() {
	_, err := tokens.ParseRegistry([]byte(`
tokens:
  - symbol: usdc
    address: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913"
    decimals: 6
  - symbol: USDC
    address: "0x4200000000000000000000000000000000000006"
    decimals: 6
`))

	s.NotNil(err)
}

func (s *TokenFileTestSuite) Test_ParseRegistry_Empty() {
	_, err := tokens.ParseRegistry([]byte(`tokens: []`))

	s.NotNil(err)
}
