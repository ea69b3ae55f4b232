package stream

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/sprintertech/sprinter-gateway/intent"
	"github.com/sprintertech/sprinter-gateway/tokens"
)

type IntentParser interface {
	Parse(text string) intent.Intent
}

type TokenLookup interface {
	Lookup(symbol string) (tokens.Token, error)
}

type TokenPricer interface {
	TokenPrice(ctx context.Context, symbol string) (float64, error)
}

// Reporter narrates the handling of a single free-text request as stream events.
type Reporter struct {
	parser IntentParser
	tokens TokenLookup
	pricer TokenPricer
}

// NewReporter creates a reporter. pricer may be nil, in which case token
// info is returned without prices.
func NewReporter(parser IntentParser, tokens TokenLookup, pricer TokenPricer) *Reporter {
	return &Reporter{
		parser: parser,
		tokens: tokens,
		pricer: pricer,
	}
}

func (r *Reporter) Execute(ctx context.Context, text string, emitter *Emitter) error {
	if err := emitter.Log("Received request, parsing intent"); err != nil {
		return err
	}

	i := r.parser.Parse(text)
	if unknown, ok := i.(*intent.Unknown); ok {
		if err := emitter.Logf("Could not classify request: %s", unknown.Reason); err != nil {
			return err
		}

		return emitter.Result(ResultData{
			Success:    false,
			Intent:     i,
			Preview:    intent.Preview(i),
			Confidence: intent.Confidence(i),
		})
	}

	if err := emitter.Logf("Detected %s intent", i.Kind()); err != nil {
		return err
	}

	info := make([]TokenInfo, 0)
	for _, symbol := range intent.Tokens(i) {
		token, err := r.tokens.Lookup(symbol)
		if err != nil {
			return err
		}

		ti := TokenInfo{
			Symbol:   token.Symbol,
			Address:  token.Address.Hex(),
			Decimals: token.Decimals,
		}
		if r.pricer != nil {
			price, err := r.pricer.TokenPrice(ctx, token.Symbol)
			if err != nil {
				log.Warn().Err(err).Str("symbol", token.Symbol).Msg("Failed fetching token price")
			} else {
				ti.PriceUsd = &price
			}
		}
		info = append(info, ti)

		if err := emitter.Logf("Resolved %s to %s", token.Symbol, ti.Address); err != nil {
			return err
		}
	}

	if err := emitter.Log("Validation complete"); err != nil {
		return err
	}

	return emitter.Result(ResultData{
		Success:    true,
		Intent:     i,
		Preview:    intent.Preview(i),
		TokenInfo:  info,
		Confidence: intent.Confidence(i),
	})
}
