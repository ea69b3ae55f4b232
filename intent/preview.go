package intent

import "fmt"

// Preview renders a one-line human summary of the intent.
func Preview(i Intent) string {
	switch v := i.(type) {
	case *Swap:
		slippage := fmt.Sprintf("max slippage %.2f%%", float64(v.SlippageBps)/100)
		if v.AmountOut != "" && v.AmountIn != "0" {
			return fmt.Sprintf("Swap %s %s for %s %s (%s)", v.AmountIn, v.TokenIn, v.AmountOut, v.TokenOut, slippage)
		}
		if v.AmountOut != "" {
			return fmt.Sprintf("Buy %s %s with %s (%s)", v.AmountOut, v.TokenOut, v.TokenIn, slippage)
		}
		if v.AmountIn == "0" {
			return fmt.Sprintf("Swap %s for %s, amount to be confirmed (%s)", v.TokenIn, v.TokenOut, slippage)
		}
		return fmt.Sprintf("Swap %s %s for %s (%s)", v.AmountIn, v.TokenIn, v.TokenOut, slippage)
	case *Transfer:
		return fmt.Sprintf("Send %s %s to %s", v.Amount, v.Token, v.Recipient)
	case *Bridge:
		return fmt.Sprintf("Bridge %s %s from %s to %s", v.Amount, v.Token, v.FromChain, v.ToChain)
	case *Unknown:
		return fmt.Sprintf("Could not understand request: %s", v.Reason)
	default:
		return ""
	}
}

// Tokens returns the token symbols referenced by the intent.
func Tokens(i Intent) []string {
	switch v := i.(type) {
	case *Swap:
		return []string{v.TokenIn, v.TokenOut}
	case *Transfer:
		return []string{v.Token}
	case *Bridge:
		return []string{v.Token}
	default:
		return nil
	}
}
