package intent

import "encoding/json"

type Kind string

const (
	KindSwap     Kind = "swap"
	KindTransfer Kind = "transfer"
	KindBridge   Kind = "bridge"
	KindUnknown  Kind = "unknown"
)

// Intent is implemented only by *Swap, *Transfer, *Bridge and *Unknown.
type Intent interface {
	Kind() Kind
	common() Common
}

type Common struct {
	RawInput   string  `json:"rawInput"`
	Confidence float64 `json:"confidence"`
}

func (c Common) common() Common { return c }

type Swap struct {
	Common
	TokenIn  string `json:"tokenIn"`
	TokenOut string `json:"tokenOut"`
	AmountIn string `json:"amountIn"`
	// AmountOut is set for exact-output requests like "buy 2 eth with usdc".
	AmountOut   string `json:"amountOut,omitempty"`
	SlippageBps uint32 `json:"slippageBps"`
}

type Transfer struct {
	Common
	Token     string `json:"token"`
	Amount    string `json:"amount"`
	Recipient string `json:"to"`
}

type Bridge struct {
	Common
	Token     string `json:"token"`
	Amount    string `json:"amount"`
	FromChain string `json:"fromChain"`
	ToChain   string `json:"toChain"`
}

type Unknown struct {
	Common
	Reason string `json:"reason"`
}

func (*Swap) Kind() Kind     { return KindSwap }
func (*Transfer) Kind() Kind { return KindTransfer }
func (*Bridge) Kind() Kind   { return KindBridge }
func (*Unknown) Kind() Kind  { return KindUnknown }

func (i *Swap) MarshalJSON() ([]byte, error) {
	type swap Swap
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*swap
	}{KindSwap, (*swap)(i)})
}

func (i *Transfer) MarshalJSON() ([]byte, error) {
	type transfer Transfer
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*transfer
	}{KindTransfer, (*transfer)(i)})
}

func (i *Bridge) MarshalJSON() ([]byte, error) {
	type bridge Bridge
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*bridge
	}{KindBridge, (*bridge)(i)})
}

func (i *Unknown) MarshalJSON() ([]byte, error) {
	type unknown Unknown
	return json.Marshal(struct {
		Type Kind `json:"type"`
		*unknown
	}{KindUnknown, (*unknown)(i)})
}

// RawInput returns the text the intent was parsed from.
func RawInput(i Intent) string {
	return i.common().RawInput
}

func Confidence(i Intent) float64 {
	return i.common().Confidence
}

func reject(raw string, reason string) *Unknown {
	return &Unknown{
		Common: Common{RawInput: raw, Confidence: 0},
		Reason: reason,
	}
}
