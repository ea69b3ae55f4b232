package tokens_test

import (
	"testing"

	"github.com/sprintertech/sprinter-gateway/tokens"
)

func Test_NormalizeDecimal(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "1", want: "1"},
		{input: "01.50", want: "1.5"},
		{input: ".25", want: "0.25"},
		{input: "000", want: "0"},
		{input: "2.000", want: "2"},
		{input: "1.", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "abc", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := tokens.NormalizeDecimal(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func Test_ToBaseUnits(t *testing.T) {
	tests := []struct {
		input    string
		decimals uint8
		want     string
		wantErr  bool
	}{
		{input: "1", decimals: 6, want: "1000000"},
		{input: "1.5", decimals: 18, want: "1500000000000000000"},
		{input: "0.000001", decimals: 6, want: "1"},
		{input: "0.0000001", decimals: 6, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := tokens.ToBaseUnits(tc.input, tc.decimals)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tc.want {
				t.Errorf("got %s, want %s", got.String(), tc.want)
			}
		})
	}
}
