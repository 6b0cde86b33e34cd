package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JaipaNero/Inventory-Management-System/internal/application/ledger"
)

func TestFormatTicket_PaddingOchoDigitos(t *testing.T) {
	assert.Equal(t, "3300000001", ledger.FormatTicket(1))
	assert.Equal(t, "3300000007", ledger.FormatTicket(7))
	assert.Equal(t, "3300123456", ledger.FormatTicket(123456))
	assert.Equal(t, "3399999999", ledger.FormatTicket(99999999))
}

// Secuencias por encima de 8 dígitos ensanchan el número, nunca truncan.
func TestFormatTicket_DesbordaElAnchoFijo(t *testing.T) {
	assert.Equal(t, "33100000000", ledger.FormatTicket(100000000))
	assert.Equal(t, "33123456789012", ledger.FormatTicket(123456789012))
}

func TestParseTicketSequence_RoundTrip(t *testing.T) {
	for _, seq := range []int64{1, 7, 99999999, 100000000} {
		got, ok := ledger.ParseTicketSequence(ledger.FormatTicket(seq))
		assert.True(t, ok)
		assert.Equal(t, seq, got)
	}
}

func TestParseTicketSequence_EntradasInvalidas(t *testing.T) {
	cases := []string{"", "33", "4400000001", "33abc", "abc", "33-1"}
	for _, c := range cases {
		_, ok := ledger.ParseTicketSequence(c)
		assert.False(t, ok, "debe rechazar %q", c)
	}
}
