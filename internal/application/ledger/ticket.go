package ledger

import (
	"fmt"
	"strconv"
	"strings"
)

// TicketPrefix prefijo fijo de todos los números de tiquete del libro mayor.
const TicketPrefix = "33"

// FormatTicket construye el número de tiquete visible: "33" seguido de la
// secuencia decimal con padding a 8 dígitos (ej. 3300000007). Secuencias por
// encima de 8 dígitos ensanchan el número en vez de truncar o fallar.
func FormatTicket(seq int64) string {
	return fmt.Sprintf("%s%08d", TicketPrefix, seq)
}

// ParseTicketSequence extrae la secuencia numérica de un número de tiquete.
// Devuelve false si el valor no tiene el prefijo o la parte numérica es inválida.
func ParseTicketSequence(ticket string) (int64, bool) {
	rest, ok := strings.CutPrefix(ticket, TicketPrefix)
	if !ok || rest == "" {
		return 0, false
	}
	seq, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}
