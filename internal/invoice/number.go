package invoice

import (
	"fmt"
	"strconv"
	"strings"
)

const numberPrefix = "INV-"

// NextNumber computes the invoice number following last. An empty or
// unparseable last number restarts the sequence at 1.
//
// This read-last-and-increment scheme is not safe under concurrent creation;
// the unique constraint on the invoice_number column is the only backstop,
// and a colliding writer gets a duplicate-key error to retry.
func NextNumber(last string) string {
	next := 1
	if last != "" {
		if n, err := strconv.Atoi(strings.TrimPrefix(last, numberPrefix)); err == nil {
			next = n + 1
		}
	}
	return FormatNumber(next)
}

// FormatNumber renders n as INV- followed by at least four digits.
// Numbers past 9999 simply widen.
func FormatNumber(n int) string {
	return fmt.Sprintf("%s%04d", numberPrefix, n)
}
