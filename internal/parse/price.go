package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var amountRe = regexp.MustCompile(`\d+`)

// BalanceUnknown is returned when the price string carries no digits and the
// outstanding balance cannot be computed.
const BalanceUnknown = "to be calculated"

// Amount extracts the numeric amount embedded in a price string such as
// "50000 ariary". The second return value is false when the string carries no
// digits.
func Amount(price string) (int, bool) {
	m := amountRe.FindString(price)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Balance computes the outstanding balance after the deposit, keeping whatever
// currency text surrounds the amount: Balance("50000 ariary", 10000) is
// "40000 ariary". A price with no parsable amount yields BalanceUnknown.
func Balance(price string, deposit int) string {
	total, ok := Amount(price)
	if !ok {
		return BalanceUnknown
	}
	unit := strings.TrimSpace(amountRe.ReplaceAllLiteralString(price, ""))
	balance := total - deposit
	if unit == "" {
		return strconv.Itoa(balance)
	}
	return fmt.Sprintf("%d %s", balance, unit)
}
