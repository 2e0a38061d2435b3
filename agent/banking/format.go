package banking

import (
	"strconv"
	"strings"
)

// FormatUSD renders an amount as a dollar string with two decimals and
// thousands separators, e.g. 25000.5 -> "$25,000.50". Negative amounts keep
// the sign after the dollar symbol ("$-55.20"), matching the message shapes
// the assistant reads to users.
func FormatUSD(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	dot := strings.IndexByte(s, '.')
	intPart, fracPart := s[:dot], s[dot:]

	var b strings.Builder
	b.WriteString("$")
	b.WriteString(sign)
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
		if len(intPart) > lead {
			b.WriteString(",")
		}
	}
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(intPart[i : i+3])
		if i+3 < len(intPart) {
			b.WriteString(",")
		}
	}
	b.WriteString(fracPart)
	return b.String()
}
