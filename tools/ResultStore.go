package tools

/**
Accumulates one result row per sweep iteration until the run exports them
*/

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// NotAvailable replaces any metric that could not be captured
const NotAvailable = "N/A"

// ResultRecord is one exported row
type ResultRecord struct {
	L1StopLoss    int
	L2StopLoss    int
	EntryHour     int
	EntryMinute   int
	OverallProfit string
	Expectancy    string
}

// EntryTime formats the entry time as HH:MM
func (r ResultRecord) EntryTime() string {
	return Clock{Hour: r.EntryHour, Minute: r.EntryMinute}.String()
}

// ResultStore keeps records in sweep order. Not safe for concurrent use.
type ResultStore struct {
	records []ResultRecord
}

func NewResultStore(capacity int) *ResultStore {
	return &ResultStore{records: make([]ResultRecord, 0, capacity)}
}

// Record appends one row; both legs take the swept SL %
func (rs *ResultStore) Record(t ParameterTuple, overallProfit string, expectancy string) {
	rs.records = append(rs.records, ResultRecord{
		L1StopLoss:    t.StopLossPercent,
		L2StopLoss:    t.StopLossPercent,
		EntryHour:     t.EntryHour,
		EntryMinute:   t.EntryMinute,
		OverallProfit: overallProfit,
		Expectancy:    expectancy,
	})
}

func (rs *ResultStore) Len() int {
	return len(rs.records)
}

// Records returns a copy of the accumulated rows
func (rs *ResultStore) Records() []ResultRecord {
	out := make([]ResultRecord, len(rs.records))
	copy(out, rs.records)
	return out
}

// Best returns the row with the highest overall profit that parses as a number
func (rs *ResultStore) Best() (ResultRecord, bool) {
	var best ResultRecord
	var bestProfit decimal.Decimal
	found := false
	for _, r := range rs.records {
		profit, ok := ParseDisplayAmount(r.OverallProfit)
		if !ok {
			continue
		}
		if !found || profit.GreaterThan(bestProfit) {
			best, bestProfit, found = r, profit, true
		}
	}
	return best, found
}

// Unit suffixes the result cards use for large amounts
var amountScales = []struct {
	suffix string
	scale  decimal.Decimal
}{
	{"Cr", decimal.New(1, 7)},
	{"K", decimal.New(1, 3)},
	{"k", decimal.New(1, 3)},
	{"L", decimal.New(1, 5)},
	{"M", decimal.New(1, 6)},
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// ParseDisplayAmount reads the first amount of a display string such as
// "₹ -1,23,456.50", "1.2K" or "₹ 1,200 (12.5%)". Only currency symbols, unit
// words and one sign may come before the number; parsing stops at the first
// character that cannot belong to it.
func ParseDisplayAmount(s string) (decimal.Decimal, bool) {
	if s == "" || s == NotAvailable {
		return decimal.Zero, false
	}
	rs := []rune(strings.TrimSpace(s))

	i := 0
	signed, negative := false, false
prefix:
	for ; i < len(rs); i++ {
		r := rs[i]
		switch {
		case isDigit(r):
			break prefix
		case r == '-' || r == '−' || r == '+':
			if signed {
				return decimal.Zero, false
			}
			signed, negative = true, r != '+'
		case r == '.' && i > 0 && unicode.IsLetter(rs[i-1]):
			// "Rs."
		case unicode.Is(unicode.Sc, r), unicode.IsLetter(r), unicode.IsSpace(r):
		default:
			return decimal.Zero, false
		}
	}
	if i == len(rs) {
		return decimal.Zero, false
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	fraction := false
number:
	for ; i < len(rs); i++ {
		r := rs[i]
		next := i+1 < len(rs) && isDigit(rs[i+1])
		switch {
		case isDigit(r):
			b.WriteRune(r)
		case r == ',' && !fraction && next:
		case r == '.' && !fraction && next:
			fraction = true
			b.WriteRune(r)
		default:
			break number
		}
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero, false
	}

	rest := strings.TrimLeftFunc(string(rs[i:]), unicode.IsSpace)
	for _, u := range amountScales {
		after, ok := strings.CutPrefix(rest, u.suffix)
		if !ok {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(after); after == "" || !unicode.IsLetter(r) {
			d = d.Mul(u.scale)
		}
		break
	}
	return d, true
}
