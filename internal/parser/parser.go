// Package parser turns raw delimited rows into validated price records.
package parser

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"WeeklyHigh/internal/model"
)

var (
	// ErrParse matches every *ParseError.
	ErrParse = errors.New("parse error")

	// Causes carried by ParseError.Err.
	ErrFieldIndex    = errors.New("field index out of range")
	ErrDate          = errors.New("invalid date")
	ErrPrice         = errors.New("invalid price")
	ErrNegativePrice = errors.New("negative price")
)

// priceDecoration is stripped from both ends of the price field.
const priceDecoration = "$\" \t\r"

// dateLayouts are tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseError reports a row that could not be turned into a record.
type ParseError struct {
	Field string // "date" or "price"
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrParse) true for any ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// SplitRow splits a line on ',' or ';'. Empty fields are kept so indices stay stable.
func SplitRow(line string) []string {
	return strings.Split(strings.ReplaceAll(line, ";", ","), ",")
}

// ParseRow splits line and parses the date and price columns.
func ParseRow(line string, dateCol, priceCol int) (model.Record, error) {
	return ParseFields(SplitRow(line), dateCol, priceCol)
}

// ParseFields builds a record from already split fields.
func ParseFields(fields []string, dateCol, priceCol int) (model.Record, error) {
	rawDate, err := field(fields, dateCol, "date")
	if err != nil {
		return model.Record{}, err
	}
	rawPrice, err := field(fields, priceCol, "price")
	if err != nil {
		return model.Record{}, err
	}

	date, err := ParseDate(rawDate)
	if err != nil {
		return model.Record{}, err
	}
	price, err := ParsePrice(rawPrice)
	if err != nil {
		return model.Record{}, err
	}
	return model.Record{Date: date, Price: price}, nil
}

func field(fields []string, idx int, name string) (string, error) {
	if idx < 0 || idx >= len(fields) {
		return "", &ParseError{
			Field: name,
			Value: fmt.Sprintf("column %d of %d", idx, len(fields)),
			Err:   ErrFieldIndex,
		}
	}
	return fields[idx], nil
}

// ParseDate interprets raw as a calendar day and returns midnight UTC of that day.
func ParseDate(raw string) (time.Time, error) {
	s := strings.Trim(raw, "\" \t\r")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, &ParseError{Field: "date", Value: raw, Err: ErrDate}
}

// CleanPrice strips currency signs, quotes and surrounding whitespace, and
// drops thousands separators so "$1,234.56" becomes "1234.56".
func CleanPrice(raw string) string {
	return strings.ReplaceAll(strings.Trim(raw, priceDecoration), ",", "")
}

// ParsePrice parses a decorated price such as `" $45.00 "` into a finite, non-negative float.
func ParsePrice(raw string) (float64, error) {
	d, err := decimal.NewFromString(CleanPrice(raw))
	if err != nil {
		return 0, &ParseError{Field: "price", Value: raw, Err: fmt.Errorf("%w: %v", ErrPrice, err)}
	}
	if d.IsNegative() {
		return 0, &ParseError{Field: "price", Value: raw, Err: ErrNegativePrice}
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) {
		return 0, &ParseError{Field: "price", Value: raw, Err: fmt.Errorf("%w: out of range", ErrPrice)}
	}
	return f, nil
}
