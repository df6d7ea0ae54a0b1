package parse

import "time"

// DefaultWarrantyYears is the warranty duration assumed when none is given.
const DefaultWarrantyYears = 1

// Warranty derives the expiration date: purchase date plus whole calendar
// years. Arithmetic is calendar-correct, so a Feb 29 purchase plus one year
// lands on Mar 1 in a non-leap target year. A nil purchase date yields nil;
// a non-positive duration falls back to DefaultWarrantyYears. The calculator
// never panics.
func Warranty(purchase *time.Time, years int) *time.Time {
	if purchase == nil {
		return nil
	}
	if years <= 0 {
		years = DefaultWarrantyYears
	}
	exp := purchase.AddDate(years, 0, 0)
	return &exp
}
