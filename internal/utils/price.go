package utils

import "math"

// Round2 rounds an amount to two decimal places, the precision of the
// DECIMAL(10,2) price columns.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// TotalPrice computes the booking total for a stay: nights times the
// nightly rate, rounded to two decimals.  The result is snapshotted onto
// the booking at creation time and never recomputed afterwards.
func TotalPrice(nights int, pricePerNight float64) float64 {
	return Round2(float64(nights) * pricePerNight)
}
