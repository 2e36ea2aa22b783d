// Package amortization holds the closed-form math for fixed-rate amortizing
// loans. The formulas work in float64 because they need Pow and Log; callers
// convert to decimal at the boundary and round to cents there.
package amortization

import "math"

// MonthlyPayment computes the fixed installment for a loan of the given
// principal, annual rate (in percent) and term. A zero rate degrades to
// linear repayment, which also keeps the rate-based formula away from a
// division by zero.
func MonthlyPayment(principal, annualRatePercent float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	r := monthlyRate(annualRatePercent)
	if r == 0 {
		return principal / float64(termMonths)
	}
	return principal * r / (1 - math.Pow(1+r, -float64(termMonths)))
}

// RemainingBalance is the principal still owed after paymentsMade
// installments. paymentsMade is clamped to [0, termMonths].
func RemainingBalance(principal, annualRatePercent float64, termMonths, paymentsMade int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if paymentsMade < 0 {
		paymentsMade = 0
	}
	if paymentsMade >= termMonths {
		return 0
	}
	r := monthlyRate(annualRatePercent)
	if r == 0 {
		return principal * (1 - float64(paymentsMade)/float64(termMonths))
	}
	payment := MonthlyPayment(principal, annualRatePercent, termMonths)
	growth := math.Pow(1+r, float64(paymentsMade))
	return principal*growth - payment*(growth-1)/r
}

// PaymentsMadeFromRemainingBalance inverts RemainingBalance: given a known
// remaining balance it solves how many installments have elapsed, rounded to
// the nearest whole payment. A balance at or above the principal means no
// payments yet; a balance at or below zero means the loan is fully paid.
func PaymentsMadeFromRemainingBalance(principal, annualRatePercent float64, termMonths int, balance float64) int {
	if termMonths <= 0 || balance >= principal {
		return 0
	}
	if balance <= 0 {
		return termMonths
	}
	r := monthlyRate(annualRatePercent)
	if r == 0 {
		k := int(math.Round(float64(termMonths) * (1 - balance/principal)))
		return clampPayments(k, termMonths)
	}
	payment := MonthlyPayment(principal, annualRatePercent, termMonths)
	// B = P(1+r)^k - M((1+r)^k - 1)/r  solved for k via logarithms:
	// (1+r)^k = (M - rB) / (M - rP)
	growth := (payment - r*balance) / (payment - r*principal)
	k := int(math.Round(math.Log(growth) / math.Log(1+r)))
	return clampPayments(k, termMonths)
}

func monthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100 / 12
}

func clampPayments(k, termMonths int) int {
	if k < 0 {
		return 0
	}
	if k > termMonths {
		return termMonths
	}
	return k
}
