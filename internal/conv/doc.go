// Package conv provides checked integer conversions for slot and byte counts.
//
// Allocation capabilities work in element units while memory budgets are
// accounted in bytes. Every conversion between the two goes through this
// package so that an oversized request fails with an error instead of
// wrapping around.
package conv
