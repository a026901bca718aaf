// Package finance provides the deterministic money calculations exposed as agent tools:
// mortgage payments, currency conversion over a fixed rate table,
// compound interest projections and portfolio allocation analysis.
//
// All functions are pure and safe for concurrent use.
package finance
