// Package fitness provides the deterministic health calculations exposed as agent tools:
// body mass index, calories burned by an activity and a weekly workout plan.
package fitness
