// Package balance holds the energy-balance table and the pure transformations
// applied to it: timestamp parsing and range filtering, decimal
// normalization, numeric coercion, derived columns, aggregates and summary
// statistics. Every transformation returns a new Dataset and leaves its
// input untouched, so the stages compose and can be tested one by one.
package balance
