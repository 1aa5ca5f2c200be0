// Package units defines the closed set of length units rlcalc understands,
// the Quantity value type, conversion between units through millimeters,
// and the parser that turns text such as "42in" or "666.666 mm" into a
// Quantity.
package units
