// Package interop adapts event channels to peers that speak the legacy
// object-broker value model: typed Any values tagged with a TypeCode, and
// id/kind name components. Every conversion is explicit per kind; nothing is
// discovered by reflection.
package interop
