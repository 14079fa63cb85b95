// Package uniqueid hands out unique, increasing integer IDs to components
// of a tree, scoped to a Provider.
//
// A Provider owns one Generator and publishes it through GeneratorContext
// to everything below it. Components obtain IDs either with UseGenerator /
// UseID during their render, or by being wrapped with Connect, which calls
// a mapping function with the generator on each render and merges the
// result into the component's props.
//
// Within one render pass, components draw IDs in render order (parents
// before children, siblings left to right), so the IDs of one pass are
// gapless. Every render draws new IDs; changing the Provider's Version
// restarts the sequence at 1.
//
// Sibling Providers are independent. IDs are not unique across Providers.
package uniqueid
