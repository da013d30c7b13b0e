// Package rules provides the built-in component rules for mdxlint.
//
//   - MDX001: steps-children - <Steps> may only contain <Step> elements
//   - MDX002: tabs-structure - <Tabs> holds a <TabsBar> and <TabsPages>
//     whose item ids are unique and pair up
//
// Both rules are thin adapters over pkg/components: they run the check per
// container, turn each finding into a lint.Diagnostic and attach a hint.
// Hints for misspelled tags and ids use edit distance; the "max_distance"
// rule option bounds it.
//
// Rules register themselves with lint.DefaultRegistry in init.
package rules
