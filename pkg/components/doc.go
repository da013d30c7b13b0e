// Package components checks the structural contract of the documentation
// site's layout components.
//
// Two containers are covered. <Steps> may only hold <Step> children.
// <Tabs> may only hold <TabsBar> and <TabsPages>, and the ids of the
// <TabsBarItem> and <TabsPageItem> children inside them must be unique per
// side and pair up one to one across sides.
//
// Validators are pure functions over an mdast tree. They never mutate it and
// are safe to call concurrently on the same tree.
package components
