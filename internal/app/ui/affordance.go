/*
Package ui decides which host-client navigation affordances a page shows and manages
the persisted theme preference.

The route-to-affordance mapping is a fixed table: transactional routes show a back
action and a "Save" primary action, the dashboard and root show neither, and every
other route defaults to a back action only. The decision is made server side so the
page layer can configure the Telegram WebApp controls without duplicating policy.
*/
package ui

import "strings"

// Affordances describes the navigation controls a page should show.
type Affordances struct {
	ShowBack     bool   `json:"show_back"`
	ShowPrimary  bool   `json:"show_primary"`
	PrimaryLabel string `json:"primary_label,omitempty"`
}

// routeTable is the fixed route-to-affordance mapping. Routes not listed fall through
// to the default of a back action only.
var routeTable = map[string]Affordances{
	"/":          {},
	"/dashboard": {},
	"/purchase":  {ShowBack: true, ShowPrimary: true, PrimaryLabel: "Save"},
	"/sale":      {ShowBack: true, ShowPrimary: true, PrimaryLabel: "Save"},
}

// ConfigureForRoute returns the affordances for a route. Pure; trailing slashes are
// ignored and unknown routes get the default.
func ConfigureForRoute(route string) Affordances {
	route = strings.TrimSpace(route)
	if route != "/" {
		route = strings.TrimRight(route, "/")
	}
	if route == "" {
		route = "/"
	}

	if a, ok := routeTable[route]; ok {
		return a
	}
	return Affordances{ShowBack: true}
}
