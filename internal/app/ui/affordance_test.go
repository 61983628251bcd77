package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigureForRoute(t *testing.T) {
	tests := []struct {
		name  string
		route string
		want  Affordances
	}{
		{"root", "/", Affordances{}},
		{"dashboard", "/dashboard", Affordances{}},
		{"purchase", "/purchase", Affordances{ShowBack: true, ShowPrimary: true, PrimaryLabel: "Save"}},
		{"sale", "/sale", Affordances{ShowBack: true, ShowPrimary: true, PrimaryLabel: "Save"}},
		{"trailing slash ignored", "/purchase/", Affordances{ShowBack: true, ShowPrimary: true, PrimaryLabel: "Save"}},
		{"padded route", " /dashboard ", Affordances{}},
		{"unknown route defaults to back only", "/settings", Affordances{ShowBack: true}},
		{"empty route treated as root", "", Affordances{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigureForRoute(tt.route))
		})
	}
}

func TestConfigureForRouteIsPure(t *testing.T) {
	first := ConfigureForRoute("/purchase")
	second := ConfigureForRoute("/purchase")

	assert.Equal(t, first, second)
}
