package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auctionpost/auctionpost/pkg/models"
	"github.com/auctionpost/auctionpost/pkg/price"
)

func virat() *models.Player {
	return &models.Player{
		ID:         "virat-kohli",
		FirstName:  "Virat",
		Surname:    "Kohli",
		FullName:   "Virat Kohli",
		Country:    "India",
		Specialism: models.SpecialismBatter,
	}
}

func rcb() *models.Team {
	return &models.Team{
		ID:             "rcb",
		Name:           "Royal Challengers Bangalore",
		ShortName:      "RCB",
		PrimaryColor:   "#EC1C24",
		SecondaryColor: "#000000",
		TextColor:      "#FFFFFF",
		GradientFrom:   "#EC1C24",
		GradientTo:     "#8B0000",
		LogoURL:        "https://example.invalid/rcb.png",
		BgPattern:      models.PatternRadial,
	}
}

func TestDeriveEmptyStates(t *testing.T) {
	tests := []struct {
		name string
		sel  models.Selection
	}{
		{"nothing selected", models.Selection{}},
		{"player only", models.Selection{Player: virat(), PriceText: "2"}},
		{"team only", models.Selection{Team: rcb(), PriceText: "2"}},
		{"price only", models.Selection{PriceText: "24.75"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Derive(tt.sel)
			assert.Equal(t, StateEmpty, v.State)
			assert.Equal(t, PlaceholderTitle, v.Placeholder.Title)
			assert.Equal(t, PlaceholderSubtitle, v.Placeholder.Subtitle)
			assert.Empty(t, v.Team.ID, "no team styling in EMPTY")
			assert.Empty(t, v.Player.FullName, "no player text in EMPTY")
			assert.Empty(t, v.Caption())
		})
	}
}

func TestDeriveReady(t *testing.T) {
	sel := models.Selection{Player: virat(), Team: rcb(), PriceText: "2", Revision: 7}
	v := Derive(sel)

	require.Equal(t, StateReady, v.State)
	assert.Equal(t, uint64(7), v.Revision)
	assert.Empty(t, v.Placeholder.Title)

	assert.Equal(t, "Virat", v.Player.FirstName)
	assert.Equal(t, "Kohli", v.Player.Surname)
	assert.Equal(t, "VK", v.Player.Initials)
	assert.Equal(t, "INDIA", v.Player.Country)

	assert.Equal(t, "RCB", v.Team.ShortName)
	assert.Equal(t, models.PatternRadial, v.Team.Pattern)
	assert.Equal(t, "#ec1c24", v.Team.Palette.Primary.Hex())
	assert.Equal(t, "#8b0000", v.Team.Palette.GradientTo.Hex())
	assert.Equal(t, "#ffffff", v.Team.Palette.Text.Hex())

	assert.Equal(t, price.Formatted{Value: "2", Unit: price.UnitCrore}, v.Price)
	assert.Equal(t, "₹2 CR", v.PriceLine())
	assert.Equal(t, "Virat Kohli SOLD to Royal Challengers Bangalore for ₹2 CR #TATAIPLAuction", v.Caption())
}

func TestDeriveReadyWithEmptyPrice(t *testing.T) {
	v := Derive(models.Selection{Player: virat(), Team: rcb()})
	assert.Equal(t, StateReady, v.State)
	assert.Equal(t, price.Zero, v.Price)
}

func TestDeriveTransitions(t *testing.T) {
	sel := models.Selection{Player: virat()}
	assert.Equal(t, StateEmpty, Derive(sel).State)

	sel.Team = rcb()
	assert.Equal(t, StateReady, Derive(sel).State)

	sel.Player = nil
	assert.Equal(t, StateEmpty, Derive(sel).State)
}

func TestDeriveFollowsCurrentInputs(t *testing.T) {
	sel := models.Selection{Player: virat(), Team: rcb(), PriceText: "0.5"}
	assert.Equal(t, "50 LAKH", Derive(sel).Price.String())

	sel.PriceText = "24.75"
	assert.Equal(t, "24.75 CR", Derive(sel).Price.String())

	other := rcb()
	other.ShortName = "XYZ"
	other.PrimaryColor = "#00FF00"
	sel.Team = other
	v := Derive(sel)
	assert.Equal(t, "XYZ", v.Team.ShortName)
	assert.Equal(t, "#00ff00", v.Team.Palette.Primary.Hex())
}

func TestInitials(t *testing.T) {
	tests := []struct {
		first, surname, want string
	}{
		{"Virat", "Kohli", "VK"},
		{"Virat", "Kohl i", "VK"},
		{"kl", "rahul", "KR"},
		{"Naveen-ul", "Haq", "NH"},
		{"Émile", "Ödegaard", "ÉÖ"},
		{"", "Solo", "S"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.first+" "+tt.surname, func(t *testing.T) {
			got := Initials(models.Player{FirstName: tt.first, Surname: tt.surname})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMalformedTeamColorsFallBack(t *testing.T) {
	team := rcb()
	team.PrimaryColor = "red"
	team.TextColor = ""
	p := NewPalette(*team)

	assert.Equal(t, fallbackAccent, p.Primary)
	assert.Equal(t, fallbackText, p.Text)
}

func TestNRGBAAndCSS(t *testing.T) {
	p := NewPalette(*rcb())
	n := NRGBA(p.Primary, 0.5)
	assert.Equal(t, uint8(0xEC), n.R)
	assert.Equal(t, uint8(0x1C), n.G)
	assert.Equal(t, uint8(0x24), n.B)
	assert.Equal(t, uint8(128), n.A)

	assert.Equal(t, "rgba(236,28,36,1.00)", CSS(p.Primary, 1))
	assert.Equal(t, uint8(0), NRGBA(p.Primary, -1).A)
}
