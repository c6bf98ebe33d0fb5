// Package card derives everything the auction card shows from a Selection.
// Derive is pure: renderers call it on every change instead of caching.
package card

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/auctionpost/auctionpost/pkg/models"
	"github.com/auctionpost/auctionpost/pkg/price"
)

// Logical card size in pixels (4:5). Rasterizers multiply by their scale.
const (
	Width  = 400
	Height = 500
)

// State of the card
type State int

const (
	StateEmpty State = iota // player or team missing
	StateReady              // player and team present
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "EMPTY"
	case StateReady:
		return "READY"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Fixed texts printed on the card
const (
	PlaceholderTitle    = "Select a player and team"
	PlaceholderSubtitle = "to preview your post"
	SoldLabel           = "SOLD TO"
	BadgeSponsor        = "TATA"
	BadgeTitle          = "IPL"
	BadgeSubtitle       = "AUCTION"
	Hashtag             = "#TATAIPLAuction"
	RupeeSign           = "₹"
)

// Placeholder is what an EMPTY card shows
type Placeholder struct {
	Title    string
	Subtitle string
}

// PlayerText is the identity text, taken only from the player record
type PlayerText struct {
	FirstName  string
	Surname    string
	FullName   string
	Initials   string
	Country    string // upper-cased for the badge
	Specialism models.Specialism
}

// TeamStyle is the visual identity, taken only from the team record
type TeamStyle struct {
	ID        string
	Name      string
	ShortName string
	LogoURL   string
	Pattern   models.Pattern
	Palette   Palette
}

// View is the full set of derived display values for one Selection revision
type View struct {
	State       State
	Revision    uint64
	Placeholder Placeholder

	Player PlayerText
	Team   TeamStyle
	Price  price.Formatted
}

// Ready reports whether v carries player and team data
func (v View) Ready() bool {
	return v.State == StateReady
}

// Derive computes the view for sel
func Derive(sel models.Selection) View {
	if !sel.Ready() {
		return View{
			State:    StateEmpty,
			Revision: sel.Revision,
			Placeholder: Placeholder{
				Title:    PlaceholderTitle,
				Subtitle: PlaceholderSubtitle,
			},
		}
	}

	p := *sel.Player
	t := *sel.Team

	return View{
		State:    StateReady,
		Revision: sel.Revision,
		Player: PlayerText{
			FirstName:  p.FirstName,
			Surname:    p.Surname,
			FullName:   p.DisplayName(),
			Initials:   Initials(p),
			Country:    strings.ToUpper(p.Country),
			Specialism: p.Specialism,
		},
		Team: TeamStyle{
			ID:        t.ID,
			Name:      t.Name,
			ShortName: t.ShortName,
			LogoURL:   t.LogoURL,
			Pattern:   t.BgPattern,
			Palette:   NewPalette(t),
		},
		Price: price.Format(sel.PriceText),
	}
}

// Initials is the first letter of the first name followed by the first
// letter of the surname, upper-cased.
func Initials(p models.Player) string {
	return firstRune(p.FirstName) + firstRune(p.Surname)
}

func firstRune(s string) string {
	r, size := utf8.DecodeRuneInString(strings.TrimSpace(s))
	if size == 0 || r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}

// PriceLine is the price as printed on the tag, e.g. "₹2 CR" or "₹50 LAKH".
func (v View) PriceLine() string {
	return RupeeSign + v.Price.String()
}

// Caption is a ready-to-paste social media line for a READY view.
func (v View) Caption() string {
	if !v.Ready() {
		return ""
	}
	return fmt.Sprintf("%s SOLD to %s for %s %s",
		v.Player.FullName, v.Team.Name, v.PriceLine(), Hashtag)
}
