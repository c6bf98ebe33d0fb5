package models

// Selection is one revision of the user's choices. A nil Player or Team
// means nothing is selected; PriceText is the raw input and may be empty
// or malformed.
type Selection struct {
	Player    *Player
	Team      *Team
	PriceText string
	Revision  uint64
}

// Ready reports whether the card can be drawn (player and team present).
func (s Selection) Ready() bool {
	return s.Player != nil && s.Team != nil
}

// Complete reports whether an export may start.
func (s Selection) Complete() bool {
	return s.Ready() && s.PriceText != ""
}
