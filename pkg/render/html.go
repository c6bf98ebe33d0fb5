package render

import (
	"bytes"
	_ "embed"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/auctionpost/auctionpost/pkg/card"
)

//go:embed templates/card.html.tmpl
var cardTemplateText string

var cardTemplate = template.Must(template.New("card").Parse(cardTemplateText))

// htmlCard is the data handed to the card template
type htmlCard struct {
	card.View
	Width, Height int

	Primary      template.CSS
	PrimarySoft  template.CSS
	PrimaryGlow  template.CSS
	Secondary    template.CSS
	Text         template.CSS
	GradientFrom template.CSS
	GradientTo   template.CSS
	TintFrom     template.CSS
	TintTo       template.CSS
	Base         template.CSS

	Rupee string
	Sold  string
	Badge [3]string
	Tag   string
}

// CardHTML renders v as a standalone HTML document whose #card element
// is the post. Logos that fail to load are swapped for the short name.
func CardHTML(v card.View) ([]byte, error) {
	pal := v.Team.Palette
	data := htmlCard{
		View:   v,
		Width:  card.Width,
		Height: card.Height,
		Base:   template.CSS(card.CSS(card.Base, 1)),
		Rupee:  card.RupeeSign,
		Sold:   card.SoldLabel,
		Badge:  [3]string{card.BadgeSponsor, card.BadgeTitle, card.BadgeSubtitle},
		Tag:    card.Hashtag,
	}
	if v.Ready() {
		data.Primary = template.CSS(card.CSS(pal.Primary, 1))
		data.PrimarySoft = template.CSS(card.CSS(pal.Primary, 0.4))
		data.PrimaryGlow = template.CSS(card.CSS(pal.Primary, 0.3))
		data.Secondary = template.CSS(card.CSS(pal.Secondary, 0.3))
		data.Text = template.CSS(card.CSS(pal.Text, 1))
		data.GradientFrom = template.CSS(card.CSS(pal.GradientFrom, 1))
		data.GradientTo = template.CSS(card.CSS(pal.GradientTo, 1))
		data.TintFrom = template.CSS(card.CSS(pal.GradientFrom, 0.125))
		data.TintTo = template.CSS(card.CSS(pal.GradientTo, 0.125))
	}

	var buf bytes.Buffer
	if err := cardTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render card html: %w", err)
	}
	return buf.Bytes(), nil
}

// dataURL wraps an HTML document so the browser can load it without a server
func dataURL(doc []byte) string {
	return "data:text/html;charset=utf-8;base64," + base64.StdEncoding.EncodeToString(doc)
}
