package export

import (
	"fmt"
	"regexp"

	"github.com/auctionpost/auctionpost/pkg/models"
)

// DefaultSuffix ends every exported filename
const DefaultSuffix = "auction"

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename is <FullName with whitespace runs as _>_<ShortName>_<suffix>.jpg
func Filename(p models.Player, t models.Team, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	name := whitespaceRun.ReplaceAllString(p.DisplayName(), "_")
	return fmt.Sprintf("%s_%s_%s.jpg", name, t.ShortName, suffix)
}
