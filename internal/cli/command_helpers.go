package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/auctionpost/auctionpost/pkg/catalog"
	"github.com/auctionpost/auctionpost/pkg/files"
	"github.com/auctionpost/auctionpost/pkg/models"
	"github.com/auctionpost/auctionpost/pkg/search"
)

// ErrNotFound is returned when a player or team reference matches nothing
var ErrNotFound = errors.New("not found")

// CommandContext loads settings and the catalog once per command
type CommandContext struct {
	ConfigPath string
	Settings   *models.Settings
	Catalog    *catalog.Catalog
}

// NewCommandContext creates a new command context. An empty configPath
// means the project settings file.
func NewCommandContext(configPath string) *CommandContext {
	if configPath == "" {
		configPath = files.SettingsPath()
	}
	return &CommandContext{ConfigPath: configPath}
}

// LoadSettings reads settings, falling back to defaults when no file exists
func (c *CommandContext) LoadSettings() (*models.Settings, error) {
	if c.Settings != nil {
		return c.Settings, nil
	}

	settings, err := files.ReadSettingsFrom(c.ConfigPath)
	if err != nil {
		return nil, err
	}

	c.Settings = settings
	return settings, nil
}

// LoadCatalog returns the embedded catalog, or the override files named in
// settings
func (c *CommandContext) LoadCatalog() (*catalog.Catalog, error) {
	if c.Catalog != nil {
		return c.Catalog, nil
	}

	settings, err := c.LoadSettings()
	if err != nil {
		return nil, err
	}

	var cat *catalog.Catalog
	if settings.Catalog.PlayersFile == "" && settings.Catalog.TeamsFile == "" {
		cat, err = catalog.Default()
	} else {
		cat, err = catalog.Load(settings.Catalog.PlayersFile, settings.Catalog.TeamsFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	c.Catalog = cat
	return cat, nil
}

// FindPlayer resolves ref by id or full name. On a miss the error lists
// up to three players matching ref as a search query.
func (c *CommandContext) FindPlayer(ref string) (models.Player, error) {
	cat, err := c.LoadCatalog()
	if err != nil {
		return models.Player{}, err
	}

	if p, ok := cat.ResolvePlayer(ref); ok {
		return p, nil
	}

	matches := search.FilterPlayers(ref, cat.Players())
	if len(matches) == 1 {
		return matches[0], nil
	}

	hint := ""
	if len(matches) > 0 {
		var ids []string
		for i, m := range matches {
			if i == 3 {
				break
			}
			ids = append(ids, m.ID)
		}
		hint = fmt.Sprintf(" (did you mean: %s?)", strings.Join(ids, ", "))
	}
	return models.Player{}, fmt.Errorf("%w: player '%s'%s", ErrNotFound, ref, hint)
}

// FindTeam resolves ref by id or short name
func (c *CommandContext) FindTeam(ref string) (models.Team, error) {
	cat, err := c.LoadCatalog()
	if err != nil {
		return models.Team{}, err
	}

	if t, ok := cat.ResolveTeam(ref); ok {
		return t, nil
	}

	var names []string
	for _, t := range cat.Teams() {
		names = append(names, t.ShortName)
	}
	return models.Team{}, fmt.Errorf("%w: team '%s' (choose one of %s)", ErrNotFound, ref, strings.Join(names, ", "))
}
