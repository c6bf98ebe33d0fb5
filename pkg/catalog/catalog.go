// Package catalog holds the static player and team tables the card is built
// from. The tables are read-only: accessors hand out copies.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/auctionpost/auctionpost/pkg/models"
)

// TeamCount is the number of franchises every team table must contain
const TeamCount = 10

var (
	ErrTeamCount     = errors.New("team table must contain exactly 10 teams")
	ErrDuplicateID   = errors.New("duplicate id")
	ErrInvalidRecord = errors.New("invalid record")
)

//go:embed data/players.yaml
var playersYAML []byte

//go:embed data/teams.yaml
var teamsYAML []byte

// Catalog is an immutable pair of player and team tables.
type Catalog struct {
	players []models.Player
	teams   []models.Team
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog compiled into the binary
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(playersYAML, teamsYAML)
	})
	return defaultCatalog, defaultErr
}

// Load builds a catalog, replacing either embedded table with the named
// file when its path is non-empty.
func Load(playersFile, teamsFile string) (*Catalog, error) {
	playersData := playersYAML
	teamsData := teamsYAML

	if playersFile != "" {
		data, err := os.ReadFile(playersFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read players file %s: %w", playersFile, err)
		}
		playersData = data
	}
	if teamsFile != "" {
		data, err := os.ReadFile(teamsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read teams file %s: %w", teamsFile, err)
		}
		teamsData = data
	}

	return Parse(playersData, teamsData)
}

// Parse decodes and validates both YAML tables
func Parse(playersData, teamsData []byte) (*Catalog, error) {
	players, err := ParsePlayers(playersData)
	if err != nil {
		return nil, err
	}
	teams, err := ParseTeams(teamsData)
	if err != nil {
		return nil, err
	}
	return New(players, teams)
}

// ParsePlayers decodes a YAML sequence of players
func ParsePlayers(data []byte) ([]models.Player, error) {
	var players []models.Player
	if err := yaml.Unmarshal(data, &players); err != nil {
		return nil, fmt.Errorf("failed to parse players YAML: %w", err)
	}
	for i := range players {
		if players[i].FullName == "" {
			players[i].FullName = players[i].DisplayName()
		}
	}
	return players, nil
}

// ParseTeams decodes a YAML sequence of teams
func ParseTeams(data []byte) ([]models.Team, error) {
	var teams []models.Team
	if err := yaml.Unmarshal(data, &teams); err != nil {
		return nil, fmt.Errorf("failed to parse teams YAML: %w", err)
	}
	return teams, nil
}

// New validates the tables and wraps copies of them in a Catalog.
func New(players []models.Player, teams []models.Team) (*Catalog, error) {
	if len(teams) != TeamCount {
		return nil, fmt.Errorf("%w (got %d)", ErrTeamCount, len(teams))
	}

	seen := make(map[string]bool, len(players))
	for i, p := range players {
		if p.ID == "" || p.FirstName == "" || p.Surname == "" {
			return nil, fmt.Errorf("%w: player %d needs id, first_name and surname", ErrInvalidRecord, i)
		}
		if !p.Specialism.Valid() {
			return nil, fmt.Errorf("%w: player %s has unknown specialism %q", ErrInvalidRecord, p.ID, p.Specialism)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: player %s", ErrDuplicateID, p.ID)
		}
		seen[p.ID] = true
	}

	seen = make(map[string]bool, len(teams))
	for i, t := range teams {
		if t.ID == "" || t.ShortName == "" || t.Name == "" {
			return nil, fmt.Errorf("%w: team %d needs id, name and short_name", ErrInvalidRecord, i)
		}
		if !t.BgPattern.Valid() {
			return nil, fmt.Errorf("%w: team %s has unknown bg_pattern %q", ErrInvalidRecord, t.ID, t.BgPattern)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("%w: team %s", ErrDuplicateID, t.ID)
		}
		seen[t.ID] = true
	}

	return &Catalog{
		players: append([]models.Player(nil), players...),
		teams:   append([]models.Team(nil), teams...),
	}, nil
}

// Players returns the player table in catalog order
func (c *Catalog) Players() []models.Player {
	return append([]models.Player(nil), c.players...)
}

// Teams returns the team table in catalog order
func (c *Catalog) Teams() []models.Team {
	return append([]models.Team(nil), c.teams...)
}

// PlayerByID looks a player up by id
func (c *Catalog) PlayerByID(id string) (models.Player, bool) {
	for _, p := range c.players {
		if p.ID == id {
			return p, true
		}
	}
	return models.Player{}, false
}

// PlayerByName looks a player up by full name, ignoring case
func (c *Catalog) PlayerByName(name string) (models.Player, bool) {
	name = strings.TrimSpace(name)
	for _, p := range c.players {
		if strings.EqualFold(p.FullName, name) {
			return p, true
		}
	}
	return models.Player{}, false
}

// TeamByID looks a team up by id
func (c *Catalog) TeamByID(id string) (models.Team, bool) {
	for _, t := range c.teams {
		if t.ID == id {
			return t, true
		}
	}
	return models.Team{}, false
}

// TeamByShortName looks a team up by its exact short name
func (c *Catalog) TeamByShortName(shortName string) (models.Team, bool) {
	for _, t := range c.teams {
		if t.ShortName == shortName {
			return t, true
		}
	}
	return models.Team{}, false
}

// ResolvePlayer accepts an id or a full name
func (c *Catalog) ResolvePlayer(ref string) (models.Player, bool) {
	if p, ok := c.PlayerByID(ref); ok {
		return p, true
	}
	return c.PlayerByName(ref)
}

// ResolveTeam accepts an id or a short name in any case
func (c *Catalog) ResolveTeam(ref string) (models.Team, bool) {
	if t, ok := c.TeamByID(strings.ToLower(ref)); ok {
		return t, true
	}
	return c.TeamByShortName(strings.ToUpper(ref))
}
