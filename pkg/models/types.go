package models

import "strings"

// Specialism is a player's playing role.
type Specialism string

const (
	SpecialismBatter       Specialism = "BATTER"
	SpecialismAllRounder   Specialism = "ALL-ROUNDER"
	SpecialismWicketkeeper Specialism = "WICKETKEEPER"
	SpecialismBowler       Specialism = "BOWLER"
)

// Specialisms lists every role in display order
var Specialisms = []Specialism{
	SpecialismBatter,
	SpecialismAllRounder,
	SpecialismWicketkeeper,
	SpecialismBowler,
}

// Valid reports whether s is one of the known roles
func (s Specialism) Valid() bool {
	for _, known := range Specialisms {
		if s == known {
			return true
		}
	}
	return false
}

// Pattern is the background decoration drawn behind a team's card.
type Pattern string

const (
	PatternWaves    Pattern = "waves"
	PatternDiagonal Pattern = "diagonal"
	PatternRadial   Pattern = "radial"
	PatternMesh     Pattern = "mesh"
)

// Valid reports whether p is one of the known patterns
func (p Pattern) Valid() bool {
	switch p {
	case PatternWaves, PatternDiagonal, PatternRadial, PatternMesh:
		return true
	}
	return false
}

// Player is an auction catalog entry. ReservePrice is in lakhs.
type Player struct {
	ID           string     `yaml:"id" json:"id"`
	FirstName    string     `yaml:"first_name" json:"first_name"`
	Surname      string     `yaml:"surname" json:"surname"`
	FullName     string     `yaml:"full_name" json:"full_name"`
	Country      string     `yaml:"country" json:"country"`
	Specialism   Specialism `yaml:"specialism" json:"specialism"`
	Age          int        `yaml:"age" json:"age"`
	ReservePrice float64    `yaml:"reserve_price" json:"reserve_price"`
}

// Team is one of the franchise entries. Colors are #RRGGBB strings.
type Team struct {
	ID             string  `yaml:"id" json:"id"`
	Name           string  `yaml:"name" json:"name"`
	ShortName      string  `yaml:"short_name" json:"short_name"`
	PrimaryColor   string  `yaml:"primary_color" json:"primary_color"`
	SecondaryColor string  `yaml:"secondary_color" json:"secondary_color"`
	TextColor      string  `yaml:"text_color" json:"text_color"`
	GradientFrom   string  `yaml:"gradient_from" json:"gradient_from"`
	GradientTo     string  `yaml:"gradient_to" json:"gradient_to"`
	LogoURL        string  `yaml:"logo_url" json:"logo_url"`
	BgPattern      Pattern `yaml:"bg_pattern" json:"bg_pattern"`
}

// DisplayName falls back to joining the name parts when FullName is empty
func (p Player) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return strings.TrimSpace(p.FirstName + " " + p.Surname)
}
