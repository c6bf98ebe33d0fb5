package search

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/auctionpost/auctionpost/pkg/models"
)

// FieldType is the player attribute a condition looks at
type FieldType string

const (
	FieldText    FieldType = "text" // name, country or role, like the search box
	FieldName    FieldType = "name"
	FieldCountry FieldType = "country"
	FieldRole    FieldType = "role"
	FieldAge     FieldType = "age"
	FieldBase    FieldType = "base" // reserve price in lakhs
)

// Operator compares a player attribute with a condition value
type Operator string

const (
	OperatorEquals       Operator = "="
	OperatorContains     Operator = "contains"
	OperatorGreaterThan  Operator = ">"
	OperatorGreaterEqual Operator = ">="
	OperatorLessThan     Operator = "<"
	OperatorLessEqual    Operator = "<="
	OperatorAND          Operator = "AND"
	OperatorOR           Operator = "OR"
)

// Condition is a single test against a player
type Condition struct {
	Field    FieldType
	Operator Operator
	Text     string  // lowercased, for text fields
	Number   float64 // for age and base
	Negate   bool
}

// Query is a parsed structured player query. Conditions are combined left
// to right with Logic, which defaults to AND.
type Query struct {
	Conditions []Condition
	Logic      []Operator
	Raw        string

	explicitLogic bool
}

var (
	fieldPattern   = regexp.MustCompile(`^(\w+):(.+)$`)
	quotedPattern  = regexp.MustCompile(`^"([^"]*)"$`)
	numericPattern = regexp.MustCompile(`^(>=|<=|>|<|=)?(\d+(?:\.\d+)?)$`)
)

var roleAliases = map[string]models.Specialism{
	"batter":       models.SpecialismBatter,
	"bat":          models.SpecialismBatter,
	"bowler":       models.SpecialismBowler,
	"bowl":         models.SpecialismBowler,
	"all-rounder":  models.SpecialismAllRounder,
	"allrounder":   models.SpecialismAllRounder,
	"ar":           models.SpecialismAllRounder,
	"wicketkeeper": models.SpecialismWicketkeeper,
	"keeper":       models.SpecialismWicketkeeper,
	"wk":           models.SpecialismWicketkeeper,
}

// ParseQuery parses input such as
//
//	country:india role:bowler age:<30
//	"virat kohli" OR NOT base:>=200
//
// Bare words are free text and match the way the search box does. A
// leading or trailing AND/OR, and a trailing NOT, are bare words too.
func ParseQuery(input string) (*Query, error) {
	q := &Query{Raw: input}
	tokens := tokenize(input)

	pendingLogic := false
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]

		last := i == len(tokens)-1

		// AND, OR and NOT are words unless they have something to join
		switch strings.ToUpper(token) {
		case "AND", "OR":
			if len(q.Conditions) == 0 || last {
				break
			}
			if pendingLogic {
				return nil, fmt.Errorf("unexpected operator %s", token)
			}
			q.Logic = append(q.Logic, Operator(strings.ToUpper(token)))
			q.explicitLogic = true
			pendingLogic = true
			continue
		}

		negate := false
		if strings.EqualFold(token, "NOT") && !last {
			i++
			token = tokens[i]
			negate = true
		} else if len(token) > 1 && strings.HasPrefix(token, "-") && !numericPattern.MatchString(token[1:]) {
			token = token[1:]
			negate = true
		}

		cond, err := parseCondition(token)
		if err != nil {
			return nil, err
		}
		cond.Negate = negate

		if len(q.Conditions) > 0 && !pendingLogic {
			q.Logic = append(q.Logic, OperatorAND)
		}
		q.Conditions = append(q.Conditions, cond)
		pendingLogic = false
	}

	return q, nil
}

// tokenize splits on spaces outside double quotes
func tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case r == ' ' || r == '\t':
			if inQuotes {
				current.WriteRune(r)
			} else {
				flush()
			}
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}

func parseCondition(token string) (Condition, error) {
	matches := fieldPattern.FindStringSubmatch(token)
	if matches == nil {
		return Condition{Field: FieldText, Operator: OperatorContains, Text: strings.ToLower(unquote(token))}, nil
	}

	field := strings.ToLower(matches[1])
	value := unquote(matches[2])

	switch field {
	case "name":
		return Condition{Field: FieldName, Operator: OperatorContains, Text: strings.ToLower(value)}, nil
	case "country":
		return Condition{Field: FieldCountry, Operator: OperatorContains, Text: strings.ToLower(value)}, nil
	case "role", "specialism":
		role, ok := roleAliases[strings.ToLower(value)]
		if !ok {
			return Condition{}, fmt.Errorf("unknown role: %s", value)
		}
		return Condition{Field: FieldRole, Operator: OperatorEquals, Text: strings.ToLower(string(role))}, nil
	case "age", "base":
		op, n, err := parseNumeric(value)
		if err != nil {
			return Condition{}, fmt.Errorf("invalid %s value %q: %w", field, value, err)
		}
		return Condition{Field: FieldType(field), Operator: op, Number: n}, nil
	default:
		return Condition{}, fmt.Errorf("unknown field: %s", field)
	}
}

func parseNumeric(value string) (Operator, float64, error) {
	matches := numericPattern.FindStringSubmatch(value)
	if matches == nil {
		return "", 0, fmt.Errorf("expected a number, optionally prefixed by >, >=, < or <=")
	}
	n, err := strconv.ParseFloat(matches[2], 64)
	if err != nil {
		return "", 0, err
	}
	op := Operator(matches[1])
	if op == "" {
		op = OperatorEquals
	}
	return op, n, nil
}

func unquote(s string) string {
	if matches := quotedPattern.FindStringSubmatch(s); len(matches) == 2 {
		return matches[1]
	}
	return s
}

// Structured reports whether q uses anything beyond plain words, in which
// case it filters differently from the search box.
func (q *Query) Structured() bool {
	if q.explicitLogic {
		return true
	}
	for _, c := range q.Conditions {
		if c.Field != FieldText || c.Negate {
			return true
		}
	}
	return false
}

// Match evaluates q against p. An empty query matches everyone.
func (q *Query) Match(p models.Player) bool {
	if len(q.Conditions) == 0 {
		return true
	}
	result := q.Conditions[0].match(p)
	for i, op := range q.Logic {
		next := q.Conditions[i+1].match(p)
		if op == OperatorOR {
			result = result || next
		} else {
			result = result && next
		}
	}
	return result
}

func (c Condition) match(p models.Player) bool {
	var ok bool
	switch c.Field {
	case FieldText:
		ok = MatchesPlayer(p, c.Text)
	case FieldName:
		ok = strings.Contains(strings.ToLower(p.DisplayName()), c.Text)
	case FieldCountry:
		ok = strings.Contains(strings.ToLower(p.Country), c.Text)
	case FieldRole:
		ok = strings.ToLower(string(p.Specialism)) == c.Text
	case FieldAge:
		ok = compare(float64(p.Age), c.Operator, c.Number)
	case FieldBase:
		ok = compare(p.ReservePrice, c.Operator, c.Number)
	}
	if c.Negate {
		return !ok
	}
	return ok
}

func compare(v float64, op Operator, n float64) bool {
	switch op {
	case OperatorGreaterThan:
		return v > n
	case OperatorGreaterEqual:
		return v >= n
	case OperatorLessThan:
		return v < n
	case OperatorLessEqual:
		return v <= n
	default:
		return v == n
	}
}

// Players filters players with a query string. Plain words behave exactly
// like FilterPlayers on the whole string; field conditions, NOT and OR
// switch to structured matching over the full catalog.
func Players(input string, players []models.Player) ([]models.Player, error) {
	q, err := ParseQuery(input)
	if err != nil {
		return nil, err
	}
	if !q.Structured() {
		return FilterPlayers(input, players), nil
	}

	results := []models.Player{}
	for _, p := range players {
		if q.Match(p) {
			results = append(results, p)
		}
	}
	return results, nil
}
