package fingerprint

import (
	"strings"

	"github.com/molbench/molbench/pkg/errors"
)

// molecule is the structural summary extracted from one SMILES string. It
// carries exactly the information the key catalogue needs; it is not a full
// chemical graph.
type molecule struct {
	atoms        []atom
	singleBonds  int
	doubleBonds  int
	tripleBonds  int
	aromaticRefs int // explicit ':' bonds
	ringBonds    int // matched ring-closure pairs
	branches     int
	maxDepth     int
	fragments    int
	tokens       []string // normalized token stream, used for hashed keys
	warnings     []string
}

type atom struct {
	symbol   string
	aromatic bool
	charge   int
}

// knownElements lists the element symbols the scanner accepts. Covers the
// organic subset plus the elements that occur in the reference benchmarks.
var knownElements = map[string]bool{
	"H": true, "B": true, "C": true, "N": true, "O": true, "F": true,
	"P": true, "S": true, "Cl": true, "Br": true, "I": true,
	"Li": true, "Na": true, "K": true, "Mg": true, "Ca": true, "Al": true,
	"Si": true, "Se": true, "Zn": true, "Fe": true, "Cu": true, "Mn": true,
	"Co": true, "Ni": true, "Cr": true, "Sn": true, "As": true, "Hg": true,
	"Pt": true, "Au": true, "Ba": true, "Bi": true, "Gd": true, "Ag": true,
	"Sr": true, "Ti": true, "Zr": true, "Cd": true, "Pb": true, "Tl": true,
	"Sb": true, "Ra": true, "Be": true, "V": true, "Mo": true,
	"*": true, // wildcard atom
}

// aromaticOrganic is the lowercase aromatic subset allowed outside brackets.
var aromaticOrganic = map[byte]string{
	'b': "B", 'c': "C", 'n': "N", 'o': "O", 'p': "P", 's': "S",
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

// parseStructure scans a SMILES string into a molecule summary. Malformed
// input returns a DataQualityError; recoverable oddities are recorded as
// warnings on the molecule.
func parseStructure(s string) (*molecule, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, errors.NewDataQualityError(s, "empty structure")
	}

	m := &molecule{fragments: 1}
	depth := 0
	openRings := make(map[string]bool)

	i := 0
	for i < len(trimmed) {
		c := trimmed[i]
		switch {
		case c == '(':
			depth++
			if depth > m.maxDepth {
				m.maxDepth = depth
			}
			m.branches++
			m.tokens = append(m.tokens, "(")
			i++
		case c == ')':
			depth--
			if depth < 0 {
				return nil, errors.NewDataQualityError(s, "unbalanced branch parenthesis")
			}
			m.tokens = append(m.tokens, ")")
			i++
		case c == '[':
			consumed, err := parseBracketAtom(s, trimmed[i:], m)
			if err != nil {
				return nil, err
			}
			i += consumed
		case c == '-':
			m.singleBonds++
			m.tokens = append(m.tokens, "-")
			i++
		case c == '=':
			m.doubleBonds++
			m.tokens = append(m.tokens, "=")
			i++
		case c == '#':
			m.tripleBonds++
			m.tokens = append(m.tokens, "#")
			i++
		case c == ':':
			m.aromaticRefs++
			m.tokens = append(m.tokens, ":")
			i++
		case c == '/' || c == '\\':
			// Directional single bond. Stereo is outside the key catalogue.
			m.singleBonds++
			m.warn("directional bond ignored")
			m.tokens = append(m.tokens, "-")
			i++
		case c == '.':
			m.fragments++
			m.warn("disconnected fragments")
			m.tokens = append(m.tokens, ".")
			i++
		case c == '%':
			if i+2 >= len(trimmed) || !isDigit(trimmed[i+1]) || !isDigit(trimmed[i+2]) {
				return nil, errors.NewDataQualityError(s, "malformed two-digit ring closure")
			}
			label := trimmed[i+1 : i+3]
			toggleRing(m, openRings, label)
			i += 3
		case isDigit(c):
			toggleRing(m, openRings, trimmed[i:i+1])
			i++
		case c == '*':
			m.atoms = append(m.atoms, atom{symbol: "*"})
			m.tokens = append(m.tokens, "*")
			i++
		case isUpper(c):
			// Two-letter element symbols take precedence over one-letter.
			symbol := trimmed[i : i+1]
			if i+1 < len(trimmed) && isLower(trimmed[i+1]) {
				two := trimmed[i : i+2]
				if knownElements[two] {
					symbol = two
				}
			}
			if !knownElements[symbol] {
				return nil, errors.NewDataQualityError(s, "unknown atom symbol "+symbol)
			}
			m.atoms = append(m.atoms, atom{symbol: symbol})
			m.tokens = append(m.tokens, symbol)
			i += len(symbol)
		case isLower(c):
			symbol, ok := aromaticOrganic[c]
			if !ok {
				return nil, errors.NewDataQualityError(s, "unknown aromatic atom symbol "+trimmed[i:i+1])
			}
			m.atoms = append(m.atoms, atom{symbol: symbol, aromatic: true})
			m.tokens = append(m.tokens, strings.ToLower(symbol))
			i++
		default:
			return nil, errors.NewDataQualityError(s, "unexpected character "+trimmed[i:i+1])
		}
	}

	if depth != 0 {
		return nil, errors.NewDataQualityError(s, "unbalanced branch parenthesis")
	}
	if len(openRings) != 0 {
		return nil, errors.NewDataQualityError(s, "unclosed ring bond")
	}
	if len(m.atoms) == 0 {
		return nil, errors.NewDataQualityError(s, "no atoms")
	}
	return m, nil
}

func (m *molecule) warn(detail string) {
	m.warnings = append(m.warnings, detail)
}

func toggleRing(m *molecule, open map[string]bool, label string) {
	if open[label] {
		delete(open, label)
		m.ringBonds++
	} else {
		open[label] = true
	}
	m.tokens = append(m.tokens, "@"+label)
}

// parseBracketAtom consumes one [...] atom starting at rest[0] == '['.
// Returns the number of bytes consumed.
func parseBracketAtom(full, rest string, m *molecule) (int, error) {
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return 0, errors.NewDataQualityError(full, "unterminated bracket atom")
	}
	body := rest[1:end]
	if body == "" {
		return 0, errors.NewDataQualityError(full, "empty bracket atom")
	}

	j := 0
	// Optional isotope.
	for j < len(body) && isDigit(body[j]) {
		j++
	}
	if j > 0 {
		m.warn("isotope specification ignored")
	}
	if j >= len(body) {
		return 0, errors.NewDataQualityError(full, "bracket atom without element")
	}

	var symbol string
	aromatic := false
	switch {
	case body[j] == '*':
		symbol = "*"
		j++
	case isUpper(body[j]):
		symbol = body[j : j+1]
		if j+1 < len(body) && isLower(body[j+1]) && body[j+1] != 'h' {
			two := body[j : j+2]
			if knownElements[two] {
				symbol = two
			}
		}
		j += len(symbol)
	case isLower(body[j]):
		s, ok := aromaticOrganic[body[j]]
		if !ok {
			return 0, errors.NewDataQualityError(full, "unknown aromatic atom symbol "+body[j:j+1])
		}
		symbol = s
		aromatic = true
		j++
	default:
		return 0, errors.NewDataQualityError(full, "malformed bracket atom")
	}
	if !knownElements[symbol] {
		return 0, errors.NewDataQualityError(full, "unknown atom symbol "+symbol)
	}

	charge := 0
	for j < len(body) {
		switch body[j] {
		case '@':
			m.warn("chirality specification ignored")
			j++
		case 'H':
			j++
			for j < len(body) && isDigit(body[j]) {
				j++
			}
		case '+':
			charge++
			j++
			charge += trailingChargeDigits(body, &j, charge)
		case '-':
			charge--
			j++
			charge -= trailingChargeDigits(body, &j, -charge)
		case ':':
			// Atom map number.
			j++
			for j < len(body) && isDigit(body[j]) {
				j++
			}
		default:
			return 0, errors.NewDataQualityError(full, "malformed bracket atom")
		}
	}

	m.atoms = append(m.atoms, atom{symbol: symbol, aromatic: aromatic, charge: charge})
	token := symbol
	if aromatic {
		token = strings.ToLower(symbol)
	}
	if charge > 0 {
		token += "+"
	} else if charge < 0 {
		token += "-"
	}
	m.tokens = append(m.tokens, token)
	return end + 1, nil
}

// trailingChargeDigits consumes an explicit charge magnitude such as [O-2]
// and returns the extra charge beyond the sign already applied.
func trailingChargeDigits(body string, j *int, applied int) int {
	start := *j
	for *j < len(body) && isDigit(body[*j]) {
		*j++
	}
	if *j == start {
		return 0
	}
	magnitude := 0
	for _, c := range body[start:*j] {
		magnitude = magnitude*10 + int(c-'0')
	}
	if magnitude > applied {
		return magnitude - applied
	}
	return 0
}
