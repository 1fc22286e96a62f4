package gui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/termtris/pkg/mino"
)

// Terminal safe color palette is available here
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name     string      `json:"name"`
	Border   tcell.Color `json:"border"`
	Label    tcell.Color `json:"label"`
	Value    tcell.Color `json:"value"`
	Danger   tcell.Color `json:"danger"`
	GameOver tcell.Color `json:"gameOver"`
	Garbage  tcell.Color `json:"garbage"`
	I        tcell.Color `json:"i"`
	O        tcell.Color `json:"o"`
	T        tcell.Color `json:"t"`
	S        tcell.Color `json:"s"`
	Z        tcell.Color `json:"z"`
	J        tcell.Color `json:"j"`
	L        tcell.Color `json:"l"`
}

// ThemeHex is the on-disk form of a Theme
type ThemeHex struct {
	Name     string `json:"name"`
	Border   string `json:"border"`
	Label    string `json:"label"`
	Value    string `json:"value"`
	Danger   string `json:"danger"`
	GameOver string `json:"gameOver"`
	Garbage  string `json:"garbage"`
	I        string `json:"i"`
	O        string `json:"o"`
	T        string `json:"t"`
	S        string `json:"s"`
	Z        string `json:"z"`
	J        string `json:"j"`
	L        string `json:"l"`
}

// fmtHex keeps ColorDefault distinguishable from black once written out
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		Name:     t.Name,
		Border:   fmtHex(t.Border.Hex()),
		Label:    fmtHex(t.Label.Hex()),
		Value:    fmtHex(t.Value.Hex()),
		Danger:   fmtHex(t.Danger.Hex()),
		GameOver: fmtHex(t.GameOver.Hex()),
		Garbage:  fmtHex(t.Garbage.Hex()),
		I:        fmtHex(t.I.Hex()),
		O:        fmtHex(t.O.Hex()),
		T:        fmtHex(t.T.Hex()),
		S:        fmtHex(t.S.Hex()),
		Z:        fmtHex(t.Z.Hex()),
		J:        fmtHex(t.J.Hex()),
		L:        fmtHex(t.L.Hex()),
	}
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() Theme {
	return Theme{
		Name:     t.Name,
		Border:   tcell.GetColor(t.Border),
		Label:    tcell.GetColor(t.Label),
		Value:    tcell.GetColor(t.Value),
		Danger:   tcell.GetColor(t.Danger),
		GameOver: tcell.GetColor(t.GameOver),
		Garbage:  tcell.GetColor(t.Garbage),
		I:        tcell.GetColor(t.I),
		O:        tcell.GetColor(t.O),
		T:        tcell.GetColor(t.T),
		S:        tcell.GetColor(t.S),
		Z:        tcell.GetColor(t.Z),
		J:        tcell.GetColor(t.J),
		L:        tcell.GetColor(t.L),
	}
}

// BlockColor returns the color a block is painted with. Ghost blocks share
// the color of their solid counterpart.
func (t Theme) BlockColor(b mino.Block) tcell.Color {
	switch b {
	case mino.BlockSolidCyan, mino.BlockGhostCyan:
		return t.I
	case mino.BlockSolidYellow, mino.BlockGhostYellow:
		return t.O
	case mino.BlockSolidMagenta, mino.BlockGhostMagenta:
		return t.T
	case mino.BlockSolidGreen, mino.BlockGhostGreen:
		return t.S
	case mino.BlockSolidRed, mino.BlockGhostRed:
		return t.Z
	case mino.BlockSolidBlue, mino.BlockGhostBlue:
		return t.J
	case mino.BlockSolidOrange, mino.BlockGhostOrange:
		return t.L
	case mino.BlockGarbage:
		return t.Garbage
	default:
		return tcell.ColorDefault
	}
}

var ErrNoTheme = errors.New("theme: no theme found")

// ImportThemes returns a converted Theme from a slice of ThemeHex
// entities if its name matches the want argument
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}

	return Theme{}, fmt.Errorf("%q: %w", want, ErrNoTheme)
}

// ReadThemes decodes a JSON array of themes.
func ReadThemes(r io.Reader) ([]ThemeHex, error) {
	var themes []ThemeHex
	if err := json.NewDecoder(r).Decode(&themes); err != nil {
		return nil, fmt.Errorf("failed to decode themes: %w", err)
	}

	return themes, nil
}

// LoadTheme resolves want against the built in themes first, then treats it
// as the path of a JSON file and uses the first theme it holds.
func LoadTheme(want string) (Theme, error) {
	if want == "" {
		return ThemeBasic, nil
	}

	if t, err := ImportThemes(want, BuiltinThemes()); err == nil {
		return t, nil
	}

	f, err := os.Open(want)
	if err != nil {
		return Theme{}, fmt.Errorf("failed to load theme %q: %w", want, err)
	}
	defer f.Close()

	themes, err := ReadThemes(f)
	if err != nil {
		return Theme{}, fmt.Errorf("failed to load theme %q: %w", want, err)
	}
	if len(themes) == 0 {
		return Theme{}, fmt.Errorf("failed to load theme %q: %w", want, ErrNoTheme)
	}

	return themes[0].Theme(), nil
}

func BuiltinThemes() []ThemeHex {
	return []ThemeHex{ThemeBasic.Hex(), ThemeMono.Hex()}
}

// ThemeBasic is the default theme
var ThemeBasic = Theme{
	"basic",            // Name
	tcell.Color247,     // Border
	tcell.Color247,     // Label
	tcell.ColorDefault, // Value
	tcell.Color167,     // Danger
	tcell.Color160,     // GameOver
	tcell.Color250,     // Garbage
	tcell.Color44,      // I
	tcell.Color184,     // O
	tcell.Color164,     // T
	tcell.Color40,      // S
	tcell.Color160,     // Z
	tcell.Color27,      // J
	tcell.Color208,     // L
}

// ThemeMono draws every piece in the terminal's own foreground color.
var ThemeMono = Theme{
	"mono",             // Name
	tcell.ColorDefault, // Border
	tcell.ColorDefault, // Label
	tcell.ColorDefault, // Value
	tcell.ColorDefault, // Danger
	tcell.ColorDefault, // GameOver
	tcell.ColorDefault, // Garbage
	tcell.ColorDefault, // I
	tcell.ColorDefault, // O
	tcell.ColorDefault, // T
	tcell.ColorDefault, // S
	tcell.ColorDefault, // Z
	tcell.ColorDefault, // J
	tcell.ColorDefault, // L
}
