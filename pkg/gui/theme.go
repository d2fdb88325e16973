package gui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"

	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/tetristerm/pkg/mino"
)

// Terminal safe color palette is available here
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name       string      `json:"name"`
	Background tcell.Color `json:"background"`
	Border     tcell.Color `json:"border"`
	Text       tcell.Color `json:"text"`
	Label      tcell.Color `json:"label"`
	Alert      tcell.Color `json:"alert"`
	I          tcell.Color `json:"i"`
	O          tcell.Color `json:"o"`
	T          tcell.Color `json:"t"`
	S          tcell.Color `json:"s"`
	Z          tcell.Color `json:"z"`
	J          tcell.Color `json:"j"`
	L          tcell.Color `json:"l"`
}

// ThemeHex is the on-disk form of a Theme
type ThemeHex struct {
	Name       string `json:"name"`
	Background string `json:"background"`
	Border     string `json:"border"`
	Text       string `json:"text"`
	Label      string `json:"label"`
	Alert      string `json:"alert"`
	I          string `json:"i"`
	O          string `json:"o"`
	T          string `json:"t"`
	S          string `json:"s"`
	Z          string `json:"z"`
	J          string `json:"j"`
	L          string `json:"l"`
}

// fmtHex returns a one character hex for ColorDefault so that it survives a
// round trip instead of being read back as black
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

func getColor(s string) tcell.Color {
	if s == "#0" {
		return tcell.ColorDefault
	}
	return tcell.GetColor(s)
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		t.Name,
		fmtHex(t.Background.Hex()),
		fmtHex(t.Border.Hex()),
		fmtHex(t.Text.Hex()),
		fmtHex(t.Label.Hex()),
		fmtHex(t.Alert.Hex()),
		fmtHex(t.I.Hex()),
		fmtHex(t.O.Hex()),
		fmtHex(t.T.Hex()),
		fmtHex(t.S.Hex()),
		fmtHex(t.Z.Hex()),
		fmtHex(t.J.Hex()),
		fmtHex(t.L.Hex()),
	}
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() Theme {
	return Theme{
		t.Name,
		getColor(t.Background),
		getColor(t.Border),
		getColor(t.Text),
		getColor(t.Label),
		getColor(t.Alert),
		getColor(t.I),
		getColor(t.O),
		getColor(t.T),
		getColor(t.S),
		getColor(t.Z),
		getColor(t.J),
		getColor(t.L),
	}
}

// BlockColor returns the color a settled or falling block is drawn with
func (t Theme) BlockColor(b mino.Block) tcell.Color {
	switch b {
	case mino.BlockI:
		return t.I
	case mino.BlockO:
		return t.O
	case mino.BlockT:
		return t.T
	case mino.BlockS:
		return t.S
	case mino.BlockZ:
		return t.Z
	case mino.BlockJ:
		return t.J
	case mino.BlockL:
		return t.L
	default:
		return t.Background
	}
}

// ThemeBasic is the default theme
var ThemeBasic = Theme{
	"basic",                      // Name
	tcell.NewRGBColor(0, 30, 30), // Background
	tcell.Color247,               // Border
	tcell.ColorWhite,             // Text
	tcell.Color247,               // Label
	tcell.Color160,               // Alert
	tcell.NewHexColor(0x00eeee),  // I
	tcell.NewHexColor(0xdddd00),  // O
	tcell.NewHexColor(0xc000cc),  // T
	tcell.NewHexColor(0x00e900),  // S
	tcell.NewHexColor(0xee0000),  // Z
	tcell.NewHexColor(0x2864ff),  // J
	tcell.NewHexColor(0xff7308),  // L
}

// ThemeMono keeps to the terminal's own colors
var ThemeMono = Theme{
	"mono",             // Name
	tcell.ColorDefault, // Background
	tcell.ColorDefault, // Border
	tcell.ColorDefault, // Text
	tcell.ColorDefault, // Label
	tcell.ColorDefault, // Alert
	tcell.ColorDefault, // I
	tcell.ColorDefault, // O
	tcell.ColorDefault, // T
	tcell.ColorDefault, // S
	tcell.ColorDefault, // Z
	tcell.ColorDefault, // J
	tcell.ColorDefault, // L
}

var builtinThemes = []Theme{ThemeBasic, ThemeMono}

// ImportThemes returns a converted Theme from a slice of ThemeHex
// entities if its name matches the want argument. Built in themes are
// consulted when none of the provided ones match.
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}

	for _, t := range builtinThemes {
		if t.Name == want {
			return t, nil
		}
	}

	return Theme{}, errors.New("theme: no theme found")
}

// LoadThemes reads a JSON list of themes
func LoadThemes(path string) ([]ThemeHex, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes from %s: %w", path, err)
	}

	var themes []ThemeHex
	err = json.Unmarshal(data, &themes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse themes from %s: %w", path, err)
	}

	return themes, nil
}
