package game

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/domino14/abalone/board"
)

type lostCounts struct {
	Black int `yaml:"black"`
	White int `yaml:"white"`
}

// positionFile is the YAML form of a position.
type positionFile struct {
	ToMove   string     `yaml:"to_move"`
	Step     int        `yaml:"step"`
	MaxSteps int        `yaml:"max_steps,omitempty"`
	Lost     lostCounts `yaml:"lost"`
	Rows     []string   `yaml:"rows"`
}

// ReadPosition decodes a YAML position document, for example:
//
//	to_move: black
//	step: 12
//	lost: {black: 0, white: 1}
//	rows: ["WWWWW", "WWWWWW", "..WWW..", ...]
func ReadPosition(r io.Reader) (Position, error) {
	var pf positionFile
	if err := yaml.NewDecoder(r).Decode(&pf); err != nil {
		return Position{}, err
	}
	b, err := board.FromRows(pf.Rows)
	if err != nil {
		return Position{}, err
	}
	onTurn, ok := board.ParseColor(pf.ToMove)
	if !ok {
		return Position{}, fmt.Errorf("unknown side to move %q", pf.ToMove)
	}
	p := NewPosition(b, onTurn, pf.Step, pf.MaxSteps)
	// explicit counts win over the ones inferred from the board.
	if pf.Lost.Black > 0 || pf.Lost.White > 0 {
		p.lost = [2]int{pf.Lost.Black, pf.Lost.White}
	}
	return p, nil
}

// WritePosition encodes p as a YAML document.
func WritePosition(w io.Writer, p Position) error {
	pf := positionFile{
		ToMove:   p.onTurn.String(),
		Step:     p.step,
		MaxSteps: p.maxSteps,
		Lost:     lostCounts{Black: p.lost[board.Black], White: p.lost[board.White]},
		Rows:     p.board.Rows(),
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(pf); err != nil {
		return err
	}
	return enc.Close()
}
