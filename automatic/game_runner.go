// Package automatic plays computer-vs-computer games, for testing search
// settings against each other.
package automatic

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/abalone/agent"
	"github.com/domino14/abalone/board"
	"github.com/domino14/abalone/config"
	"github.com/domino14/abalone/game"
)

const (
	ResultBlack = "black"
	ResultWhite = "white"
	ResultDraw  = "draw"
)

type MoveRecord struct {
	Side   string  `yaml:"side"`
	Move   string  `yaml:"move"`
	Random bool    `yaml:"random,omitempty"`
	Score  float64 `yaml:"score,omitempty"`
	Nodes  uint64  `yaml:"nodes,omitempty"`
	Millis float64 `yaml:"ms,omitempty"`
}

// GameRecord is one finished game, as written to the game log.
type GameRecord struct {
	ID        string       `yaml:"id"`
	Layout    string       `yaml:"layout"`
	Moves     []MoveRecord `yaml:"moves"`
	Plies     int          `yaml:"plies"`
	Result    string       `yaml:"result"`
	LostBlack int          `yaml:"lost_black"`
	LostWhite int          `yaml:"lost_white"`
}

// GameRunner plays games between two agents built from the same config.
// It is not safe for concurrent use; make one per goroutine.
type GameRunner struct {
	layoutName  string
	layout      board.Board
	maxSteps    int
	randomPlies int
	players     [2]*agent.Player
	rules       game.Rules
}

func NewGameRunner(cfg *config.Config) (*GameRunner, error) {
	r := &GameRunner{
		layoutName:  cfg.GetString(config.ConfigLayout),
		maxSteps:    cfg.GetInt(config.ConfigMaxSteps),
		randomPlies: cfg.GetInt(config.ConfigSelfplayRandomPlies),
	}
	var err error
	if r.layout, err = board.LayoutNamed(r.layoutName); err != nil {
		return nil, err
	}
	for _, c := range []board.Color{board.Black, board.White} {
		if r.players[c], err = agent.NewPlayer(cfg, c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// PlayGame plays one game to the end. The first few plies are random so
// that games between identical players differ.
func (r *GameRunner) PlayGame(ctx context.Context) (*GameRecord, error) {
	for _, p := range r.players {
		p.NewGame()
	}
	pos := game.NewPosition(r.layout, board.Black, 0, r.maxSteps)
	rec := &GameRecord{ID: uuid.New().String(), Layout: r.layoutName}

	for !pos.Over() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		mr := MoveRecord{Side: pos.OnTurn().String()}
		var m game.Move
		if pos.Step() < r.randomPlies {
			moves := r.rules.LegalMoves(pos)
			m = moves[frand.Intn(len(moves))]
			mr.Random = true
		} else {
			tstart := time.Now()
			res, err := r.players[pos.OnTurn()].Search(ctx, pos)
			if err != nil {
				return nil, err
			}
			m = res.Move
			mr.Score = res.Score
			mr.Nodes = res.Nodes
			mr.Millis = float64(time.Since(tstart).Microseconds()) / 1000
		}
		var err error
		if pos, err = r.rules.Play(pos, m); err != nil {
			return nil, err
		}
		mr.Move = m.String()
		rec.Moves = append(rec.Moves, mr)
	}

	rec.Plies = pos.Step()
	rec.LostBlack = pos.Lost(board.Black)
	rec.LostWhite = pos.Lost(board.White)
	rec.Result = ResultDraw
	if w, ok := pos.Winner(); ok {
		rec.Result = w.String()
	}
	log.Debug().Str("id", rec.ID).Str("result", rec.Result).Int("plies", rec.Plies).
		Msg("game-over")
	return rec, nil
}
