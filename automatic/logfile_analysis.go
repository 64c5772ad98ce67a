package automatic

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
)

// Summary aggregates a batch of games.
type Summary struct {
	Games      int
	BlackWins  int
	WhiteWins  int
	Draws      int
	MeanPlies  float64
	StdevPlies float64
	// MeanMoveMillis is the mean time per searched (non-random) move.
	MeanMoveMillis float64

	plies histogram.Histogram
}

func Summarize(records []*GameRecord) *Summary {
	records = lo.Filter(records, func(r *GameRecord, _ int) bool { return r != nil })
	s := &Summary{
		Games:     len(records),
		BlackWins: lo.CountBy(records, func(r *GameRecord) bool { return r.Result == ResultBlack }),
		WhiteWins: lo.CountBy(records, func(r *GameRecord) bool { return r.Result == ResultWhite }),
		Draws:     lo.CountBy(records, func(r *GameRecord) bool { return r.Result == ResultDraw }),
	}
	if s.Games == 0 {
		return s
	}
	plies := lo.Map(records, func(r *GameRecord, _ int) float64 { return float64(r.Plies) })
	if len(plies) > 1 {
		s.MeanPlies, s.StdevPlies = stat.MeanStdDev(plies, nil)
	} else {
		s.MeanPlies = plies[0]
	}
	s.plies = histogram.Hist(10, plies)

	searched := lo.Filter(lo.FlatMap(records, func(r *GameRecord, _ int) []MoveRecord { return r.Moves }),
		func(m MoveRecord, _ int) bool { return !m.Random })
	if len(searched) > 0 {
		s.MeanMoveMillis = lo.SumBy(searched, func(m MoveRecord) float64 { return m.Millis }) /
			float64(len(searched))
	}
	return s
}

func (s *Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Games played: %d\n", s.Games)
	if s.Games == 0 {
		return sb.String()
	}
	pct := func(n int) float64 { return 100.0 * float64(n) / float64(s.Games) }
	fmt.Fprintf(&sb, "Black wins: %d (%.1f%%)\n", s.BlackWins, pct(s.BlackWins))
	fmt.Fprintf(&sb, "White wins: %d (%.1f%%)\n", s.WhiteWins, pct(s.WhiteWins))
	fmt.Fprintf(&sb, "Draws: %d (%.1f%%)\n", s.Draws, pct(s.Draws))
	fmt.Fprintf(&sb, "Plies: mean %.2f  stdev %.2f\n", s.MeanPlies, s.StdevPlies)
	fmt.Fprintf(&sb, "Mean time per searched move: %.2f ms\n", s.MeanMoveMillis)
	sb.WriteString("Game length histogram:\n")
	histogram.Fprint(&sb, s.plies, histogram.Linear(40))
	return sb.String()
}

// ReadGameLog reads every game in a YAML game log.
func ReadGameLog(r io.Reader) ([]*GameRecord, error) {
	dec := yaml.NewDecoder(r)
	var records []*GameRecord
	for {
		rec := &GameRecord{}
		err := dec.Decode(rec)
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// AnalyzeLogFile summarizes the games in the given log file.
func AnalyzeLogFile(filepath string) (*Summary, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	records, err := ReadGameLog(file)
	if err != nil {
		return nil, err
	}
	return Summarize(records), nil
}
