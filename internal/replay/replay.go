// Package replay records Snake games turn by turn and stores them as Parquet
// files that can be summarized or played back later.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/vovakirdan/tui-snake/internal/games/snake/core"
)

// Schema is the value of the "schema" key in every replay file's metadata.
const Schema = "snake_turn_v1"

// TurnRow is a single (game, turn) snapshot. Body coordinates are stored
// head first as parallel X/Y columns.
type TurnRow struct {
	GameID string `parquet:"game_id,dict"`
	Turn   int32  `parquet:"turn"`
	Width  int32  `parquet:"width"`
	Height int32  `parquet:"height"`
	Dir    string `parquet:"dir,dict"`

	BodyX []int32 `parquet:"body_x"`
	BodyY []int32 `parquet:"body_y"`

	FoodX int32 `parquet:"food_x"`
	FoodY int32 `parquet:"food_y"`

	Score int32 `parquet:"score"`
	Over  bool  `parquet:"over"`
}

// RowFromSnapshot converts a simulation snapshot into a replay row.
func RowFromSnapshot(gameID string, s core.Snapshot) TurnRow {
	row := TurnRow{
		GameID: gameID,
		Turn:   int32(s.Turn),
		Width:  int32(s.Width),
		Height: int32(s.Height),
		Dir:    s.Dir,
		BodyX:  make([]int32, len(s.Body)),
		BodyY:  make([]int32, len(s.Body)),
		FoodX:  int32(s.Food.X),
		FoodY:  int32(s.Food.Y),
		Score:  int32(s.Score),
		Over:   s.Over,
	}
	for i, p := range s.Body {
		row.BodyX[i] = int32(p.X)
		row.BodyY[i] = int32(p.Y)
	}
	return row
}

// Snapshot converts the row back into a simulation snapshot.
func (r TurnRow) Snapshot() core.Snapshot {
	body := make([]core.Point, len(r.BodyX))
	for i := range body {
		body[i] = core.Point{X: int(r.BodyX[i]), Y: int(r.BodyY[i])}
	}
	state := core.StatePlaying
	if r.Over {
		state = core.StateGameOver
	}
	return core.Snapshot{
		Turn:   int(r.Turn),
		Width:  int(r.Width),
		Height: int(r.Height),
		Score:  int(r.Score),
		Dir:    r.Dir,
		Body:   body,
		Food:   core.Point{X: int(r.FoodX), Y: int(r.FoodY)},
		Over:   r.Over,
		State:  state,
	}
}

// Head returns the head cell of the row, or false for an empty body.
func (r TurnRow) Head() (core.Point, bool) {
	if len(r.BodyX) == 0 {
		return core.Point{}, false
	}
	return core.Point{X: int(r.BodyX[0]), Y: int(r.BodyY[0])}, true
}

// Recorder collects rows for one game. It is not safe for concurrent use.
type Recorder struct {
	gameID string
	rows   []TurnRow
}

// NewRecorder creates a recorder for the given game ID.
func NewRecorder(gameID string) *Recorder {
	return &Recorder{gameID: gameID}
}

// Record appends a snapshot. Snapshots whose turn was already recorded are
// skipped, so hosts may call Record every frame.
func (r *Recorder) Record(s core.Snapshot) {
	if n := len(r.rows); n > 0 && int(r.rows[n-1].Turn) == s.Turn && r.rows[n-1].Over == s.Over {
		return
	}
	r.rows = append(r.rows, RowFromSnapshot(r.gameID, s))
}

// Rows returns the recorded rows.
func (r *Recorder) Rows() []TurnRow {
	return r.rows
}

// Len returns the number of recorded rows.
func (r *Recorder) Len() int {
	return len(r.rows)
}

// Reset drops all recorded rows.
func (r *Recorder) Reset() {
	r.rows = r.rows[:0]
}

// Write stores the recorded rows at path.
func (r *Recorder) Write(path string) error {
	return Write(path, r.rows)
}

// Write stores rows as a zstd-compressed Parquet file. The file is written
// next to path and renamed into place so readers never see partial files.
func Write(path string, rows []TurnRow) error {
	if len(rows) == 0 {
		return errors.New("replay: no rows to write")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("replay: create output dir: %w", err)
	}

	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", Schema),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replay: write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replay: rename parquet: %w", err)
	}
	return nil
}

// Read loads every row of a replay file.
func Read(path string) ([]TurnRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("replay: open parquet: %w", err)
	}
	if schema, ok := pf.Lookup("schema"); !ok || schema != Schema {
		return nil, fmt.Errorf("replay: %s is not a snake replay (schema %q)", path, schema)
	}

	reader := parquet.NewGenericReader[TurnRow](pf)
	defer reader.Close()

	rows := make([]TurnRow, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("replay: read rows: %w", err)
	}
	return rows[:n], nil
}

// Summary describes a recorded game.
type Summary struct {
	GameID string
	Width  int
	Height int
	Turns  int // Last recorded turn
	Score  int
	Length int
	Over   bool
}

// Summarize reports the final state of a recording. Rows are assumed to be
// in recording order.
func Summarize(rows []TurnRow) Summary {
	if len(rows) == 0 {
		return Summary{}
	}
	last := rows[len(rows)-1]
	return Summary{
		GameID: last.GameID,
		Width:  int(last.Width),
		Height: int(last.Height),
		Turns:  int(last.Turn),
		Score:  int(last.Score),
		Length: len(last.BodyX),
		Over:   last.Over,
	}
}

// RenderText draws a snapshot as plain text: '#' border, 'O' head, 'o' body,
// '*' food.
func RenderText(s core.Snapshot) string {
	grid := make([][]rune, s.Height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(".", s.Width))
	}
	set := func(p core.Point, r rune) {
		if p.Y >= 0 && p.Y < s.Height && p.X >= 0 && p.X < s.Width {
			grid[p.Y][p.X] = r
		}
	}

	set(s.Food, '*')
	for i := len(s.Body) - 1; i >= 0; i-- {
		if i == 0 {
			set(s.Body[i], 'O')
		} else {
			set(s.Body[i], 'o')
		}
	}

	var b strings.Builder
	border := strings.Repeat("#", s.Width+2)
	b.WriteString(border)
	b.WriteByte('\n')
	for _, row := range grid {
		b.WriteByte('#')
		b.WriteString(string(row))
		b.WriteString("#\n")
	}
	b.WriteString(border)
	b.WriteByte('\n')
	return b.String()
}
