// Package core implements the Snake simulation: a single snake moving on a
// bounded grid, growing on food, and ending on a wall or self collision.
// It has no knowledge of rendering, timing or input devices.
package core

import "fmt"

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection converts "up", "down", "left" or "right" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return DirRight, fmt.Errorf("snake: unknown direction %q", s)
}

// Point represents a 2D grid coordinate.
type Point struct {
	X, Y int
}

// step returns the neighbouring cell in direction d.
func (p Point) step(d Direction) Point {
	switch d {
	case DirUp:
		return Point{X: p.X, Y: p.Y - 1}
	case DirDown:
		return Point{X: p.X, Y: p.Y + 1}
	case DirLeft:
		return Point{X: p.X - 1, Y: p.Y}
	default:
		return Point{X: p.X + 1, Y: p.Y}
	}
}

const (
	initialLength = 3

	// Preferred head position; clamped into smaller boards.
	startX = 10
	startY = 8

	// Random samples before food placement falls back to scanning free cells.
	maxFoodSamples = 64
)

// State is the authoritative simulation of a single snake on a bounded grid.
// It is not safe for concurrent use; the host serialises all calls.
type State struct {
	width  int
	height int
	rng    Source

	snake   []Point // Head at index 0
	heading Direction
	nextDir Direction // Applied on the next Tick
	food    Point
	score   int
	turn    int
	over    bool
	full    bool // No free cell was left for food
}

// CheckSize reports whether a board of the given size can hold the initial
// snake plus one food cell.
func CheckSize(width, height int) error {
	if width < initialLength || height < 1 {
		return fmt.Errorf("snake: board %dx%d too small, need at least %dx1", width, height, initialLength)
	}
	if width*height <= initialLength {
		return fmt.Errorf("snake: board %dx%d leaves no room for food", width, height)
	}
	return nil
}

// New creates a game on a width x height board. The snake starts three cells
// long, heading right, and food is placed immediately.
// A nil src falls back to a time-seeded source.
// New panics if CheckSize rejects the board.
func New(width, height int, src Source) *State {
	if err := CheckSize(width, height); err != nil {
		panic(err.Error())
	}
	if src == nil {
		src = NewSource(0)
	}

	head := Point{X: min(startX, width-1), Y: min(startY, height-1)}
	s := &State{
		width:   width,
		height:  height,
		rng:     src,
		heading: DirRight,
		nextDir: DirRight,
	}
	s.snake = make([]Point, 0, initialLength)
	for i := range initialLength {
		s.snake = append(s.snake, Point{X: head.X - i, Y: head.Y})
	}
	s.spawnFood()
	return s
}

// RequestDirection queues dir for the next Tick. Reversals relative to the
// committed heading are dropped, and so is everything once the game is over.
func (s *State) RequestDirection(dir Direction) {
	if s.over {
		return
	}
	if dir == s.heading.Opposite() {
		return
	}
	s.nextDir = dir
}

// Tick advances the simulation by one cell.
func (s *State) Tick() {
	if s.over {
		return
	}

	s.heading = s.nextDir
	next := s.snake[0].step(s.heading)

	if !s.inBounds(next) {
		s.over = true
		return
	}

	// The whole body counts, including a tail that would vacate this tick.
	if s.occupied(next) {
		s.over = true
		return
	}

	s.turn++
	s.snake = append(s.snake, Point{})
	copy(s.snake[1:], s.snake)
	s.snake[0] = next

	if next == s.food {
		s.score++
		s.spawnFood()
		return
	}
	s.snake = s.snake[:len(s.snake)-1]
}

func (s *State) inBounds(p Point) bool {
	return p.X >= 0 && p.X < s.width && p.Y >= 0 && p.Y < s.height
}

func (s *State) occupied(p Point) bool {
	for _, seg := range s.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// spawnFood places food on a random cell not covered by the snake.
func (s *State) spawnFood() {
	for range maxFoodSamples {
		p := Point{X: s.rng.Intn(s.width), Y: s.rng.Intn(s.height)}
		if !s.occupied(p) {
			s.food = p
			return
		}
	}

	// Crowded board: pick among the free cells directly.
	taken := make(map[Point]struct{}, len(s.snake))
	for _, seg := range s.snake {
		taken[seg] = struct{}{}
	}
	free := make([]Point, 0, s.width*s.height-len(s.snake))
	for y := range s.height {
		for x := range s.width {
			p := Point{X: x, Y: y}
			if _, ok := taken[p]; !ok {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		s.full = true
		return
	}
	s.food = free[s.rng.Intn(len(free))]
}

// Cells returns a copy of the body, head first.
func (s *State) Cells() []Point {
	out := make([]Point, len(s.snake))
	copy(out, s.snake)
	return out
}

// Head returns the head position.
func (s *State) Head() Point { return s.snake[0] }

// Len returns the body length.
func (s *State) Len() int { return len(s.snake) }

// Food returns the food position.
func (s *State) Food() Point { return s.food }

// IsOver reports whether the game has ended.
func (s *State) IsOver() bool { return s.over }

// Score returns the number of food items eaten.
func (s *State) Score() int { return s.score }

// Width returns the board width.
func (s *State) Width() int { return s.width }

// Height returns the board height.
func (s *State) Height() int { return s.height }

// Heading returns the committed movement direction.
func (s *State) Heading() Direction { return s.heading }

// Turn returns the number of successful moves so far.
func (s *State) Turn() int { return s.turn }

// Full reports whether the snake covers every cell and food could not be placed.
func (s *State) Full() bool { return s.full }
