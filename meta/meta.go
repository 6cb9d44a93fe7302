// meta/meta.go
package meta

// MAX_TURNS caps the number of moves in one game.
const MAX_TURNS = 300

// MAX_INVALID_MOVES is how many times an agent may propose an illegal move in one turn.
const MAX_INVALID_MOVES = 3

// DEFAULT_SUBTRACT_TOTAL is the Subtract Square starting total when none is given.
const DEFAULT_SUBTRACT_TOTAL = 20

// DEFAULT_STONEHENGE_SIDE is the Stonehenge board side when none is given.
const DEFAULT_STONEHENGE_SIDE = 2

// GO_ROUTINES defines the number of goroutines for parallel minimax and the experiment arena.
const GO_ROUTINES = 8
