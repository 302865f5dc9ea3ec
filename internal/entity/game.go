package entity

// Symbol is the content of a board cell and also names a player.
type Symbol string

const (
	Empty   Symbol = ""
	PlayerX Symbol = "X"
	PlayerO Symbol = "O"
)

// Opponent - returns the other player's symbol.
func (that Symbol) Opponent() Symbol {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// Status is the terminal/non-terminal classification of a game.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDraw       Status = "draw"
)

// BoardSize is the number of cells on the board.
const BoardSize = 9

// Board holds cells in row-major order.
type Board [BoardSize]Symbol

// IsFull - reports whether no cell is empty.
func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}
	return true
}

// WinCombos lists every winning triple: rows top to bottom, columns left to right,
// then the two diagonals. Evaluate reports the first match in this order.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Result is the outcome of evaluating a board.
type Result struct {
	Winner Symbol
	Line   []int
	Draw   bool
}

// Evaluate - checks a board for a winning triple, then for a full board.
func Evaluate(board Board) Result {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != Empty && a == b && b == c {
			return Result{Winner: a, Line: []int{combo[0], combo[1], combo[2]}}
		}
	}

	// the game will continue until all the squares are full
	return Result{Draw: board.IsFull()}
}

// GameState is the whole state of one local game.
type GameState struct {
	Board         Board  `json:"board"`
	CurrentPlayer Symbol `json:"current_player"`
	Status        Status `json:"status"`
	Winner        Symbol `json:"winner,omitempty"`
	WinningLine   []int  `json:"winning_line,omitempty"`
}

// NewGameState - returns the initial state: empty board, X to move.
func NewGameState() GameState {
	return GameState{
		CurrentPlayer: PlayerX,
		Status:        StatusInProgress,
	}
}

// IsOver - reports whether the game reached Won or Draw.
func (that *GameState) IsOver() bool {
	return that.Status != StatusInProgress
}

// ApplyMove places the current player's symbol at index. Moves outside the board,
// onto an occupied cell or after the game is over are ignored; the return value
// reports whether the move was applied.
func (that *GameState) ApplyMove(index int) bool {
	if that.IsOver() {
		return false
	}

	if index < 0 || index >= BoardSize {
		return false
	}

	if that.Board[index] != Empty {
		return false
	}

	that.Board[index] = that.CurrentPlayer

	switch result := Evaluate(that.Board); {
	case result.Winner != Empty:
		that.Status = StatusWon
		that.Winner = result.Winner
		that.WinningLine = result.Line
	case result.Draw:
		that.Status = StatusDraw
	default:
		that.CurrentPlayer = that.CurrentPlayer.Opponent()
	}

	return true
}

// Reset - replaces the whole state with the initial one.
func (that *GameState) Reset() {
	*that = NewGameState()
}
