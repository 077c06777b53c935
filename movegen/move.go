package movegen

import (
	"fmt"
	"strings"

	"github.com/edjones079/chess-ai-engine/internal/errors"
)

// Move relocates one piece. Captures, promotions and special moves are not
// marked.
type Move struct {
	From  Square    `json:"from"`
	To    Square    `json:"to"`
	Piece PieceKind `json:"piece"`
}

// String produces coordinate notation, e.g. "e2e4".
func (m Move) String() string { return m.From.String() + m.To.String() }

// ParseMove reads coordinate notation ("e2e4") into its two squares. A
// trailing promotion letter is accepted and dropped.
func ParseMove(s string) (from, to Square, err error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) < 4 || len(s) > 5 {
		return NoSquare, NoSquare, fmt.Errorf("%w: move %q has bad length", errors.ErrInvalidSquare, s)
	}
	if from, err = ParseSquare(s[0:2]); err != nil {
		return NoSquare, NoSquare, err
	}
	if to, err = ParseSquare(s[2:4]); err != nil {
		return NoSquare, NoSquare, err
	}
	return from, to, nil
}
