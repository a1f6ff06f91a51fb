package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeMoveIsPure(t *testing.T) {
	pos := NewPosition()
	before := pos

	m, ok := pos.FindMove("e2e4")
	require.True(t, ok)

	first := pos.MakeMove(m)
	second := pos.MakeMove(m)

	assert.Equal(t, before, pos, "MakeMove modified its receiver")
	assert.Equal(t, first, second, "MakeMove is not deterministic")
}

func TestMakeMoveDoublePushSetsEnPassant(t *testing.T) {
	pos := NewPosition()

	next, err := pos.MakeUCIMove("e2e4")
	require.NoError(t, err)
	assert.Equal(t, E3, next.EPTarget)

	// A quiet reply clears it again.
	next2, err := next.MakeUCIMove("g8f6")
	require.NoError(t, err)
	assert.Equal(t, NoSquare, next2.EPTarget)
}

func TestMakeMoveEnPassantCapture(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	require.NoError(t, err)

	next, err := pos.MakeUCIMove("e5f6")
	require.NoError(t, err)

	// The f5 pawn is gone and the capturing pawn stands on f6.
	assert.Equal(t, NoPiece, next.PieceAt(F5))
	assert.Equal(t, WhitePawn, next.PieceAt(F6))
	assert.Equal(t, NoPiece, next.PieceAt(E5))
	assert.Equal(t, 0, next.HalfMoveClock)
}

func TestMakeMoveCastling(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	t.Run("kingside", func(t *testing.T) {
		next, err := pos.MakeUCIMove("e1g1")
		require.NoError(t, err)

		assert.Equal(t, WhiteKing, next.PieceAt(G1))
		assert.Equal(t, WhiteRook, next.PieceAt(F1))
		assert.Equal(t, NoPiece, next.PieceAt(E1))
		assert.Equal(t, NoPiece, next.PieceAt(H1))
		assert.False(t, next.Castling.HasKingSide(White))
		assert.False(t, next.Castling.HasQueenSide(White))
		assert.True(t, next.Castling.HasKingSide(Black))
	})

	t.Run("queenside", func(t *testing.T) {
		next, err := pos.MakeUCIMove("e1c1")
		require.NoError(t, err)

		assert.Equal(t, WhiteKing, next.PieceAt(C1))
		assert.Equal(t, WhiteRook, next.PieceAt(D1))
		assert.Equal(t, NoPiece, next.PieceAt(A1))
	})
}

func TestMakeMoveCastlingRights(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	t.Run("rook move drops one side", func(t *testing.T) {
		next, err := pos.MakeUCIMove("h1g1")
		require.NoError(t, err)
		assert.False(t, next.Castling.HasKingSide(White))
		assert.True(t, next.Castling.HasQueenSide(White))
	})

	t.Run("king move drops both", func(t *testing.T) {
		next, err := pos.MakeUCIMove("e1e2")
		require.NoError(t, err)
		assert.False(t, next.Castling.HasKingSide(White))
		assert.False(t, next.Castling.HasQueenSide(White))
		assert.True(t, next.Castling.HasKingSide(Black))
	})

	t.Run("rook capture drops the victim's right", func(t *testing.T) {
		next, err := pos.MakeUCIMove("a1a8")
		require.NoError(t, err)
		assert.False(t, next.Castling.HasQueenSide(Black))
		assert.True(t, next.Castling.HasKingSide(Black))
		assert.False(t, next.Castling.HasQueenSide(White))
	})
}

func TestMakeMovePromotion(t *testing.T) {
	pos, err := ParseFEN("1r6/P6k/8/8/8/8/8/K7 w - - 4 20")
	require.NoError(t, err)

	t.Run("push", func(t *testing.T) {
		next, err := pos.MakeUCIMove("a7a8q")
		require.NoError(t, err)
		assert.Equal(t, WhiteQueen, next.PieceAt(A8))
		assert.Equal(t, EmptyBB, next.PiecesOf(Pawn, White))
		assert.Equal(t, 0, next.HalfMoveClock)
	})

	t.Run("capture underpromotion", func(t *testing.T) {
		next, err := pos.MakeUCIMove("a7b8n")
		require.NoError(t, err)
		assert.Equal(t, WhiteKnight, next.PieceAt(B8))
		assert.Equal(t, EmptyBB, next.PiecesOf(Rook, Black))
	})
}

func TestCounterLaws(t *testing.T) {
	pos, err := ParseFEN("r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 4 3")
	require.NoError(t, err)

	// A quiet piece move increments the clock, fullmove unchanged on
	// White's move.
	next, err := pos.MakeUCIMove("f1c4")
	require.NoError(t, err)
	assert.Equal(t, 5, next.HalfMoveClock)
	assert.Equal(t, 3, next.FullMoveNumber)

	// Black's move increments the fullmove number.
	next2, err := next.MakeUCIMove("g8f6")
	require.NoError(t, err)
	assert.Equal(t, 6, next2.HalfMoveClock)
	assert.Equal(t, 4, next2.FullMoveNumber)

	// A pawn move resets the clock.
	next3, err := next2.MakeUCIMove("d2d3")
	require.NoError(t, err)
	assert.Equal(t, 0, next3.HalfMoveClock)

	// A capture resets it too.
	next4, err := next2.MakeUCIMove("f3e5")
	require.NoError(t, err)
	assert.Equal(t, 0, next4.HalfMoveClock)
}

func TestNullMove(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	require.NoError(t, err)

	null := pos.NullMove()
	assert.Equal(t, White, null.SideToMove)
	assert.Equal(t, NoSquare, null.EPTarget)
	assert.Equal(t, EmptyBB, null.Checkers)
	assert.Equal(t, null.ComputeHash(), null.Hash)

	// The receiver is untouched.
	assert.Equal(t, Black, pos.SideToMove)
	assert.Equal(t, E3, pos.EPTarget)
}

func TestNullMovePanicsInCheck(t *testing.T) {
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	require.NoError(t, err)

	assert.Panics(t, func() { pos.NullMove() })
}

func TestMakeMovePanicsOnDegenerateMove(t *testing.T) {
	pos := NewPosition()
	assert.Panics(t, func() { pos.MakeMove(NewMove(E2, E2, Quiet)) })
}

func TestFindMove(t *testing.T) {
	pos := NewPosition()

	m, ok := pos.FindMove("e2e4")
	require.True(t, ok)
	assert.Equal(t, E2, m.From())
	assert.Equal(t, E4, m.To())
	assert.Equal(t, DoublePawn, m.Type())

	_, ok = pos.FindMove("e2e5")
	assert.False(t, ok)

	_, err := pos.MakeUCIMove("e2e5")
	assert.ErrorIs(t, err, ErrMoveNotFound)
}
