package board

import "fmt"

// MakeMove applies a move and returns the resulting position. The receiver
// is never modified; applying the same move to the same position always
// yields the same result.
//
// The move must come from the legal move enumerator (or FindMove). Applying
// a move whose source equals its destination panics; nothing else is
// validated.
func (p *Position) MakeMove(m Move) Position {
	src := m.From()
	dst := m.To()
	if src == dst {
		panic("makemove: source and destination squares are equal")
	}

	np := *p

	us := p.SideToMove
	piece := p.Mailbox[src]
	isCapture := m.IsCapture()

	np.removePiece(src)

	// Halfmove clock resets on captures and pawn moves.
	if isCapture || piece.Type() == Pawn {
		np.HalfMoveClock = 0
	} else {
		np.HalfMoveClock++
	}

	if us == Black {
		np.FullMoveNumber++
	}

	// Special move types: en passant removes the pawn behind the target,
	// castling relocates the rook, plain captures clear the destination.
	switch m.Type() {
	case EnPassant:
		np.removePiece(dst.Forward(us.Other()))
	case KingCastle, QueenCastle:
		rookFrom, rookTo := RookCastling(dst)
		rook := np.removePiece(rookFrom)
		np.setPiece(rook, rookTo)
	default:
		if isCapture {
			np.removePiece(dst)
		}
	}

	if m.IsPromotion() {
		np.setPiece(NewPiece(m.Promotion(), us), dst)
	} else {
		np.setPiece(piece, dst)
	}

	// Clear any previous en passant square, then set a fresh one on a
	// double pawn push.
	if p.EPTarget != NoSquare {
		np.EPTarget = NoSquare
		np.Hash ^= zobristEnPassant[p.EPTarget]
	}
	if m.Type() == DoublePawn {
		epSq := src.Forward(us)
		np.EPTarget = epSq
		np.Hash ^= zobristEnPassant[epSq]
	}

	// Castling rights lost by vacating or capturing on a home square.
	np.Castling = p.Castling.Update(src, dst)
	np.Hash ^= zobristCastling[p.Castling] ^ zobristCastling[np.Castling]

	np.SideToMove = us.Other()
	np.Hash ^= zobristSide

	np.Checkers = np.computeCheckers()

	return np
}

// NullMove passes the turn without moving, for null-move pruning in engines.
// Panics if the side to move is in check.
func (p *Position) NullMove() Position {
	if p.Checkers != 0 {
		panic("nullmove: side to move is in check")
	}

	np := *p
	np.SideToMove = p.SideToMove.Other()
	np.Hash ^= zobristSide

	np.EPTarget = NoSquare
	if p.EPTarget != NoSquare {
		np.Hash ^= zobristEnPassant[p.EPTarget]
	}

	np.Checkers = EmptyBB

	return np
}

// FindMove returns the unique legal move matching a UCI move string
// (e.g. "e2e4", "e7e8q"), or NoMove and false when no legal move matches.
func (p *Position) FindMove(uci string) (Move, bool) {
	found := NoMove
	p.EnumerateMoves(AllMoves, func(m Move) bool {
		if m.String() == uci {
			found = m
			return false
		}
		return true
	})
	return found, found != NoMove
}

// MakeUCIMove resolves a UCI move string against the legal moves and
// applies it.
func (p *Position) MakeUCIMove(uci string) (Position, error) {
	m, ok := p.FindMove(uci)
	if !ok {
		return Position{}, fmt.Errorf("%w %q", ErrMoveNotFound, uci)
	}
	return p.MakeMove(m), nil
}
