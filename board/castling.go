package board

import "fmt"

// CastleRights represents the available castling options as a 4-bit mask.
type CastleRights uint8

const (
	WhiteKingSideCastle  CastleRights = 1 << iota // K
	WhiteQueenSideCastle                          // Q
	BlackKingSideCastle                           // k
	BlackQueenSideCastle                          // q
	NoCastling           CastleRights = 0
	AllCastling          CastleRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// NumCastleRights is the number of distinct castling-rights masks.
const NumCastleRights = 16

var kingSideCastle = [2]CastleRights{WhiteKingSideCastle, BlackKingSideCastle}
var queenSideCastle = [2]CastleRights{WhiteQueenSideCastle, BlackQueenSideCastle}

// castleRightsMask[s] clears exactly the rights that become impossible once
// square s is vacated or captured on. Only the king and rook home squares
// carry masks that differ from AllCastling.
var castleRightsMask = func() [64]CastleRights {
	var m [64]CastleRights
	for sq := A1; sq <= H8; sq++ {
		m[sq] = AllCastling
	}
	m[A1] = AllCastling &^ WhiteQueenSideCastle
	m[E1] = AllCastling &^ (WhiteKingSideCastle | WhiteQueenSideCastle)
	m[H1] = AllCastling &^ WhiteKingSideCastle
	m[A8] = AllCastling &^ BlackQueenSideCastle
	m[E8] = AllCastling &^ (BlackKingSideCastle | BlackQueenSideCastle)
	m[H8] = AllCastling &^ BlackKingSideCastle
	return m
}()

// String returns the FEN castling rights string.
func (cr CastleRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// HasKingSide returns true if the given color may still castle short.
func (cr CastleRights) HasKingSide(c Color) bool {
	return cr&kingSideCastle[c] != 0
}

// HasQueenSide returns true if the given color may still castle long.
func (cr CastleRights) HasQueenSide(c Color) bool {
	return cr&queenSideCastle[c] != 0
}

// Update returns the rights remaining after a move from src to dst.
// Vacating or capturing on a king or rook home square revokes the
// corresponding rights via the per-square mask table.
func (cr CastleRights) Update(src, dst Square) CastleRights {
	return cr & castleRightsMask[src] & castleRightsMask[dst]
}

// ParseCastleRights parses the castling field of a FEN string.
// The characters must be a subset of "KQkq" in that order, or a lone "-".
func ParseCastleRights(s string) (CastleRights, error) {
	if len(s) == 0 {
		return NoCastling, ErrMissingCastlingRights
	}

	cr := NoCastling
	for i := 0; i < len(s); i++ {
		var right CastleRights
		switch s[i] {
		case 'K':
			right = WhiteKingSideCastle
		case 'Q':
			right = WhiteQueenSideCastle
		case 'k':
			right = BlackKingSideCastle
		case 'q':
			right = BlackQueenSideCastle
		case '-':
			if len(s) != 1 {
				return NoCastling, fmt.Errorf("%w: %w", ErrInvalidCastlingRights, ErrCastlingDashUsage)
			}
			return NoCastling, nil
		default:
			return NoCastling, InvalidCastlingCharError{Char: s[i]}
		}
		// The rights bits ascend in KQkq order, so a letter out of order or
		// repeated is not above every right already seen.
		if right <= cr {
			return NoCastling, InvalidCastlingCharError{Char: s[i]}
		}
		cr |= right
	}
	return cr, nil
}

// castleGeometry fixes the squares involved in one castling move.
type castleGeometry struct {
	kingFrom Square
	kingTo   Square
	rookFrom Square
	rookTo   Square
	pass     Square   // square the king passes over; must not be attacked
	empty    Bitboard // squares between king and rook; must be unoccupied
}

// Castling geometry per color, kingside and queenside (standard chess).
var (
	kingSideGeom = [2]castleGeometry{
		{kingFrom: E1, kingTo: G1, rookFrom: H1, rookTo: F1, pass: F1, empty: SquareBB(F1) | SquareBB(G1)},
		{kingFrom: E8, kingTo: G8, rookFrom: H8, rookTo: F8, pass: F8, empty: SquareBB(F8) | SquareBB(G8)},
	}
	queenSideGeom = [2]castleGeometry{
		{kingFrom: E1, kingTo: C1, rookFrom: A1, rookTo: D1, pass: D1, empty: SquareBB(B1) | SquareBB(C1) | SquareBB(D1)},
		{kingFrom: E8, kingTo: C8, rookFrom: A8, rookTo: D8, pass: D8, empty: SquareBB(B8) | SquareBB(C8) | SquareBB(D8)},
	}
)

// RookCastling returns the rook's source and destination squares for a
// castling move, keyed by the king's destination square.
func RookCastling(kingTo Square) (Square, Square) {
	switch kingTo {
	case G1:
		return H1, F1
	case C1:
		return A1, D1
	case G8:
		return H8, F8
	case C8:
		return A8, D8
	}
	return NoSquare, NoSquare
}
