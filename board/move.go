package board

// Move encodes a chess move in 16 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-15: move type tag
//
// Bit 14 is set on every capturing move and bit 15 on every promotion,
// so captures and promotions test with a single mask.
type Move uint16

// MoveType is the 4-bit tag stored in the upper bits of a Move.
type MoveType uint8

// Move type tags.
const (
	Quiet           MoveType = 0b0000
	DoublePawn      MoveType = 0b0001
	KingCastle      MoveType = 0b0010
	QueenCastle     MoveType = 0b0011
	Capture         MoveType = 0b0100
	EnPassant       MoveType = 0b0101
	PromotionKnight MoveType = 0b1000
	PromotionBishop MoveType = 0b1001
	PromotionRook   MoveType = 0b1010
	PromotionQueen  MoveType = 0b1011
	CapPromoKnight  MoveType = 0b1100
	CapPromoBishop  MoveType = 0b1101
	CapPromoRook    MoveType = 0b1110
	CapPromoQueen   MoveType = 0b1111
)

const (
	promoMask Move = 0x8000
	capMask   Move = 0x4000
)

// NoMove represents an invalid or null move.
const NoMove Move = 0

// NewMove creates a move with the given source, destination and type tag.
func NewMove(from, to Square, mt MoveType) Move {
	return Move(mt)<<12 | Move(to)<<6 | Move(from)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Type returns the move type tag.
func (m Move) Type() MoveType {
	return MoveType(m >> 12)
}

// IsNull returns true if this is the null move sentinel.
func (m Move) IsNull() bool {
	return m == NoMove
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m&promoMask != 0
}

// IsCapture returns true if this move captures a piece (including en passant).
func (m Move) IsCapture() bool {
	return m&capMask != 0
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Type() == EnPassant
}

// IsCastle returns true if this is a castling move.
func (m Move) IsCastle() bool {
	mt := m.Type()
	return mt == KingCastle || mt == QueenCastle
}

// IsDoublePawn returns true if this is a two-square pawn push.
func (m Move) IsDoublePawn() bool {
	return m.Type() == DoublePawn
}

// IsQuiet returns true if this is a plain quiet move (tag zero).
func (m Move) IsQuiet() bool {
	return m.Type() == Quiet
}

// IsUnderpromotion returns true for promotions to knight, bishop or rook.
func (m Move) IsUnderpromotion() bool {
	return m.IsPromotion() && m.Type()&0b1011 != 0b1011
}

// Promotion returns the promotion piece type.
// Only meaningful when IsPromotion() is true.
func (m Move) Promotion() PieceType {
	return PieceType(m.Type()&0b0011) + Knight
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()

	if m.IsPromotion() {
		promoChars := []byte{'n', 'b', 'r', 'q'}
		s += string(promoChars[m.Promotion()-Knight])
	}

	return s
}
