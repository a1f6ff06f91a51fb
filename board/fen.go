package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FenBufferSize bounds the rendered length of any legal position's FEN.
const FenBufferSize = 128

// MaxHalfMoveClock is the largest halfmove clock a FEN may carry.
const MaxHalfMoveClock = 100

// ParseFEN parses a FEN string and returns a Position.
// The six fields are all required; each failure mode maps to one of the
// error kinds in errors.go.
func ParseFEN(fen string) (Position, error) {
	parts := strings.Fields(fen)

	var pos Position
	pos.EPTarget = NoSquare
	for sq := range pos.Mailbox {
		pos.Mailbox[sq] = NoPiece
	}

	switch len(parts) {
	case 0:
		return pos, ErrFenTooShort
	case 1:
		return pos, ErrMissingSideToMove
	case 2:
		return pos, ErrMissingCastlingRights
	case 3:
		return pos, ErrMissingEnPassant
	case 4:
		return pos, ErrMissingHalfmoveClock
	case 5:
		return pos, ErrMissingFullmoveNumber
	}

	// Parse piece placement (field 0)
	if err := parsePiecePlacement(&pos, parts[0]); err != nil {
		return Position{}, err
	}

	// Parse side to move (field 1)
	switch parts[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
		pos.Hash ^= zobristSide
	default:
		return Position{}, ErrInvalidSideToMove
	}

	// Parse castling rights (field 2)
	castling, err := ParseCastleRights(parts[2])
	if err != nil {
		return Position{}, err
	}
	pos.Castling = castling
	pos.Hash ^= zobristCastling[castling]

	// Parse en passant square (field 3)
	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return Position{}, fmt.Errorf("%w: %w", ErrInvalidEnPassant, err)
		}
		if sq.Rank() != 2 && sq.Rank() != 5 {
			return Position{}, ErrInvalidEnPassantRank
		}
		pos.EPTarget = sq
		pos.Hash ^= zobristEnPassant[sq]
	}

	// Parse half-move clock (field 4)
	hmc, err := strconv.Atoi(parts[4])
	if err != nil || hmc < 0 {
		return Position{}, ErrInvalidHalfmoveClock
	}
	if hmc > MaxHalfMoveClock {
		return Position{}, ErrHalfmoveClockOverflow
	}
	pos.HalfMoveClock = hmc

	// Parse full-move number (field 5)
	fmn, err := strconv.Atoi(parts[5])
	if err != nil {
		return Position{}, ErrInvalidFullmoveNumber
	}
	if fmn < 1 {
		return Position{}, ErrFullmoveMustBePositive
	}
	pos.FullMoveNumber = fmn

	pos.Checkers = pos.computeCheckers()

	return pos, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return ErrInvalidBoardLayout
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for j := 0; j < len(rankStr); j++ {
			if file > 7 {
				return ErrInvalidRowLength
			}

			c := rankStr[j]
			if c >= '1' && c <= '8' {
				// Skip empty squares
				file += int(c - '0')
			} else {
				piece := PieceFromChar(c)
				if piece == NoPiece {
					return InvalidPieceError{Char: c}
				}
				pos.setPiece(piece, NewSquare(file, rank))
				file++
			}
		}

		if file != 8 {
			return ErrInvalidRowLength
		}
	}

	return nil
}

// AppendFEN appends the FEN representation of the position to dst and
// returns the extended slice. The rendered form never exceeds FenBufferSize
// bytes, so a buffer of that capacity will not reallocate.
func (p *Position) AppendFEN(dst []byte) []byte {
	// Piece placement
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				dst = append(dst, byte('0'+empty))
				empty = 0
			}
			dst = append(dst, piece.String()[0])
		}
		if empty > 0 {
			dst = append(dst, byte('0'+empty))
		}
		if rank > 0 {
			dst = append(dst, '/')
		}
	}

	// Side to move
	dst = append(dst, ' ')
	if p.SideToMove == White {
		dst = append(dst, 'w')
	} else {
		dst = append(dst, 'b')
	}

	// Castling rights
	dst = append(dst, ' ')
	dst = append(dst, p.Castling.String()...)

	// En passant
	dst = append(dst, ' ')
	dst = append(dst, p.EPTarget.String()...)

	// Half-move clock and full-move number
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, int64(p.HalfMoveClock), 10)
	dst = append(dst, ' ')
	dst = strconv.AppendInt(dst, int64(p.FullMoveNumber), 10)

	return dst
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	return string(p.AppendFEN(make([]byte, 0, FenBufferSize)))
}
