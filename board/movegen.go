package board

// GenFlag selects which classes of moves the enumerator emits.
// Captures, en passant and queen promotions are tactical; everything else,
// including under-promotions, is quiet.
type GenFlag uint8

const (
	QuietMoves GenFlag = 1 << iota
	TacticalMoves

	AllMoves = QuietMoves | TacticalMoves
)

// GenMoves generates the legal moves for the side to move into a MoveList.
func (p *Position) GenMoves(flags GenFlag) MoveList {
	var ml MoveList
	p.EnumerateMoves(flags, func(m Move) bool {
		ml.Push(m)
		return true
	})
	return ml
}

// EnumerateMoves calls yield for every legal move of the side to move that
// matches flags. Enumeration stops early when yield returns false. The order
// of moves is deterministic but not part of the contract.
func (p *Position) EnumerateMoves(flags GenFlag, yield func(Move) bool) {
	g := moveGen{
		pos:      p,
		flags:    flags,
		yield:    yield,
		us:       p.SideToMove,
		them:     p.SideToMove.Other(),
		ksq:      p.KingSquare(p.SideToMove),
		occ:      p.AllOccupied(),
		friendly: p.Allied(),
		enemy:    p.Enemy(),
	}

	g.genKingMoves()
	if g.stopped {
		return
	}

	// With two or more checkers only the king can move.
	checkers := p.Checkers.PopCount()
	if checkers > 1 {
		return
	}

	g.checkMask = Universe
	if checkers == 1 {
		// Non-king moves must capture the checker or interpose.
		g.checkMask = Between(g.ksq, p.Checkers.LSB()) | p.Checkers
	}

	g.diagPins, g.orthoPins = p.PinRays()
	g.pinned = (g.diagPins | g.orthoPins) & g.friendly

	g.genPawnMoves()
	g.genKnightMoves()
	g.genSliderMoves()

	if checkers == 0 {
		g.genCastlingMoves()
	}
}

// HasLegalMoves returns true if the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	found := false
	p.EnumerateMoves(AllMoves, func(Move) bool {
		found = true
		return false
	})
	return found
}

// IsCheckmate returns true if the side to move is in check with no legal move.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the side to move is not in check and has no legal move.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// PinRays returns the diagonal and orthogonal pin-ray bitboards for the side
// to move. A ray runs from the king (exclusive) to the pinning slider
// (inclusive) and contains exactly one allied piece; that piece may only
// move within its ray.
func (p *Position) PinRays() (diag, ortho Bitboard) {
	us := p.SideToMove
	them := us.Other()
	ksq := p.KingSquare(us)
	occ := p.AllOccupied()
	allied := p.ColorBB[us]

	snipers := RookAttacks(ksq, 0) & (p.PiecesOf(Rook, them) | p.PiecesOf(Queen, them))
	for snipers != 0 {
		sq := snipers.PopLSB()
		blockers := Between(ksq, sq) & occ
		if blockers.PopCount() == 1 && blockers&allied != 0 {
			ortho |= Between(ksq, sq) | SquareBB(sq)
		}
	}

	snipers = BishopAttacks(ksq, 0) & (p.PiecesOf(Bishop, them) | p.PiecesOf(Queen, them))
	for snipers != 0 {
		sq := snipers.PopLSB()
		blockers := Between(ksq, sq) & occ
		if blockers.PopCount() == 1 && blockers&allied != 0 {
			diag |= Between(ksq, sq) | SquareBB(sq)
		}
	}

	return diag, ortho
}

// PinnedPieces returns the allied pieces pinned to the king.
func (p *Position) PinnedPieces() Bitboard {
	diag, ortho := p.PinRays()
	return (diag | ortho) & p.Allied()
}

// moveGen carries the per-call state of one enumeration.
type moveGen struct {
	pos   *Position
	flags GenFlag
	yield func(Move) bool

	us, them Color
	ksq      Square
	occ      Bitboard
	friendly Bitboard
	enemy    Bitboard

	checkMask Bitboard
	diagPins  Bitboard
	orthoPins Bitboard
	pinned    Bitboard

	stopped bool
}

func (g *moveGen) emit(m Move) {
	if g.stopped {
		return
	}
	tactical := m.IsCapture() || m.Type() == PromotionQueen
	if tactical {
		if g.flags&TacticalMoves == 0 {
			return
		}
	} else if g.flags&QuietMoves == 0 {
		return
	}
	if !g.yield(m) {
		g.stopped = true
	}
}

// emitTargets emits a capture or quiet move from one origin to every target.
func (g *moveGen) emitTargets(from Square, targets Bitboard) {
	caps := targets & g.enemy
	for caps != 0 {
		g.emit(NewMove(from, caps.PopLSB(), Capture))
	}
	quiets := targets &^ g.occ
	for quiets != 0 {
		g.emit(NewMove(from, quiets.PopLSB(), Quiet))
	}
}

// emitPromotions emits the four promotion moves for one pawn advance.
func (g *moveGen) emitPromotions(from, to Square, capture bool) {
	base := PromotionKnight
	if capture {
		base = CapPromoKnight
	}
	g.emit(NewMove(from, to, base|MoveType(Queen-Knight)))
	g.emit(NewMove(from, to, base|MoveType(Rook-Knight)))
	g.emit(NewMove(from, to, base|MoveType(Bishop-Knight)))
	g.emit(NewMove(from, to, base))
}

// pinAllows reports whether a move of a possibly pinned piece keeps it on
// the line through the king. Unpinned pieces are unrestricted.
func (g *moveGen) pinAllows(from, to Square) bool {
	return !g.pinned.IsSet(from) || lineBB[g.ksq][from].IsSet(to)
}

func (g *moveGen) genKingMoves() {
	from := g.ksq
	// The king must leave the ray of a checking slider, so it is removed
	// from the occupancy while probing destination safety.
	occ := g.occ.Clear(from)

	targets := kingAttacks[from] &^ g.friendly
	for targets != 0 {
		to := targets.PopLSB()
		if g.pos.AttackersBy(to, g.them, occ) != 0 {
			continue
		}
		if g.enemy.IsSet(to) {
			g.emit(NewMove(from, to, Capture))
		} else {
			g.emit(NewMove(from, to, Quiet))
		}
	}
}

func (g *moveGen) genKnightMoves() {
	// A pinned knight never has a legal move.
	knights := g.pos.PiecesOf(Knight, g.us) &^ g.pinned
	for knights != 0 {
		from := knights.PopLSB()
		g.emitTargets(from, knightAttacks[from]&^g.friendly&g.checkMask)
	}
}

func (g *moveGen) genSliderMoves() {
	p := g.pos

	diag := (p.PieceBB[Bishop] | p.PieceBB[Queen]) & g.friendly
	for diag != 0 {
		from := diag.PopLSB()
		targets := BishopAttacks(from, g.occ) &^ g.friendly & g.checkMask
		if g.pinned.IsSet(from) {
			targets &= lineBB[g.ksq][from]
		}
		g.emitTargets(from, targets)
	}

	ortho := (p.PieceBB[Rook] | p.PieceBB[Queen]) & g.friendly
	for ortho != 0 {
		from := ortho.PopLSB()
		targets := RookAttacks(from, g.occ) &^ g.friendly & g.checkMask
		if g.pinned.IsSet(from) {
			targets &= lineBB[g.ksq][from]
		}
		g.emitTargets(from, targets)
	}
}

func (g *moveGen) genPawnMoves() {
	p := g.pos
	us := g.us
	pawns := p.PiecesOf(Pawn, us)
	empty := ^g.occ

	var push1, push2, capW, capE Bitboard
	var promoRank Bitboard
	var pushDir int

	// Diagonally pinned pawns cannot push; orthogonally pinned pawns
	// cannot capture. The line check in each loop handles the rest.
	pushers := pawns &^ g.diagPins
	capturers := pawns &^ g.orthoPins

	if us == White {
		push1 = pushers.North() & empty
		push2 = (push1 & Rank3).North() & empty
		capW = capturers.NorthWest() & g.enemy
		capE = capturers.NorthEast() & g.enemy
		promoRank = Rank8
		pushDir = 8
	} else {
		push1 = pushers.South() & empty
		push2 = (push1 & Rank6).South() & empty
		capW = capturers.SouthWest() & g.enemy
		capE = capturers.SouthEast() & g.enemy
		promoRank = Rank1
		pushDir = -8
	}

	// Single pushes (non-promotion)
	targets := push1 & g.checkMask &^ promoRank
	for targets != 0 {
		to := targets.PopLSB()
		from := Square(int(to) - pushDir)
		if g.pinAllows(from, to) {
			g.emit(NewMove(from, to, Quiet))
		}
	}

	// Double pushes
	targets = push2 & g.checkMask
	for targets != 0 {
		to := targets.PopLSB()
		from := Square(int(to) - 2*pushDir)
		if g.pinAllows(from, to) {
			g.emit(NewMove(from, to, DoublePawn))
		}
	}

	// Captures (non-promotion)
	targets = capW & g.checkMask &^ promoRank
	for targets != 0 {
		to := targets.PopLSB()
		from := Square(int(to) - pushDir + 1)
		if g.pinAllows(from, to) {
			g.emit(NewMove(from, to, Capture))
		}
	}

	targets = capE & g.checkMask &^ promoRank
	for targets != 0 {
		to := targets.PopLSB()
		from := Square(int(to) - pushDir - 1)
		if g.pinAllows(from, to) {
			g.emit(NewMove(from, to, Capture))
		}
	}

	// Promotions
	targets = push1 & g.checkMask & promoRank
	for targets != 0 {
		to := targets.PopLSB()
		from := Square(int(to) - pushDir)
		if g.pinAllows(from, to) {
			g.emitPromotions(from, to, false)
		}
	}

	targets = capW & g.checkMask & promoRank
	for targets != 0 {
		to := targets.PopLSB()
		from := Square(int(to) - pushDir + 1)
		if g.pinAllows(from, to) {
			g.emitPromotions(from, to, true)
		}
	}

	targets = capE & g.checkMask & promoRank
	for targets != 0 {
		to := targets.PopLSB()
		from := Square(int(to) - pushDir - 1)
		if g.pinAllows(from, to) {
			g.emitPromotions(from, to, true)
		}
	}

	// En passant
	if p.EPTarget != NoSquare {
		g.genEnPassant(pawns, pushDir)
	}
}

// genEnPassant emits legal en passant captures. The capture is simulated on
// the occupancy and rejected if the king would be exposed to a rook or queen
// along its rank or file, or a bishop or queen along a diagonal; this is the
// one case a pure target-mask generator cannot express.
func (g *moveGen) genEnPassant(pawns Bitboard, pushDir int) {
	p := g.pos
	ep := p.EPTarget
	capturedSq := Square(int(ep) - pushDir)

	// The capture must resolve any existing check: either the captured
	// pawn is the checker, or the capturing pawn blocks on the target.
	if g.checkMask != Universe && !g.checkMask.IsSet(capturedSq) && !g.checkMask.IsSet(ep) {
		return
	}

	enemyRQ := (p.PieceBB[Rook] | p.PieceBB[Queen]) & g.enemy
	enemyBQ := (p.PieceBB[Bishop] | p.PieceBB[Queen]) & g.enemy

	attackers := pawnAttacks[g.them][ep] & pawns
	for attackers != 0 {
		from := attackers.PopLSB()

		occ := g.occ.Clear(from).Clear(capturedSq).Set(ep)
		if RookAttacks(g.ksq, occ)&enemyRQ != 0 {
			continue
		}
		if BishopAttacks(g.ksq, occ)&enemyBQ != 0 {
			continue
		}

		g.emit(NewMove(from, ep, EnPassant))
	}
}

func (g *moveGen) genCastlingMoves() {
	p := g.pos
	us := g.us

	if p.Castling.HasKingSide(us) {
		geom := &kingSideGeom[us]
		if g.occ&geom.empty == 0 &&
			p.AttackersBy(geom.pass, g.them, g.occ) == 0 &&
			p.AttackersBy(geom.kingTo, g.them, g.occ) == 0 {
			g.emit(NewMove(geom.kingFrom, geom.kingTo, KingCastle))
		}
	}

	if p.Castling.HasQueenSide(us) {
		geom := &queenSideGeom[us]
		if g.occ&geom.empty == 0 &&
			p.AttackersBy(geom.pass, g.them, g.occ) == 0 &&
			p.AttackersBy(geom.kingTo, g.them, g.occ) == 0 {
			g.emit(NewMove(geom.kingFrom, geom.kingTo, QueenCastle))
		}
	}
}
