package canvas

// CharacterMerger handles the merging of two characters at the same position
type CharacterMerger struct {
	mergeMap map[mergePair]rune
}

type mergePair struct {
	existing rune
	new      rune
}

// NewCharacterMerger creates a merger with the wire crossing rules
func NewCharacterMerger() *CharacterMerger {
	m := &CharacterMerger{
		mergeMap: make(map[mergePair]rune),
	}
	m.initializeMergeRules()
	return m
}

// Merge combines two characters according to line crossing rules
func (m *CharacterMerger) Merge(existing, new rune) rune {
	if existing == ' ' {
		return new
	}

	if existing == new {
		return existing
	}

	// Markers are never overwritten by lines
	if IsMarker(existing) {
		return existing
	}
	if IsMarker(new) {
		return new
	}

	if merged, ok := m.mergeMap[mergePair{existing, new}]; ok {
		return merged
	}

	// merging should be commutative
	if merged, ok := m.mergeMap[mergePair{new, existing}]; ok {
		return merged
	}

	return existing
}

// IsMarker checks if a character marks a wire endpoint or detour point.
func IsMarker(r rune) bool {
	return r == MarkEndpoint || r == MarkDetour
}

// initializeMergeRules sets up the character merge mappings
func (m *CharacterMerger) initializeMergeRules() {
	m.mergeMap[mergePair{LineHorizontal, LineVertical}] = LineCross
	m.mergeMap[mergePair{LineRising, LineFalling}] = LineDiagonalCross

	// straight over diagonal reads as a plain crossing
	m.mergeMap[mergePair{LineHorizontal, LineRising}] = LineCross
	m.mergeMap[mergePair{LineHorizontal, LineFalling}] = LineCross
	m.mergeMap[mergePair{LineVertical, LineRising}] = LineCross
	m.mergeMap[mergePair{LineVertical, LineFalling}] = LineCross

	m.mergeMap[mergePair{LineCross, LineHorizontal}] = LineCross
	m.mergeMap[mergePair{LineCross, LineVertical}] = LineCross
	m.mergeMap[mergePair{LineCross, LineRising}] = LineCross
	m.mergeMap[mergePair{LineCross, LineFalling}] = LineCross
	m.mergeMap[mergePair{LineCross, LineDiagonalCross}] = LineCross
	m.mergeMap[mergePair{LineDiagonalCross, LineHorizontal}] = LineCross
	m.mergeMap[mergePair{LineDiagonalCross, LineVertical}] = LineCross
}
