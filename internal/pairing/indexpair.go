package pairing

// IndexPair records where each mate of a paired read was observed, for
// consumers that collate alignment records. Slots merge monotonically: an
// empty slot may be filled by a later observation, a filled slot is never
// overwritten.
type IndexPair struct {
	R1 *int
	R2 *int
}

// FillR1 fills the first slot if empty and reports whether it did.
func (p *IndexPair) FillR1(idx int) bool {
	if p.R1 != nil {
		return false
	}
	v := idx
	p.R1 = &v
	return true
}

// FillR2 fills the second slot if empty and reports whether it did.
func (p *IndexPair) FillR2(idx int) bool {
	if p.R2 != nil {
		return false
	}
	v := idx
	p.R2 = &v
	return true
}

// FillSide routes idx to the slot named by a read side character. Side '2'
// fills the second slot; anything else counts as the first mate.
func (p *IndexPair) FillSide(side byte, idx int) bool {
	if side == '2' {
		return p.FillR2(idx)
	}
	return p.FillR1(idx)
}

// Merge fills this pair's empty slots from other.
func (p *IndexPair) Merge(other IndexPair) {
	if p.R1 == nil && other.R1 != nil {
		v := *other.R1
		p.R1 = &v
	}
	if p.R2 == nil && other.R2 != nil {
		v := *other.R2
		p.R2 = &v
	}
}

// Complete reports whether both mates have been observed.
func (p *IndexPair) Complete() bool {
	return p.R1 != nil && p.R2 != nil
}
