package core

import "fmt"

// IdentifierPool hands out dense uint32 identifiers and recycles released
// ones. Released identifiers are reused most-recently-released first.
type IdentifierPool struct {
	inUse []bool
	free  []uint32
	count int
}

func NewIdentifierPool(capacity int) *IdentifierPool {
	return &IdentifierPool{
		inUse: make([]bool, 0, capacity),
	}
}

// Acquire returns a free identifier, growing the pool when none is available.
func (p *IdentifierPool) Acquire() uint32 {
	p.count++
	if n := len(p.free); n > 0 {
		// Existing free spot. Take it.
		id := p.free[n-1]
		p.free = p.free[:n-1]
		p.inUse[id] = true
		return id
	}

	// If here, no existing free slots. Need a new id, so push one.
	p.inUse = append(p.inUse, true)
	return uint32(len(p.inUse) - 1)
}

// Release makes id available again.
func (p *IdentifierPool) Release(id uint32) error {
	length := uint32(len(p.inUse))
	if id >= length {
		return fmt.Errorf("identifier release: id '%d' out of range (max=%d). Nothing was done", id, length)
	}
	if !p.inUse[id] {
		return fmt.Errorf("identifier release: id '%d' is not in use. Nothing was done", id)
	}
	p.inUse[id] = false
	p.free = append(p.free, id)
	p.count--
	return nil
}

// InUse reports whether id is currently acquired.
func (p *IdentifierPool) InUse(id uint32) bool {
	return id < uint32(len(p.inUse)) && p.inUse[id]
}

// Len returns the number of acquired identifiers.
func (p *IdentifierPool) Len() int {
	return p.count
}

// Cap returns the highest identifier ever handed out plus one.
func (p *IdentifierPool) Cap() int {
	return len(p.inUse)
}
