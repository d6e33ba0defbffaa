package hll

// Registers exposes a copy of the register array for tests.
func (s *Sketch) Registers() []uint8 {
	regs := make([]uint8, len(s.registers))
	copy(regs, s.registers)

	return regs
}

// SetRegister overwrites a single register for tests that need a crafted
// register state.
func (s *Sketch) SetRegister(idx int, val uint8) {
	s.registers[idx] = val
}

// Correct exposes the range-correction step for boundary tests.
func (s *Sketch) Correct(rawEstimate, regCount float64) float64 {
	return s.correct(rawEstimate, regCount)
}
