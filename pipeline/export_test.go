package pipeline

// these are only exported when running tests

func (p *Pipeline) Pair() *BufferPair {
	return p.pair
}
