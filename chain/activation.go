package chain

// InscriptionsActive reports whether inscriptions are recognised at height.
// The bound is inclusive; a first height of 0 means active since genesis.
func (p Params) InscriptionsActive(height uint32) bool {
	return height >= p.firstInscriptionHeight
}

// DunesActive reports whether dunes are recognised at height.
func (p Params) DunesActive(height uint32) bool {
	return height >= p.firstDuneHeight
}

// InscriptionsActive reports whether inscriptions are recognised at height on
// the default parameters of v.
func InscriptionsActive(v Variant, height uint32) bool {
	return ParamsFor(v).InscriptionsActive(height)
}

// DunesActive reports whether dunes are recognised at height on the default
// parameters of v.
func DunesActive(v Variant, height uint32) bool {
	return ParamsFor(v).DunesActive(height)
}
