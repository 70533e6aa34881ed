package rlwe

// MetaData is a struct storing the metadata carried by a [Ciphertext]
// alongside its residues. No field is checked against the others or
// against the encryption scheme.
type MetaData struct {
	// IsNTT is a flag indicating if the polynomials are stored in the
	// evaluation (NTT) domain rather than in the coefficient domain.
	IsNTT bool

	// Scale is the fixed-point encoding factor of approximate schemes.
	Scale float64

	// CorrectionFactor is the plaintext-modulus correction term of exact schemes.
	CorrectionFactor uint64
}

// NewMetaData returns the default metadata: coefficient domain,
// scale 1 and correction factor 1.
func NewMetaData() MetaData {
	return MetaData{
		Scale:            1,
		CorrectionFactor: 1,
	}
}

// CopyNew returns a copy of the target.
func (m MetaData) CopyNew() *MetaData {
	return &m
}

// Equal returns true if two MetaData structs are identical.
func (m *MetaData) Equal(other *MetaData) bool {
	return *m == *other
}
