/*
Package hestore is the ciphertext storage engine of a homomorphic-encryption library.
It owns, allocates and validates the raw RNS representation of encrypted values:
flat buffers of 64-bit residues bound to a parameter context, with a
capacity-aware reserve and resize protocol, a transparency check and a compact
seeded representation of pseudorandom polynomials.

The storage layer lives in core/rlwe, the RNS moduli and uniform sampling in ring,
and the supporting PRNGs, binary buffers and generic helpers in utils.
*/
package hestore
