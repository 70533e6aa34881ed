// Package rlwe implements the storage layer shared by R-LWE schemes: the
// flat RNS [Ciphertext] container with its capacity-aware reserve and resize
// protocol, the parameter [Context] that binds ciphertexts to a ring degree
// and an RNS basis, and the security views over stored residues (transparency
// and seed expansion).
//
// The homomorphic operators, key generation, encryption and decryption are
// not part of this package; they read and write the residues exposed by
// [Ciphertext.Poly] and [Ciphertext.Data].
package rlwe
