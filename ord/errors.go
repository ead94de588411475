package ord

import "errors"

var (
	// ErrInvalidInscriptionID indicates text or bytes that are not an inscription ID.
	ErrInvalidInscriptionID = errors.New("ord: invalid inscription ID")

	// ErrInvalidOutpoint indicates text or bytes that are not an outpoint.
	ErrInvalidOutpoint = errors.New("ord: invalid outpoint")

	// ErrInvalidSatPoint indicates text or bytes that are not a satpoint.
	ErrInvalidSatPoint = errors.New("ord: invalid satpoint")
)
