// Package pe implements the Processing Element: a
// three-stage pipeline (window generator, weight selector, MAC/
// accumulator) communicating through depth-1 FIFOs.
package pe

// IAct, Weight, and PSum are the fabric's scalar token types. The
// operand widths are left as a parameter by the reference datapath
// (8-bit operands with a psum wide enough to hold KW·W·KH products);
// this module fixes concrete widths rather than making the PE fully
// generic over them, since Go cannot express "multiply two generic
// types and accumulate into a third, wider generic type" without an
// explicit conversion function at every call site — the concrete-type
// rendering keeps the MAC arithmetic in stage3 readable while still
// giving PSum enough headroom over IAct/Weight that a realistic
// kernel_w/kernel_h won't overflow before the intentional wraparound
// of the accumulator kicks in.
type (
	IAct   int32
	Weight int32
	PSum   int64
)
