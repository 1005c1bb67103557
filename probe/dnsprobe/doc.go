// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

/*
Package dnsprobe implements the DNS-resolution probe variant: one A plus
one AAAA exchange per target against a single configured DNS server. The
"no records found" condition is a valid negative outcome, not an error.
*/
package dnsprobe
