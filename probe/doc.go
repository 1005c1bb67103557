// (c) The grimdig authors
//
// SPDX-License-Identifier: MIT

/*
Package probe defines the [Prober] capability that the pipeline executor
fans targets out over, together with the classified [Result] values coming
back. The concrete probe variants live in the subpackages dnsprobe,
webprobe and certprobe; the executor only ever sees the interfaces, so the
variant is chosen once at pipeline construction and never branched on per
call.
*/
package probe
