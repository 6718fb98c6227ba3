// SPDX-License-Identifier: MIT

// Package curve holds the plain data shapes exchanged between the calibration
// engine and its collaborators.
//
//   - Curve               — paired x/y samples of one measured quantity against another.
//   - CharacteristicPoint — an (x, y) point tagged with the index it came from.
//   - ReferenceStressPair — two caller-chosen stress levels for oedometer sampling.
//   - Source              — read-only "Name [Unit]" → scalar/series mapping.
//
// All values are assumed unit-normalized by the caller. Nothing here performs
// I/O; file parsers live outside the engine and hand over a Source.
package curve
