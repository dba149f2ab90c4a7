// Package domain models geomagnetic observatory timeseries data exchanged
// in the IAGA 2002 text format.
//
// # Data Source
//
// Observatories publish one file per UTC calendar day, per data type and
// sampling interval, under predictable URL layouts (filesystem trees or
// plain HTTP servers). A file carries a block of header records followed by
// one fixed-width row per sample instant, with one column per reported
// channel. The day is the atomic fetch and write granularity; multi-day
// requests are reassembled from day files downstream.
//
// # Channels
//
// A channel is one measured quantity, identified by a short code:
//
//	H  horizontal field intensity (nT)
//	D  declination
//	Z  vertical field intensity (nT)
//	F  total field intensity (nT)
//	X, Y, E  alternative component sets, also in nT
//
// Declination is stored on disk in arc-minutes but handled in memory in
// radians. [RadiansFromMinutes] is applied to channel D immediately after
// parsing and [MinutesFromRadians] immediately before writing; no other
// channel is converted.
//
// # Vocabulary
//
// Data type (provenance tier) and sampling interval form closed
// vocabularies used to build file URLs:
//
//	interval: daily, hourly, minute, monthly, second  (abbr: day, hor, min, mon, sec)
//	type:     definitive, provisional, quasi-definitive, variation  (abbr: d, p, q, v)
//
// A value outside these tables is a configuration error, never a data
// error, and is rejected before any I/O happens.
//
// # Sampling Rate
//
// The sampling rate of a day unit is always derived from its contents as
// (sampleCount-1)/(lastInstant-firstInstant). Rates declared in file
// headers are not authoritative and are ignored on input.
//
// # Missing Values
//
// The format encodes missing samples as 99999.00 and deliberately
// unobserved samples as 88888.00. Both map to NaN in memory; NaN maps back
// to 99999.00 on output. Conversions pass NaN through unchanged.
package domain
