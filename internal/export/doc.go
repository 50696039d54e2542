// Package export prints a composed document through a rendering surface.
//
// A Trigger drives one export at a time through the states
// Idle → Preparing → AwaitingImages → Printing → Idle. Every image in the
// surface must settle, by loading or by failing, before printing starts;
// a Barrier tracks them and gives up after a timeout.
package export
