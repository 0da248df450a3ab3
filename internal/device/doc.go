// Package device implements the temperature conversion endpoint.
//
// A Device holds the last submitted token in a fixed five-byte buffer
// (four data bytes plus terminator, seeded with the "None" sentinel) along
// with monotonic read and write counters. Write parses a token of the form
// <digits><unit>, converts between Fahrenheit and Celsius with truncating
// integer arithmetic, and surfaces the result through diagnostics and an
// optional Recorder. Read delivers the retained token text back through the
// transfer port.
//
// Every operation is serialized behind a single mutex; the device holds no
// goroutines and never blocks. Diagnostics and history recording are
// injected so tests can observe behavior without a live daemon.
package device
