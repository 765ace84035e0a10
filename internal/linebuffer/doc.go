// Package linebuffer reassembles an arbitrarily chunked text stream into
// complete newline-delimited records.
//
// Kubernetes watch responses deliver one JSON event per line, but the network
// hands them over in chunks that can split a line anywhere. A Buffer keeps the
// partial tail between chunks and only releases lines once their terminating
// newline has arrived:
//
//	buf := linebuffer.New()
//	buf.AddChunk("foo\nb")
//	buf.Lines()   // ["foo"]
//	buf.AddChunk("ar\n")
//	buf.Lines()   // ["bar"]
//
// A Buffer is owned by a single stream and is not safe for concurrent use.
package linebuffer
