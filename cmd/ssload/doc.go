// 19 Oct 2026

/*

Ssload reads RNA secondary structure files.
Usage:
	ssload show [flags] [--contacts] file...
	ssload convert [flags] --to ct|bpseq|db [-o outfile] file
	ssload scan [flags] directory
	ssload support [flags] file.sto
	ssload random [flags] file nseq length

Files may be connectivity tables (CT), base pair lists (BPSEQ), T-Coffee
libraries, Stockholm alignments with an SS_cons line or dot-bracket files.
They may be gzipped. A file name of "-" means standard input.
If --format is not given, the format is guessed from the file name and if
that does not work, every reader is tried in turn.

Flags:
	-f, --format
		input format (ct, bpseq, tcoffee, stockholm, dotbracket, auto)
	-q, --quiet
		do not report problems in the input files
	--log-level
		trace, debug, info, warn or error
	--timeout
		give up after this long, for example 30s

Settings can also come from the environment or a .env file:
SSLOAD_LOG_LEVEL, SSLOAD_QUIET, SSLOAD_WORKERS, SSLOAD_BY_EXTENSION and
SSLOAD_TIMEOUT. Flags win.

*/
package main
