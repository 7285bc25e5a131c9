// Package ingest turns dataset files and uploads into UTF-8 text.
//
// Input may be gzip or zstd compressed. Content is sniffed after
// decompression and anything that is not text/* is rejected. Non UTF-8
// encodings such as UTF-16 spreadsheet exports or Latin-1 are detected and
// transcoded.
package ingest
