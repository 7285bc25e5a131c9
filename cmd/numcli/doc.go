// Package main is the entry point for numcli, the numcore command line.
//
// Usage:
//
//	numcli stats data.csv
//	numcli fib 20 -f yaml
//	numcli pi 1000000 --seed 42
//	numcli --server http://localhost:8000 matrix demo
package main
