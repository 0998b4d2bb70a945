// Package cli implements the systolic command line.
//
// The root command evaluates a polynomial chain over a list of inputs:
//
//	systolic --with-x 1,2,3 --coefs 2,-6,2,-1
//	systolic eval --with-x 3,4 --equation "2*X^3-6*X^2+2*X-1" --verbose
//	seq 1 100 | systolic --stream --chain chain.yaml
//
// Options come from flags, SYSTOLIC_* environment variables, a .env file
// and an optional YAML config file, in that order of precedence.
package cli
