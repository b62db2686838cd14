// Package store holds the word array backing a simulated heap, along with the boundary-tag
// encoding that turns regions of that array into self-describing segments.
//
// A free segment of size n at address a is laid out as:
//
//	a       -n     size tag
//	a+1     prev   free-list predecessor
//	a+2     next   free-list successor
//	...            unused
//	a+n-1   -n     end tag
//
// A reserved segment carries +n in both tags and everything between them is payload. The
// handle given to callers is a+1.
package store
