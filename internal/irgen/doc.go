// Package irgen lowers Raft syntax trees into a textual SSA listing in the
// style of LLVM IR. Numbers are doubles, comparisons yield i1, strings become
// private globals and calls target externs declared by configuration.
package irgen
