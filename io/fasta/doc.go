/*
Package fasta provides a reader and writer of FASTA encoded sequence files.

The format roughly corresponds to that described by NCBI, with one
extension: the '.' character is accepted in sequence data, since gapped
reference sequence files use it as an insert marker.
*/
package fasta
