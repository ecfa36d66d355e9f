/*
Package msf reads multiple sequence alignments from GCG/MSF formatted files
and writes pairwise alignments in the fixed PileUp layout that downstream
comparison tools expect.

The reader is deliberately forgiving about headers: any line whose residue
chunks contain characters outside the alignment alphabet (letters, '.' and
'-') is treated as decoration (the "MSF:", "Name:" and "Check:" lines, column
rulers and so on) and skipped. Sequence lines are recognized by their leading
name token; chunks belonging to the same name concatenate in file order.

The writer produces exactly one layout: a PileUp header followed by blocks of
two rows, residues grouped in tens and wrapped at 55 columns. The layout is
byte-stable so that output files can be compared with plain diff.
*/
package msf
