package ssfile_test

// Small files used by more than one test.

// Residues 4 to 6 are missing.
const ctGap = `    9 ENERGY = -1.5  gappy
    1 G     0     2     9     1
    2 G     1     3     8     2
    3 A     2     4     0     3
    7 A     6     8     0     7
    8 C     7     9     2     8
    9 C     8     0     1     9
`

// Two records, the second one starting at residue 10.
const ctTwo = `5  hairpin one
1 G 0 2 5 1
2 A 1 3 0 2
3 A 2 4 0 3
4 A 3 5 0 4
5 C 4 0 1 5
   4   dG = -0.3  [second]
10 G 9 11 13 10
11 A 10 12 0 11
12 A 11 13 0 12
13 C 12 14 10 13
`

const bpseqFile = `Filename: d.16.b.E.coli.bpseq
Organism: Escherichia coli
Accession Number: J01695
Citation and related information available at http://www.rna.ccbb.utexas.edu
1 G 8
2 G 7
3 A 0
4 A 0
5 A 0
6 A 0
7 C 2
8 C 1
`

const dbFile = `>hairpin
GGGAAACCC
(((...))) (-1.20)

>knot
GGAACCUU
([..)]..
`

const stoFile = `# STOCKHOLM 1.0
#=GS seqB/3-10 AC X12345

seqB/3-10  GG-A
alpha      G-CA
#=GC SS_cons ((..

seqB/3-10  AACC
alpha      AACC
#=GC SS_cons ..))
//
`

const tcFile = `! TC_LIB_FORMAT_01
2
hp 9 GGGAAACCC
other 5 GGAAC
#1 1
 1 9 100
 2 8 100
 3 7 100
#1 2
 1 1 50
#2 2
 1 5 100
 x y 100
 7 1 100
! SEQ_1_TO_N
`
