/*
Package phylotree is a toolkit for phylogenetic trees in the Newick format.

It reads Newick-formatted tree text into an in-memory tree, answers
structural queries over it, and computes the Robinson–Foulds topological
distance between two trees. Package structure is as follows:

■ scanner: Package scanner tokenizes Newick input. A DFA-backed alternative
scanner lives in sub-package lexmach.

■ parser: Package parser builds trees from token streams. Construction is
driven by an explicit stack, so input nesting depth is not limited by the
call stack.

■ tree: Package tree implements the arena-backed tree model, structural
queries and Newick serialization.

■ metric: Package metric computes leaf-label bipartitions and the
Robinson–Foulds distance.

The base package contains the token data model which is shared by the
scanners and the parser.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package phylotree
