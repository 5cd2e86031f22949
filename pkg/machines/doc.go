/*
Package machines is a catalog of hand-written transition tables.

Each Definition bundles a domain.Table with the alphabet it is total over, the fill
symbol and start cursor it expects, and labels for its halting states. The tables are
ordinary Go closures; there is no description format to parse.
*/
package machines
