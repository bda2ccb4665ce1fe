// internal/kbc/ghost.go
package kbc

// Ghosted reports whether a set of simultaneous entries is ambiguous.
//
// Matrix keyboards ghost when 3 keys are down such that any 2 of them
// share a row and any 2 of them share a column. The check below is the
// approximate version used by the controller's reference driver: the
// column-sharing pair and the row-sharing pair need not overlap, so it
// can veto combinations no single triplet makes ambiguous. That
// imprecision is part of the contract; keep it.
func Ghosted(entries []ScanEntry) bool {
	if len(entries) < 3 {
		return false
	}

	sameRow := false
	sameCol := false

	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			if entries[j].Col == entries[i].Col {
				sameCol = true
			}
			if entries[j].Row == entries[i].Row {
				sameRow = true
			}
		}
	}

	return sameRow && sameCol
}
