//go:build tinygo && !haldebug

package core

// Release ledger: keeps only the reserved set. The invariants are still
// enforced, but conflicts cannot name the prior owner.
type ledger[K comparable] struct {
	kind    string
	keyName func(K) string
	taken   map[K]struct{}
}

func newLedger[K comparable](kind string, keyName func(K) string) *ledger[K] {
	return &ledger[K]{
		kind:    kind,
		keyName: keyName,
		taken:   make(map[K]struct{}),
	}
}

func (l *ledger[K]) reserve(set []K, owner string) {
	cs := EnterCritical()
	defer cs.Leave()

	for _, k := range set {
		if _, taken := l.taken[k]; taken {
			Fatal(l.kind + " " + l.keyName(k) + " already reserved, requested by " + owner)
		}
	}
	for _, k := range set {
		l.taken[k] = struct{}{}
	}
}

func (l *ledger[K]) release(set []K, owner string) {
	cs := EnterCritical()
	defer cs.Leave()

	for _, k := range set {
		if _, taken := l.taken[k]; !taken {
			Fatal(l.kind + " " + l.keyName(k) + " released by " + owner + " but not reserved")
		}
	}
	for _, k := range set {
		delete(l.taken, k)
	}
}

func (l *ledger[K]) isReserved(k K) bool {
	cs := EnterCritical()
	defer cs.Leave()

	_, taken := l.taken[k]
	return taken
}
