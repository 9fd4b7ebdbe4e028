//go:build !tinygo || haldebug

package core

// Debug ledger: records the owner descriptor per entry so a conflict can
// name both the prior and the attempted owner.
type ledger[K comparable] struct {
	kind    string
	keyName func(K) string
	owners  map[K]string
}

func newLedger[K comparable](kind string, keyName func(K) string) *ledger[K] {
	return &ledger[K]{
		kind:    kind,
		keyName: keyName,
		owners:  make(map[K]string),
	}
}

func (l *ledger[K]) reserve(set []K, owner string) {
	cs := EnterCritical()
	defer cs.Leave()

	for _, k := range set {
		if prev, taken := l.owners[k]; taken {
			Fatal(l.kind + " " + l.keyName(k) + " already reserved by " + prev + ", requested by " + owner)
		}
	}
	for _, k := range set {
		l.owners[k] = owner
	}
}

func (l *ledger[K]) release(set []K, owner string) {
	cs := EnterCritical()
	defer cs.Leave()

	for _, k := range set {
		prev, taken := l.owners[k]
		if !taken {
			Fatal(l.kind + " " + l.keyName(k) + " released by " + owner + " but not reserved")
		}
		if prev != owner {
			Fatal(l.kind + " " + l.keyName(k) + " released by " + owner + " but owned by " + prev)
		}
	}
	for _, k := range set {
		delete(l.owners, k)
	}
}

func (l *ledger[K]) isReserved(k K) bool {
	cs := EnterCritical()
	defer cs.Leave()

	_, taken := l.owners[k]
	return taken
}
