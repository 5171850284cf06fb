package sat

// propagate runs unit propagation from the current trail[qhead:] forward,
// enqueuing every literal forced by a now-unit clause, until either the
// trail is exhausted (qhead == len(trail), no conflict) or some clause is
// fully false under the current assignment (a conflict, whose CRef is
// returned; qhead is left at len(trail) so the caller need not reset it).
//
// Each watch-list walk uses a read cursor i and a write cursor j over the
// same slice: watchers that are still relevant get compacted down to the
// front as the loop finds a new literal to watch or drops a satisfied
// clause's stale blocker, without allocating a new slice per propagation.
func (s *Solver) propagate() CRef {
	confl := CRefUndef
	var numProps int64

	for s.qhead < len(s.trail) {
		p := s.trail[s.qhead]
		s.qhead++
		numProps++

		ws := s.watches.Lookup(p)
		i, j := 0, 0
		for i < len(ws) {
			blocker := ws[i].Blocker
			if s.LitValue(blocker) == True {
				ws[j] = ws[i]
				j++
				i++
				continue
			}

			cr := ws[i].Cref
			c := s.ca.Clause(cr)
			falseLit := p.Opposite()
			if c.Lit(0) == falseLit {
				c.SetLit(0, c.Lit(1))
				c.SetLit(1, falseLit)
			}
			i++

			first := c.Lit(0)
			w := Watcher{Cref: cr, Blocker: first}
			if first != blocker && s.LitValue(first) == True {
				ws[j] = w
				j++
				continue
			}

			foundWatch := false
			for k := 2; k < c.Size(); k++ {
				if s.LitValue(c.Lit(k)) != False {
					c.SetLit(1, c.Lit(k))
					c.SetLit(k, falseLit)
					s.watches.Push(c.Lit(1).Opposite(), w)
					foundWatch = true
					break
				}
			}
			if foundWatch {
				continue
			}

			ws[j] = w
			j++
			if s.LitValue(first) == False {
				confl = cr
				s.qhead = len(s.trail)
				for i < len(ws) {
					ws[j] = ws[i]
					j++
					i++
				}
			} else {
				s.enqueue(first, cr)
			}
		}
		s.watches.Set(p, ws[:j])
		if confl != CRefUndef {
			break
		}
	}

	s.propagations += numProps
	return confl
}
