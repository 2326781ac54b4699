package sim

// Rule is a collision handler for bodies of kinds A and B.
// Hit is called once per overlapping live pair with a of kind A and b of kind B.
// Handlers apply damage, score and removal by mutating the bodies.
type Rule struct {
	A, B Kind
	Hit  func(a, b *Body)
}

// Contacts reports what the step did besides moving bodies.
type Contacts struct {
	Hits   int     // Number of Hit calls
	Culled []*Body // Bodies removed for leaving the world
}

// Step advances the world by dt seconds:
//
//  1. steer chasing bodies toward their target
//  2. apply gravity
//  3. integrate position from velocity
//  4. clamp bodies flagged Clamp to the world bounds
//  5. cull bodies flagged Cull that left the world
//  6. run collision rules on overlapping pairs
//  7. drop dead bodies
func (w *World) Step(dt float64, rules ...Rule) Contacts {
	var c Contacts

	for _, b := range w.Bodies {
		if b.Dead {
			continue
		}
		if b.Chase != nil {
			if b.Chase.Dead {
				b.Chase = nil
			} else {
				b.Vel = b.Chase.Pos.Sub(b.Pos).Normalize().Scale(b.ChaseSpeed)
			}
		}
		if b.Gravity != 0 {
			b.Vel.Y += w.Gravity * b.Gravity * dt
		}
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		if b.Clamp {
			w.ClampBody(b)
		}
		if b.Cull && w.Outside(b) {
			b.Dead = true
			c.Culled = append(c.Culled, b)
		}
	}

	for _, r := range rules {
		c.Hits += w.collide(r)
	}

	w.Sweep()
	return c
}

// collide runs one rule over all live pairs.
func (w *World) collide(r Rule) int {
	hits := 0
	for i, a := range w.Bodies {
		if a.Dead || a.Kind != r.A {
			continue
		}
		for j, b := range w.Bodies {
			if i == j || b.Dead || b.Kind != r.B {
				continue
			}
			// Same-kind rules visit each unordered pair once.
			if r.A == r.B && j < i {
				continue
			}
			if a.Overlaps(b) {
				r.Hit(a, b)
				hits++
				if a.Dead {
					break
				}
			}
		}
	}
	return hits
}
